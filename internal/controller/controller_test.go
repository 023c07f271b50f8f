package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"french_assessment_backend/internal/model"
	"french_assessment_backend/internal/service"
	mock_service "french_assessment_backend/internal/service/mock"
	"french_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTarget struct {
	err error
}

func (s stubTarget) Kind() service.TargetKind { return service.TargetSpreadsheet }

func (s stubTarget) Deliver(context.Context, *model.Submission, *service.Payload) error {
	return s.err
}

func statementSource(t *testing.T) *mock_service.MockStatementSource {
	ctrl := gomock.NewController(t)
	source := mock_service.NewMockStatementSource(ctrl)
	source.EXPECT().GetStatements(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fw model.Framework) ([]model.ProficiencyStatement, error) {
			return []model.ProficiencyStatement{
				{Code: "r-3", Framework: fw, Skill: model.Reading, Level: 3, Text: "Read"},
				{Code: "l-2", Framework: fw, Skill: model.Listening, Level: 2, Text: "Listen"},
			}, nil
		}).AnyTimes()
	return source
}

func assessmentRouter(t *testing.T, deliverErr error) *gin.Engine {
	scoring := service.NewScoringService(statementSource(t))
	submissions := service.NewSubmissionService(scoring, service.NewMemoryRespondentStore(), time.Second,
		service.TargetSpreadsheet, stubTarget{err: deliverErr})
	reports := service.NewReportService(scoring, nil, false)
	c := NewAssessmentController(scoring, submissions, reports)
	f := NewFrameworkController(scoring)

	r := gin.New()
	r.GET("/api/frameworks", f.ListFrameworks)
	r.GET("/api/statements", f.ListStatements)
	r.POST("/api/sessions", c.StartSession)
	r.POST("/api/assessments/score", c.Score)
	r.POST("/api/assessments/submit", c.Submit)
	r.POST("/api/assessments/report", c.Report)
	return r
}

func postJSON(r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func submitBody() map[string]interface{} {
	return map[string]interface{}{
		"framework": "ACTFL",
		"checked":   []string{"r-3", "l-2"},
		"fields":    map[string]string{"consent": "Yes"},
	}
}

func TestScore(t *testing.T) {
	r := assessmentRouter(t, nil)

	w := postJSON(r, "/api/assessments/score", map[string]interface{}{"framework": "actfl", "checked": []string{"r-3"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), gjson.Get(w.Body.String(), "data.scores.Reading").Int())
	assert.Equal(t, int64(0), gjson.Get(w.Body.String(), "data.scores.Listening").Int())
	assert.Equal(t, int64(10), gjson.Get(w.Body.String(), "data.chart.max").Int())
}

func TestScore_BadFramework(t *testing.T) {
	r := assessmentRouter(t, nil)

	w := postJSON(r, "/api/assessments/score", map[string]interface{}{"framework": "DELF"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmit_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		scores bool
	}{
		{"ok", nil, http.StatusOK, true},
		{"rejected", &service.RejectedError{Message: "closed"}, http.StatusUnprocessableEntity, true},
		{"transport", util.ErrTransport, http.StatusBadGateway, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(assessmentRouter(t, tc.err), "/api/assessments/submit", submitBody())

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.scores, gjson.Get(w.Body.String(), "data.scores.Reading").Exists())
			assert.Equal(t, int64(3), gjson.Get(w.Body.String(), "data.scores.Reading").Int())
		})
	}
}

func TestSubmit_RejectionMessageIsShown(t *testing.T) {
	w := postJSON(assessmentRouter(t, &service.RejectedError{Message: "closed"}), "/api/assessments/submit", submitBody())

	assert.Contains(t, gjson.Get(w.Body.String(), "message").String(), "closed")
}

func TestSubmit_SuccessMessage(t *testing.T) {
	w := postJSON(assessmentRouter(t, nil), "/api/assessments/submit", submitBody())

	assert.Equal(t, submitSuccessMessage, gjson.Get(w.Body.String(), "message").String())
}

func TestSubmit_ValidationAndTarget(t *testing.T) {
	r := assessmentRouter(t, nil)

	body := submitBody()
	body["fields"] = map[string]string{}
	w := postJSON(r, "/api/assessments/submit", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please complete the required fields: Consent", gjson.Get(w.Body.String(), "message").String())

	assert.Equal(t, http.StatusBadRequest, postJSON(r, "/api/assessments/submit?target=ftp", submitBody()).Code)
	assert.Equal(t, http.StatusBadRequest, postJSON(r, "/api/assessments/submit?target=local", submitBody()).Code)
}

func TestStartSession(t *testing.T) {
	w := postJSON(assessmentRouter(t, nil), "/api/sessions", nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, gjson.Get(w.Body.String(), "data.sessionId").String())
}

func TestReport(t *testing.T) {
	w := postJSON(assessmentRouter(t, nil), "/api/assessments/report", submitBody())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, util.MimePDF, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "French_Assessment_")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestFrameworksAndStatements(t *testing.T) {
	r := assessmentRouter(t, nil)

	w := get(r, "/api/frameworks")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ACTFL", gjson.Get(w.Body.String(), "data.0.name").String())
	assert.Equal(t, int64(6), gjson.Get(w.Body.String(), "data.1.maxLevel").Int())

	w = get(r, "/api/statements?framework=cefrl")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Reading", gjson.Get(w.Body.String(), "data.0.skill").String())
	assert.Equal(t, "r-3", gjson.Get(w.Body.String(), "data.0.statements.0.code").String())
	assert.Equal(t, int64(0), gjson.Get(w.Body.String(), "data.2.statements.#").Int())

	assert.Equal(t, http.StatusBadRequest, get(r, "/api/statements").Code)
}

func catalogRouter(t *testing.T) *gin.Engine {
	ctrl := gomock.NewController(t)
	source := mock_service.NewMockCardSource(ctrl)
	source.EXPECT().GetCards(gomock.Any(), model.CardKindCategory).Return([]model.ContentCard{
		{BaseModel: model.BaseModel{ID: 1}, Name: "C", Level: "beginner", Type: "grammar"},
		{BaseModel: model.BaseModel{ID: 2}, Name: "B", Level: "advanced", Type: "grammar"},
		{BaseModel: model.BaseModel{ID: 3}, Name: "A", Level: "beginner", Type: "vocab"},
	}, nil).AnyTimes()

	c := NewCatalogController(service.NewCatalogService(source))
	r := gin.New()
	r.GET("/api/catalog/:kind", c.List)
	r.GET("/api/catalog/:kind/facets", c.Facets)
	return r
}

func TestCatalogList(t *testing.T) {
	r := catalogRouter(t)

	w := get(r, "/api/catalog/categories?level=beginner&sort=name")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, int64(2), gjson.Get(body, "data.visible").Int())
	assert.Equal(t, `["A","C"]`, gjson.Get(body, "data.cards.#.name").Raw)
	assert.False(t, gjson.Get(body, "data.visibility.2").Bool())

	w = get(r, "/api/catalog/categories")
	assert.Equal(t, `["C","B","A"]`, gjson.Get(w.Body.String(), "data.cards.#.name").Raw)

	assert.Equal(t, http.StatusNotFound, get(r, "/api/catalog/videos").Code)
}

func TestCatalogFacets(t *testing.T) {
	w := get(catalogRouter(t), "/api/catalog/category/facets")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `["all","grammar","vocab"]`, gjson.Get(w.Body.String(), "data.types").Raw)
}
