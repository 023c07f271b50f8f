package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"french_assessment_backend/internal/model"
	mock_service "french_assessment_backend/internal/service/mock"
	"french_assessment_backend/internal/util"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func samplePayload() *Payload {
	p := NewPayload()
	p.Set(FieldFramework, "ACTFL")
	p.Set(FieldConsent, "Yes")
	p.Set("ACTFL Reading Proficiency Can Do Statements", 3)
	return p
}

func spreadsheetServer(t *testing.T, status int, body string) (*httptest.Server, *[]byte) {
	t.Helper()
	var received []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &received
}

func TestSpreadsheetTarget_OK(t *testing.T) {
	srv, received := spreadsheetServer(t, http.StatusOK, `{"status":"ok"}`)

	err := NewSpreadsheetTarget(srv.URL, srv.Client()).Deliver(context.Background(), &model.Submission{}, samplePayload())

	require.NoError(t, err)
	assert.Equal(t, "ACTFL", gjson.GetBytes(*received, FieldFramework).String())
	assert.Equal(t, int64(3), gjson.GetBytes(*received, "ACTFL Reading Proficiency Can Do Statements").Int())
}

func TestSpreadsheetTarget_ErrorBodyIsRejection(t *testing.T) {
	srv, _ := spreadsheetServer(t, http.StatusOK, `{"status":"error","message":"sheet is full"}`)

	err := NewSpreadsheetTarget(srv.URL, srv.Client()).Deliver(context.Background(), &model.Submission{}, samplePayload())

	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrRejected))
	assert.False(t, errors.Is(err, util.ErrTransport))
	assert.Equal(t, "sheet is full", RejectionMessage(err))
}

func TestSpreadsheetTarget_NonJSONIsTransportFailure(t *testing.T) {
	srv, _ := spreadsheetServer(t, http.StatusInternalServerError, `<html>oops</html>`)

	err := NewSpreadsheetTarget(srv.URL, srv.Client()).Deliver(context.Background(), &model.Submission{}, samplePayload())

	assert.True(t, errors.Is(err, util.ErrTransport))
	assert.Equal(t, "", RejectionMessage(err))
}

func TestSpreadsheetTarget_OKBodyWithServerErrorIsTransportFailure(t *testing.T) {
	srv, _ := spreadsheetServer(t, http.StatusInternalServerError, `{"status":"ok"}`)

	err := NewSpreadsheetTarget(srv.URL, srv.Client()).Deliver(context.Background(), &model.Submission{}, samplePayload())

	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrTransport))
}

func TestSpreadsheetTarget_MissingStatusIsTransportFailure(t *testing.T) {
	srv, _ := spreadsheetServer(t, http.StatusOK, `{"result":"saved"}`)

	err := NewSpreadsheetTarget(srv.URL, srv.Client()).Deliver(context.Background(), &model.Submission{}, samplePayload())

	assert.True(t, errors.Is(err, util.ErrTransport))
}

func TestSpreadsheetTarget_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := NewSpreadsheetTarget(srv.URL, srv.Client()).Deliver(ctx, &model.Submission{}, samplePayload())

	assert.True(t, errors.Is(err, util.ErrTransport))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func column(t *testing.T, header []string, key string) int {
	t.Helper()
	for i, h := range header {
		if h == key {
			return i
		}
	}
	t.Fatalf("column %q not in header %v", key, header)
	return -1
}

func TestLocalAPITarget_StoresAndAppendsCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockSubmissionStore(ctrl)
	sub := &model.Submission{Framework: model.ACTFL}
	store.EXPECT().Create(gomock.Any(), sub).Return(nil)

	path := filepath.Join(t.TempDir(), "data", "out.csv")
	target := NewLocalAPITarget(store, NewCSVSink(path))

	require.NoError(t, target.Deliver(context.Background(), sub, samplePayload()))
	require.NoError(t, NewCSVSink(path).Append(samplePayload()))

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{FieldFramework, FieldConsent, "ACTFL Reading Proficiency Can Do Statements"}, records[0])
	assert.Equal(t, []string{"ACTFL", "Yes", "3"}, records[1])
	assert.Equal(t, records[1], records[2])
}

func TestCSVSink_RowsFollowHeaderAcrossFrameworks(t *testing.T) {
	cefrl := &ScoreResult{
		Framework: model.CEFRL,
		Scores:    model.SkillScores{Reading: 4, Speaking: 2},
		All: []model.ProficiencyStatement{
			stmt("cefrl-reading-4", model.CEFRL, model.Reading, 4, true),
			stmt("cefrl-speaking-2", model.CEFRL, model.Speaking, 2, true),
		},
	}
	first := BuildPayload(AssessmentForm{Fields: map[string]string{FieldConsent: "Yes"}}, actflScore(), time.Minute, fixedNow)
	second := BuildPayload(AssessmentForm{Fields: map[string]string{
		FieldConsent:  "Yes",
		FieldFeedback: "too long",
	}}, cefrl, 2*time.Minute, fixedNow)

	path := filepath.Join(t.TempDir(), "out.csv")
	sink := NewCSVSink(path)
	require.NoError(t, sink.Append(first))
	require.NoError(t, sink.Append(second))
	// a fresh sink picks the header up from the file
	require.NoError(t, NewCSVSink(path).Append(first))

	records := readCSV(t, path)
	require.Len(t, records, 4)
	header := records[0]
	for _, row := range records[1:] {
		assert.Len(t, row, len(header))
	}

	for i, p := range []*Payload{first, second, first} {
		row := records[i+1]
		for _, k := range p.Keys() {
			assert.Equal(t, p.String(k), row[column(t, header, k)], "row %d, column %q", i+1, k)
		}
	}

	cefrlReading := column(t, header, model.ProficiencyField(model.CEFRL, model.Reading))
	actflReading := column(t, header, model.ProficiencyField(model.ACTFL, model.Reading))
	assert.Equal(t, NotApplicable, records[1][cefrlReading])
	assert.Equal(t, "1", records[1][actflReading])
	assert.Equal(t, "4", records[2][cefrlReading])
	assert.Equal(t, NotApplicable, records[2][actflReading])

	feedback := column(t, header, FieldFeedback)
	assert.Equal(t, "", records[1][feedback])
	assert.Equal(t, "too long", records[2][feedback])
	assert.Equal(t, "", records[1][column(t, header, "cefrl-reading-4")])
	assert.Equal(t, "1", records[2][column(t, header, "cefrl-reading-4")])
	assert.Equal(t, "", records[2][column(t, header, "actfl-reading-1")])
}

func TestLocalAPITarget_StoreFailureIsTransport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_service.NewMockSubmissionStore(ctrl)
	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	err := NewLocalAPITarget(store, nil).Deliver(context.Background(), &model.Submission{}, samplePayload())

	assert.True(t, errors.Is(err, util.ErrTransport))
}

func TestParseTargetKind(t *testing.T) {
	k, ok := ParseTargetKind("Spreadsheet")
	assert.True(t, ok)
	assert.Equal(t, TargetSpreadsheet, k)

	_, ok = ParseTargetKind("ftp")
	assert.False(t, ok)
}
