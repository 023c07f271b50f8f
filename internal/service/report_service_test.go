package service

import (
	"bytes"
	"context"
	"errors"
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
)

func reportScore() *ScoreResult {
	checked := []model.ProficiencyStatement{
		{Code: "s1", Framework: model.ACTFL, Skill: model.Speaking, Level: 3, Text: "I can answer simple questions.", Checked: true},
		{Code: "r1", Framework: model.ACTFL, Skill: model.Reading, Level: 1, Text: "I can recognize a few words.", Checked: true},
		{Code: "r2", Framework: model.ACTFL, Skill: model.Reading, Level: 2, Text: "I can read menus.", Checked: true},
	}
	scores := ComputeSkillScores(model.ACTFL, checked)
	return &ScoreResult{Framework: model.ACTFL, Scores: scores, Checked: checked, All: checked}
}

func TestBuildReport_GroupsCheckedStatementsBySkill(t *testing.T) {
	form := AssessmentForm{
		Framework: "ACTFL",
		Fields: map[string]string{
			FieldNativeLanguages: "Spanish",
			FieldYearsHighSchool: "3.5",
			FieldSelfReading:     "2",
			FieldConsent:         "Yes",
		},
	}

	r := BuildReport(form, reportScore(), fixedNow)

	require.Len(t, r.Checked, 2)
	assert.Equal(t, "ACTFL Reading", r.Checked[0].Title)
	assert.Equal(t, []string{"I can recognize a few words.", "I can read menus."}, r.Checked[0].Items)
	assert.Equal(t, "ACTFL Speaking", r.Checked[1].Title)

	assert.Equal(t, ReportRow{"Native Languages", "Spanish"}, r.BasicInfo[0])
	assert.Equal(t, ReportRow{"Age", "Not provided"}, r.BasicInfo[1])
	assert.Equal(t, ReportRow{"High School", "3.5 years"}, r.Years[2])
	assert.Equal(t, ReportRow{"Elementary School", "0 years"}, r.Years[0])
	assert.Equal(t, ReportRow{"Reading", "2 (Intermediate)"}, r.SelfRatings[0])
	assert.Equal(t, ReportRow{"Listening", "Not rated"}, r.SelfRatings[1])
	assert.Equal(t, ReportRow{"Reading", "2 (Novice Mid)"}, r.Scores[0])
	assert.Equal(t, ReportRow{"Writing", "0"}, r.Scores[2])
	assert.Equal(t, "No feedback provided", r.Feedback)
}

func TestRenderPDF_ProducesPDF(t *testing.T) {
	r := BuildReport(AssessmentForm{Framework: "ACTFL", Fields: map[string]string{FieldFeedback: "Très bien, merci"}}, reportScore(), fixedNow)

	var buf bytes.Buffer
	require.NoError(t, RenderPDF(r, &buf))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Equal(t, "French_Assessment_2025-03-14.pdf", ReportFilename(fixedNow))
}

func TestReportService_ExportStoresCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mock_service.NewMockStatementSource(ctrl)
	source.EXPECT().GetStatements(gomock.Any(), model.ACTFL).Return(reportScore().All, nil)

	root := t.TempDir()
	storage := &StorageService{Provider: &LocalStorageProvider{Root: root}}
	svc := NewReportService(NewScoringService(source), storage, true)
	svc.now = func() time.Time { return fixedNow }

	out, err := svc.Export(context.Background(), AssessmentForm{Framework: "ACTFL", Checked: []string{"r2"}})
	require.NoError(t, err)

	assert.Equal(t, "French_Assessment_2025-03-14.pdf", out.Filename)
	assert.True(t, bytes.HasPrefix(out.Content, []byte("%PDF")))
	assert.NotEmpty(t, out.URL)

	matches, err := filepath.Glob(filepath.Join(root, "reports", "*_French_Assessment_2025-03-14.pdf"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	stored, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, out.Content, stored)
}

func TestReportService_ExportUnknownFramework(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewReportService(NewScoringService(mock_service.NewMockStatementSource(ctrl)), nil, false)

	_, err := svc.Export(context.Background(), AssessmentForm{Framework: "nope"})

	assert.True(t, errors.Is(err, util.ErrValidation))
}
