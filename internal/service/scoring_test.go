package service

import (
	"context"
	"errors"
	"testing"

	"french_assessment_backend/internal/model"
	mock_service "french_assessment_backend/internal/service/mock"
	"french_assessment_backend/internal/util"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stmt(code string, fw model.Framework, skill model.Skill, level int, checked bool) model.ProficiencyStatement {
	return model.ProficiencyStatement{Code: code, Framework: fw, Skill: skill, Level: level, Checked: checked}
}

func TestComputeSkillScores_HighestCheckedLevelPerSkill(t *testing.T) {
	statements := []model.ProficiencyStatement{
		stmt("r3", model.ACTFL, model.Reading, 3, true),
		stmt("r5", model.ACTFL, model.Reading, 5, false),
		stmt("l2", model.ACTFL, model.Listening, 2, true),
	}

	scores := ComputeSkillScores(model.ACTFL, statements)

	assert.Equal(t, model.SkillScores{Reading: 3, Listening: 2}, scores)
}

func TestComputeSkillScores_IgnoresOtherFramework(t *testing.T) {
	statements := []model.ProficiencyStatement{
		stmt("a", model.ACTFL, model.Writing, 8, true),
		stmt("c", model.CEFRL, model.Writing, 2, true),
	}

	assert.Equal(t, model.SkillScores{Writing: 2}, ComputeSkillScores(model.CEFRL, statements))
	assert.Equal(t, model.SkillScores{Writing: 8}, ComputeSkillScores(model.ACTFL, statements))
}

func TestComputeSkillScores_EmptyAndNoneChecked(t *testing.T) {
	assert.Equal(t, model.SkillScores{}, ComputeSkillScores(model.ACTFL, nil))

	statements := []model.ProficiencyStatement{
		stmt("s1", model.ACTFL, model.Speaking, 4, false),
	}
	assert.Equal(t, model.SkillScores{}, ComputeSkillScores(model.ACTFL, statements))
}

func TestComputeSkillScores_CheckOrderDoesNotMatter(t *testing.T) {
	a := []model.ProficiencyStatement{
		stmt("s7", model.ACTFL, model.Speaking, 7, true),
		stmt("s2", model.ACTFL, model.Speaking, 2, true),
	}
	b := []model.ProficiencyStatement{a[1], a[0]}

	assert.Equal(t, ComputeSkillScores(model.ACTFL, a), ComputeSkillScores(model.ACTFL, b))
	assert.Equal(t, 7, ComputeSkillScores(model.ACTFL, a).Speaking)
}

func TestComputeSkillScores_NegativeLevelCountsAsZero(t *testing.T) {
	statements := []model.ProficiencyStatement{
		stmt("bad", model.CEFRL, model.Reading, -3, true),
	}
	assert.Equal(t, 0, ComputeSkillScores(model.CEFRL, statements).Reading)
}

func TestMarkChecked_DoesNotModifyInput(t *testing.T) {
	in := []model.ProficiencyStatement{
		stmt("a", model.ACTFL, model.Reading, 1, false),
		stmt("b", model.ACTFL, model.Reading, 2, true),
	}

	out := MarkChecked(in, []string{"a", "unknown"})

	assert.True(t, out[0].Checked)
	assert.False(t, out[1].Checked)
	assert.False(t, in[0].Checked)
	assert.True(t, in[1].Checked)
}

func TestScoringService_Score(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mock_service.NewMockStatementSource(ctrl)
	source.EXPECT().GetStatements(gomock.Any(), model.CEFRL).Return([]model.ProficiencyStatement{
		stmt("c-r-1", model.CEFRL, model.Reading, 1, false),
		stmt("c-r-4", model.CEFRL, model.Reading, 4, false),
		stmt("c-s-2", model.CEFRL, model.Speaking, 2, false),
	}, nil)

	svc := NewScoringService(source)
	res, err := svc.Score(context.Background(), model.CEFRL, []string{"c-r-4", "c-s-2"})
	require.NoError(t, err)

	assert.Equal(t, model.SkillScores{Reading: 4, Speaking: 2}, res.Scores)
	assert.Len(t, res.Checked, 2)
	assert.Len(t, res.All, 3)
	assert.Equal(t, []int{4, 0, 0, 2}, res.Chart.Values)
	assert.Equal(t, 6, res.Chart.Max)
	assert.Equal(t, "B2", res.Chart.ScoreLabels["Reading"])
	assert.Equal(t, "", res.Chart.ScoreLabels["Writing"])
}

func TestScoringService_ScoreUnknownFramework(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewScoringService(mock_service.NewMockStatementSource(ctrl))
	_, err := svc.Score(context.Background(), model.Framework("DELF"), nil)

	assert.True(t, errors.Is(err, util.ErrUnknownFramework))
}

func TestBuildChart_ACTFLScale(t *testing.T) {
	chart := BuildChart(model.ACTFL, model.SkillScores{Reading: 10, Listening: 1})

	assert.Equal(t, []string{"Reading", "Listening", "Writing", "Speaking"}, chart.Labels)
	assert.Equal(t, 10, chart.Max)
	assert.Equal(t, "ACTFL Proficiency Level", chart.Title)
	assert.Equal(t, "Superior", chart.ScoreLabels["Reading"])
	assert.Equal(t, "Novice Low", chart.ScoreLabels["Listening"])
}

func TestGroupBySkill_KeepsOrderAndEmptySkills(t *testing.T) {
	groups := GroupBySkill([]model.ProficiencyStatement{
		stmt("s1", model.ACTFL, model.Speaking, 1, false),
		stmt("r1", model.ACTFL, model.Reading, 1, false),
		stmt("r2", model.ACTFL, model.Reading, 2, false),
	})

	require.Len(t, groups, 4)
	assert.Equal(t, model.Reading, groups[0].Skill)
	assert.Equal(t, []string{"r1", "r2"}, []string{groups[0].Statements[0].Code, groups[0].Statements[1].Code})
	assert.Empty(t, groups[1].Statements)
	assert.NotNil(t, groups[2].Statements)
	assert.Equal(t, "s1", groups[3].Statements[0].Code)
}
