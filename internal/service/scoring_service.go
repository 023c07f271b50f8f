package service

import (
	"context"
	"fmt"

	"french_assessment_backend/internal/model"
	"french_assessment_backend/internal/util"

	"github.com/samber/lo"
)

// StatementSource gives the scoring engine the questionnaire's statements
// without tying it to the database.
type StatementSource interface {
	GetStatements(ctx context.Context, framework model.Framework) ([]model.ProficiencyStatement, error)
}

type ScoringService struct {
	Statements StatementSource
}

func NewScoringService(statements StatementSource) *ScoringService {
	return &ScoringService{Statements: statements}
}

// ChartData is what the front end needs to draw the proficiency bar chart.
type ChartData struct {
	Labels      []string          `json:"labels"`
	Values      []int             `json:"values"`
	LevelLabels []string          `json:"levelLabels"`
	Max         int               `json:"max"`
	Title       string            `json:"title"`
	ScoreLabels map[string]string `json:"scoreLabels"`
}

type ScoreResult struct {
	Framework model.Framework              `json:"framework"`
	Scores    model.SkillScores            `json:"scores"`
	Chart     ChartData                    `json:"chart"`
	Checked   []model.ProficiencyStatement `json:"-"`
	All       []model.ProficiencyStatement `json:"-"`
}

// Score loads the framework's statements, marks the checked codes and runs
// ComputeSkillScores over them.
func (s *ScoringService) Score(ctx context.Context, framework model.Framework, checked []string) (*ScoreResult, error) {
	if !framework.Valid() {
		return nil, fmt.Errorf("%w: %q", util.ErrUnknownFramework, framework)
	}

	statements, err := s.Statements.GetStatements(ctx, framework)
	if err != nil {
		return nil, fmt.Errorf("load statements: %w", err)
	}

	marked := MarkChecked(statements, checked)
	scores := ComputeSkillScores(framework, marked)

	return &ScoreResult{
		Framework: framework,
		Scores:    scores,
		Chart:     BuildChart(framework, scores),
		Checked:   lo.Filter(marked, func(st model.ProficiencyStatement, _ int) bool { return st.Checked }),
		All:       marked,
	}, nil
}

// BuildChart turns scores into bar chart data on the framework's scale.
func BuildChart(framework model.Framework, scores model.SkillScores) ChartData {
	labels := lo.Map(model.Skills, func(s model.Skill, _ int) string { return string(s) })
	scoreLabels := make(map[string]string, len(model.Skills))
	for _, skill := range model.Skills {
		scoreLabels[string(skill)] = framework.LevelLabel(scores.Get(skill))
	}
	return ChartData{
		Labels:      labels,
		Values:      scores.Values(),
		LevelLabels: framework.LevelLabels(),
		Max:         framework.MaxLevel(),
		Title:       string(framework) + " Proficiency Level",
		ScoreLabels: scoreLabels,
	}
}

// SkillGroup is the statements of one skill, in questionnaire order.
type SkillGroup struct {
	Skill      model.Skill                  `json:"skill"`
	Statements []model.ProficiencyStatement `json:"statements"`
}

// GroupBySkill groups statements by skill in the fixed skill order. Skills
// without statements are still listed, with an empty slice.
func GroupBySkill(statements []model.ProficiencyStatement) []SkillGroup {
	bySkill := lo.GroupBy(statements, func(st model.ProficiencyStatement) model.Skill { return st.Skill })
	groups := make([]SkillGroup, 0, len(model.Skills))
	for _, skill := range model.Skills {
		sts := bySkill[skill]
		if sts == nil {
			sts = []model.ProficiencyStatement{}
		}
		groups = append(groups, SkillGroup{Skill: skill, Statements: sts})
	}
	return groups
}

// FrameworkInfo describes a framework for the questionnaire's framework picker.
type FrameworkInfo struct {
	Name        model.Framework `json:"name"`
	MaxLevel    int             `json:"maxLevel"`
	LevelLabels []string        `json:"levelLabels"`
	Skills      []model.Skill   `json:"skills"`
}

func (s *ScoringService) Frameworks() []FrameworkInfo {
	return lo.Map(model.Frameworks, func(f model.Framework, _ int) FrameworkInfo {
		return FrameworkInfo{
			Name:        f,
			MaxLevel:    f.MaxLevel(),
			LevelLabels: f.LevelLabels(),
			Skills:      model.Skills,
		}
	})
}

// GroupedStatements returns the framework's statements grouped by skill.
func (s *ScoringService) GroupedStatements(ctx context.Context, framework model.Framework) ([]SkillGroup, error) {
	if !framework.Valid() {
		return nil, fmt.Errorf("%w: %q", util.ErrUnknownFramework, framework)
	}
	statements, err := s.Statements.GetStatements(ctx, framework)
	if err != nil {
		return nil, err
	}
	return GroupBySkill(statements), nil
}
