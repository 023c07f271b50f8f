package service

import (
	"french_assessment_backend/internal/model"
	"french_assessment_backend/pkg/logger"

	"go.uber.org/zap"
)

// ComputeSkillScores returns, for every skill, the highest level among the
// checked statements of framework. Statements of other frameworks are
// ignored; a skill with nothing checked scores 0.
func ComputeSkillScores(framework model.Framework, statements []model.ProficiencyStatement) model.SkillScores {
	var scores model.SkillScores
	for _, st := range statements {
		if st.Framework != framework || !st.Checked {
			continue
		}
		skill, ok := model.ParseSkill(string(st.Skill))
		if !ok {
			logger.Log.Debug("statement with unknown skill ignored",
				zap.String("code", st.Code), zap.String("skill", string(st.Skill)))
			continue
		}
		level := st.Level
		if level < 0 {
			logger.Log.Debug("statement with malformed level counted as 0",
				zap.String("code", st.Code), zap.Int("level", st.Level))
			level = 0
		}
		if level > scores.Get(skill) {
			scores.Set(skill, level)
		}
	}
	return scores
}

// MarkChecked flags the statements whose code is in checked. The input slice
// is not modified.
func MarkChecked(statements []model.ProficiencyStatement, checked []string) []model.ProficiencyStatement {
	set := make(map[string]struct{}, len(checked))
	for _, code := range checked {
		set[code] = struct{}{}
	}
	out := make([]model.ProficiencyStatement, len(statements))
	for i, st := range statements {
		_, st.Checked = set[st.Code]
		out[i] = st
	}
	return out
}
