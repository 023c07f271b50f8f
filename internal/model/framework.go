package model

import "strings"

// Framework is a proficiency scale the questionnaire can be answered against.
type Framework string

const (
	ACTFL Framework = "ACTFL"
	CEFRL Framework = "CEFRL"
)

// Frameworks lists the supported frameworks in display order.
var Frameworks = []Framework{ACTFL, CEFRL}

// Skill is one of the four assessed language skills.
type Skill string

const (
	Reading   Skill = "Reading"
	Listening Skill = "Listening"
	Writing   Skill = "Writing"
	Speaking  Skill = "Speaking"
)

// Skills is the fixed skill order used for scores, charts and payloads.
var Skills = []Skill{Reading, Listening, Writing, Speaking}

// Index 0 is the empty label so a level can index the slice directly.
var (
	actflLevelLabels = []string{
		"",
		"Novice Low", "Novice Mid", "Novice High",
		"Intermediate Low", "Intermediate Mid", "Intermediate High",
		"Advanced Low", "Advanced Mid", "Advanced High", "Superior",
	}
	cefrlLevelLabels = []string{"", "A1", "A2", "B1", "B2", "C1", "C2"}
)

// ParseFramework accepts a framework name in any letter case.
func ParseFramework(s string) (Framework, bool) {
	f := Framework(strings.ToUpper(strings.TrimSpace(s)))
	return f, f.Valid()
}

func (f Framework) Valid() bool {
	return f == ACTFL || f == CEFRL
}

// Other returns the framework that is not in use.
func (f Framework) Other() Framework {
	if f == CEFRL {
		return ACTFL
	}
	return CEFRL
}

func (f Framework) LevelLabels() []string {
	switch f {
	case ACTFL:
		return append([]string(nil), actflLevelLabels...)
	case CEFRL:
		return append([]string(nil), cefrlLevelLabels...)
	}
	return nil
}

func (f Framework) MaxLevel() int {
	switch f {
	case ACTFL:
		return len(actflLevelLabels) - 1
	case CEFRL:
		return len(cefrlLevelLabels) - 1
	}
	return 0
}

// LevelLabel returns "" for 0 and for levels outside the scale.
func (f Framework) LevelLabel(level int) string {
	labels := f.LevelLabels()
	if level <= 0 || level >= len(labels) {
		return ""
	}
	return labels[level]
}

// ProficiencyField is the payload key carrying a framework's score for a skill.
func ProficiencyField(f Framework, s Skill) string {
	return string(f) + " " + string(s) + " Proficiency Can Do Statements"
}

// ParseSkill accepts a skill name in any letter case.
func ParseSkill(s string) (Skill, bool) {
	for _, skill := range Skills {
		if strings.EqualFold(string(skill), strings.TrimSpace(s)) {
			return skill, true
		}
	}
	return "", false
}

var selfRatingLabels = []string{"Beginner", "Intermediate", "Advanced", "Superior"}

// SelfRatingLabel maps the 1-4 self-rating slider value to its label.
func SelfRatingLabel(rating int) string {
	if rating < 1 || rating > len(selfRatingLabels) {
		return ""
	}
	return selfRatingLabels[rating-1]
}
