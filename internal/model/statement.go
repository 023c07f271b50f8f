package model

// ProficiencyStatement is a "can-do" checkbox of the questionnaire.
// swagger:model ProficiencyStatement
type ProficiencyStatement struct {
	BaseModel
	Code      string    `gorm:"size:64;uniqueIndex;not null" json:"code" yaml:"code"`
	Framework Framework `gorm:"size:10;index;not null" json:"framework" yaml:"framework"`
	Skill     Skill     `gorm:"size:20;index;not null" json:"skill" yaml:"skill"`
	Level     int       `gorm:"not null" json:"level" yaml:"level"`
	Text      string    `gorm:"type:text;not null" json:"text" yaml:"text"`
	Position  int       `gorm:"default:0" json:"position" yaml:"-"`

	// Checked is request state, never stored.
	Checked bool `gorm:"-" json:"checked" yaml:"-"`
}

func (ProficiencyStatement) TableName() string {
	return "proficiency_statements"
}

// SkillScores holds the highest checked level per skill. A struct rather than
// a map so the four keys are always present.
type SkillScores struct {
	Reading   int `json:"Reading"`
	Listening int `json:"Listening"`
	Writing   int `json:"Writing"`
	Speaking  int `json:"Speaking"`
}

func (s SkillScores) Get(skill Skill) int {
	switch skill {
	case Reading:
		return s.Reading
	case Listening:
		return s.Listening
	case Writing:
		return s.Writing
	case Speaking:
		return s.Speaking
	}
	return 0
}

func (s *SkillScores) Set(skill Skill, level int) {
	switch skill {
	case Reading:
		s.Reading = level
	case Listening:
		s.Listening = level
	case Writing:
		s.Writing = level
	case Speaking:
		s.Speaking = level
	}
}

// Values returns the scores in Skills order.
func (s SkillScores) Values() []int {
	out := make([]int, len(Skills))
	for i, skill := range Skills {
		out[i] = s.Get(skill)
	}
	return out
}
