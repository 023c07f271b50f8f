package model

import "gorm.io/datatypes"

// Submission is a questionnaire response kept by the local API target.
// swagger:model Submission
type Submission struct {
	UUIDBase
	SessionID string    `gorm:"size:36;index" json:"sessionId"`
	Framework Framework `gorm:"size:10;index;not null" json:"framework"`
	Target    string    `gorm:"size:20" json:"target"`

	Reading   int `json:"reading"`
	Listening int `json:"listening"`
	Writing   int `json:"writing"`
	Speaking  int `json:"speaking"`

	NativeLanguages     string  `gorm:"size:255" json:"nativeLanguages"`
	Age                 int     `json:"age"`
	SpeakingEnvironment string  `gorm:"size:255" json:"speakingEnvironment"`
	Education           string  `gorm:"size:255" json:"education"`
	OtherEducation      string  `gorm:"size:255" json:"otherEducation"`
	YearsElementary     float64 `json:"yearsElementary"`
	YearsJunior         float64 `json:"yearsJunior"`
	YearsHighSchool     float64 `json:"yearsHighSchool"`
	YearsUniversity     float64 `json:"yearsUniversity"`
	YearsInstitutes     float64 `json:"yearsInstitutes"`
	SelfReading         int     `json:"selfReading"`
	SelfListening       int     `json:"selfListening"`
	SelfWriting         int     `json:"selfWriting"`
	SelfSpeaking        int     `json:"selfSpeaking"`
	Consent             string  `gorm:"size:32" json:"consent"`
	Feedback            string  `gorm:"type:text" json:"feedback"`

	TimeTakenSeconds int            `json:"timeTakenSeconds"`
	CompletionDate   string         `gorm:"size:10" json:"completionDate"`
	Payload          datatypes.JSON `gorm:"type:json" json:"payload,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

// Scores returns the stored scores of the framework in use.
func (s Submission) Scores() SkillScores {
	return SkillScores{
		Reading:   s.Reading,
		Listening: s.Listening,
		Writing:   s.Writing,
		Speaking:  s.Speaking,
	}
}
