package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"french_assessment_backend/internal/model"
	"french_assessment_backend/internal/util"
)

// Form field names posted by the questionnaire page.
const (
	FieldFramework           = "framework"
	FieldNativeLanguages     = "native_languages"
	FieldAge                 = "age"
	FieldSpeakingEnvironment = "speaking_environment"
	FieldEducation           = "education"
	FieldOtherEducation      = "other_education"
	FieldYearsElementary     = "years_elementary"
	FieldYearsJunior         = "years_junior"
	FieldYearsHighSchool     = "years_high_school"
	FieldYearsUniversity     = "years_university"
	FieldYearsInstitutes     = "years_institutes"
	FieldSelfReading         = "self_reading"
	FieldSelfListening       = "self_listening"
	FieldSelfWriting         = "self_writing"
	FieldSelfSpeaking        = "self_speaking"
	FieldConsent             = "consent"
	FieldFeedback            = "feedback"

	FieldTimeTaken      = "time_taken_seconds"
	FieldCompletionDate = "completion_date"
)

// NumericFields are coerced to numbers, 0 when absent or not numeric.
var NumericFields = []string{
	FieldYearsElementary, FieldYearsJunior, FieldYearsHighSchool, FieldYearsUniversity, FieldYearsInstitutes,
	FieldAge,
	FieldSelfReading, FieldSelfListening, FieldSelfWriting, FieldSelfSpeaking,
}

var selfRatingFields = map[model.Skill]string{
	model.Reading:   FieldSelfReading,
	model.Listening: FieldSelfListening,
	model.Writing:   FieldSelfWriting,
	model.Speaking:  FieldSelfSpeaking,
}

// NotApplicable fills the score fields of the framework not in use.
const NotApplicable = "NA"

// SelfRatingField is the payload key of a skill's self-rating label.
func SelfRatingField(skill model.Skill) string {
	return "Rate your " + strings.ToLower(string(skill)) + " proficiency"
}

// AssessmentForm is the questionnaire as posted by the page.
type AssessmentForm struct {
	SessionID string            `json:"sessionId"`
	Framework string            `json:"framework" binding:"required"`
	Checked   []string          `json:"checked"`
	Fields    map[string]string `json:"fields"`
}

func (f AssessmentForm) Field(name string) string {
	if f.Fields == nil {
		return ""
	}
	return strings.TrimSpace(f.Fields[name])
}

// requiredFields holds what a submission cannot be accepted without.
type requiredFields struct {
	Framework string `validate:"required,oneof=ACTFL CEFRL"`
	Consent   string `validate:"required"`
}

// Payload is an insertion-ordered set of fields sent to a submission target.
type Payload struct {
	keys   []string
	values map[string]interface{}
}

func NewPayload() *Payload {
	return &Payload{values: make(map[string]interface{})}
}

// Set adds or replaces a field; a replaced field keeps its first position.
func (p *Payload) Set(key string, v interface{}) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = v
}

func (p *Payload) Get(key string) (interface{}, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p *Payload) Keys() []string {
	return append([]string(nil), p.keys...)
}

func (p *Payload) Len() int {
	return len(p.keys)
}

// String renders a field for CSV output.
func (p *Payload) String(key string) string {
	switch v := p.values[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

// MarshalJSON writes the fields in insertion order.
func (p *Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// BuildPayload merges the raw form fields with the derived ones: coerced
// numbers, elapsed time, completion date, per-skill scores of both
// frameworks ("NA" for the one not in use), self-rating labels and one 0/1
// field per statement.
func BuildPayload(form AssessmentForm, score *ScoreResult, elapsed time.Duration, now time.Time) *Payload {
	p := NewPayload()

	rawKeys := make([]string, 0, len(form.Fields))
	for k := range form.Fields {
		rawKeys = append(rawKeys, k)
	}
	sort.Strings(rawKeys)
	for _, k := range rawKeys {
		p.Set(k, form.Fields[k])
	}

	p.Set(FieldFramework, string(score.Framework))

	for _, k := range NumericFields {
		p.Set(k, util.ToNumber(form.Field(k)))
	}

	if elapsed < 0 {
		elapsed = 0
	}
	p.Set(FieldTimeTaken, int(elapsed/time.Second))
	p.Set(FieldCompletionDate, now.Format(util.DateFormat))

	other := score.Framework.Other()
	for _, skill := range model.Skills {
		p.Set(model.ProficiencyField(score.Framework, skill), score.Scores.Get(skill))
	}
	for _, skill := range model.Skills {
		p.Set(model.ProficiencyField(other, skill), NotApplicable)
	}

	for _, skill := range model.Skills {
		p.Set(SelfRatingField(skill), model.SelfRatingLabel(util.ToInt(form.Field(selfRatingFields[skill]))))
	}

	for _, st := range score.All {
		v := 0
		if st.Checked {
			v = 1
		}
		p.Set(st.Code, v)
	}

	return p
}

// NewSubmission maps a built payload onto the stored submission row.
func NewSubmission(form AssessmentForm, score *ScoreResult, p *Payload, target TargetKind) (*model.Submission, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	timeTaken, _ := p.Get(FieldTimeTaken)
	completion, _ := p.Get(FieldCompletionDate)

	sub := &model.Submission{
		SessionID:           form.SessionID,
		Framework:           score.Framework,
		Target:              string(target),
		Reading:             score.Scores.Reading,
		Listening:           score.Scores.Listening,
		Writing:             score.Scores.Writing,
		Speaking:            score.Scores.Speaking,
		NativeLanguages:     form.Field(FieldNativeLanguages),
		Age:                 util.ToInt(form.Field(FieldAge)),
		SpeakingEnvironment: form.Field(FieldSpeakingEnvironment),
		Education:           form.Field(FieldEducation),
		OtherEducation:      form.Field(FieldOtherEducation),
		YearsElementary:     util.ToNumber(form.Field(FieldYearsElementary)),
		YearsJunior:         util.ToNumber(form.Field(FieldYearsJunior)),
		YearsHighSchool:     util.ToNumber(form.Field(FieldYearsHighSchool)),
		YearsUniversity:     util.ToNumber(form.Field(FieldYearsUniversity)),
		YearsInstitutes:     util.ToNumber(form.Field(FieldYearsInstitutes)),
		SelfReading:         util.ToInt(form.Field(FieldSelfReading)),
		SelfListening:       util.ToInt(form.Field(FieldSelfListening)),
		SelfWriting:         util.ToInt(form.Field(FieldSelfWriting)),
		SelfSpeaking:        util.ToInt(form.Field(FieldSelfSpeaking)),
		Consent:             form.Field(FieldConsent),
		Feedback:            form.Field(FieldFeedback),
		Payload:             raw,
	}
	if v, ok := timeTaken.(int); ok {
		sub.TimeTakenSeconds = v
	}
	if v, ok := completion.(string); ok {
		sub.CompletionDate = v
	}
	return sub, nil
}
