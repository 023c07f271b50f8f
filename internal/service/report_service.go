package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"french_assessment_backend/internal/model"
	"french_assessment_backend/internal/util"
	"french_assessment_backend/pkg/logger"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

type ReportRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type StatementGroup struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// Report is the printable summary of one questionnaire. It is built from
// state that was already computed, never re-derived from the page.
type Report struct {
	GeneratedAt time.Time        `json:"generatedAt"`
	Framework   model.Framework  `json:"framework"`
	BasicInfo   []ReportRow      `json:"basicInfo"`
	Years       []ReportRow      `json:"years"`
	SelfRatings []ReportRow      `json:"selfRatings"`
	Scores      []ReportRow      `json:"scores"`
	Checked     []StatementGroup `json:"checked"`
	Consent     string           `json:"consent"`
	Feedback    string           `json:"feedback"`
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// BuildReport assembles the summary. Checked statements are grouped under
// "<Framework> <Skill>" in the fixed skill order; empty groups are left out.
func BuildReport(form AssessmentForm, score *ScoreResult, now time.Time) Report {
	years := func(field string) string {
		return strconv.FormatFloat(util.ToNumber(form.Field(field)), 'f', -1, 64) + " years"
	}
	rating := func(field string) string {
		n := util.ToInt(form.Field(field))
		if label := model.SelfRatingLabel(n); label != "" {
			return fmt.Sprintf("%d (%s)", n, label)
		}
		return "Not rated"
	}

	r := Report{
		GeneratedAt: now,
		Framework:   score.Framework,
		BasicInfo: []ReportRow{
			{"Native Languages", orDefault(form.Field(FieldNativeLanguages), "Not provided")},
			{"Age", orDefault(form.Field(FieldAge), "Not provided")},
			{"French Speaking Environment", orDefault(form.Field(FieldSpeakingEnvironment), "Not provided")},
			{"Highest Level of Education", orDefault(form.Field(FieldEducation), "Not provided")},
			{"Other Education", orDefault(form.Field(FieldOtherEducation), "Not provided")},
		},
		Years: []ReportRow{
			{"Elementary School", years(FieldYearsElementary)},
			{"Middle/Junior High School", years(FieldYearsJunior)},
			{"High School", years(FieldYearsHighSchool)},
			{"University/College", years(FieldYearsUniversity)},
			{"Language Institutes", years(FieldYearsInstitutes)},
		},
		SelfRatings: []ReportRow{
			{"Reading", rating(FieldSelfReading)},
			{"Listening", rating(FieldSelfListening)},
			{"Writing", rating(FieldSelfWriting)},
			{"Speaking", rating(FieldSelfSpeaking)},
		},
		Consent:  orDefault(form.Field(FieldConsent), "Not provided"),
		Feedback: orDefault(form.Field(FieldFeedback), "No feedback provided"),
	}

	for _, skill := range model.Skills {
		level := score.Scores.Get(skill)
		value := strconv.Itoa(level)
		if label := score.Framework.LevelLabel(level); label != "" {
			value += " (" + label + ")"
		}
		r.Scores = append(r.Scores, ReportRow{string(skill), value})
	}

	for _, group := range GroupBySkill(score.Checked) {
		if len(group.Statements) == 0 {
			continue
		}
		items := make([]string, 0, len(group.Statements))
		for _, st := range group.Statements {
			items = append(items, st.Text)
		}
		r.Checked = append(r.Checked, StatementGroup{
			Title: string(score.Framework) + " " + string(group.Skill),
			Items: items,
		})
	}

	return r
}

// ReportFilename is the download name of a report generated at t.
func ReportFilename(t time.Time) string {
	return "French_Assessment_" + t.Format(util.DateFormat) + ".pdf"
}

// RenderPDF writes the report as an A4 portrait PDF.
func RenderPDF(r Report, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width := pageWidth - left - right

	heading := func(text string) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(0, 116, 217)
		pdf.CellFormat(width, 8, tr(text), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	table := func(rows []ReportRow) {
		pdf.SetFont("Helvetica", "", 10)
		for _, row := range rows {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(width*0.45, 7, tr(row.Label), "1", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(width*0.55, 7, tr(row.Value), "1", 1, "L", false, 0, "")
		}
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(width, 10, tr("French Language Self-Assessment Results"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(width, 6, tr("Generated: "+r.GeneratedAt.Format(util.TimeFormat)), "", 1, "L", false, 0, "")

	heading("Basic Information")
	table(r.BasicInfo)

	heading("French Learning Experience (Years)")
	table(r.Years)

	heading("Self-Rated Proficiency (1-4 Scale)")
	table(r.SelfRatings)

	heading("Assessment Results")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(width, 6, tr("Framework Used: "+string(r.Framework)), "", 1, "L", false, 0, "")
	table(r.Scores)

	heading(string(r.Framework) + " Proficiency Statements - Checked Responses")
	if len(r.Checked) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(width, 6, tr("No proficiency statements were selected."), "", "L", false)
	}
	for _, group := range r.Checked {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(width, 7, tr(group.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, item := range group.Items {
			pdf.MultiCell(width, 5, tr("- "+item), "", "L", false)
		}
	}

	heading("Additional Information")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(width, 6, tr("Data Sharing Consent: "+r.Consent), "", "L", false)
	pdf.MultiCell(width, 6, tr("Feedback: "+r.Feedback), "1", "L", false)

	return pdf.Output(w)
}

type ReportService struct {
	Scoring *ScoringService
	Storage *StorageService
	Store   bool

	now func() time.Time
}

func NewReportService(scoring *ScoringService, storage *StorageService, store bool) *ReportService {
	return &ReportService{Scoring: scoring, Storage: storage, Store: store, now: time.Now}
}

type ExportedReport struct {
	Filename string
	Content  []byte
	URL      string
}

// Export scores the form once, builds the report from that result and
// renders it. When storing is enabled a failed upload is logged, not fatal.
func (s *ReportService) Export(ctx context.Context, form AssessmentForm) (*ExportedReport, error) {
	framework, ok := model.ParseFramework(form.Framework)
	if !ok {
		return nil, &ValidationError{Fields: []string{"Framework"}}
	}

	score, err := s.Scoring.Score(ctx, framework, form.Checked)
	if err != nil {
		return nil, err
	}

	now := s.now()
	report := BuildReport(form, score, now)

	var buf bytes.Buffer
	if err := RenderPDF(report, &buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	out := &ExportedReport{Filename: ReportFilename(now), Content: buf.Bytes()}

	if s.Store && s.Storage != nil {
		key := "reports/" + model.GenerateUUID() + "_" + out.Filename
		url, err := s.Storage.Upload(ctx, key, bytes.NewReader(out.Content), int64(len(out.Content)), util.MimePDF)
		if err != nil {
			logger.Log.Error("store report failed", zap.String("key", key), zap.Error(err))
		} else {
			out.URL = url
		}
	}

	return out, nil
}
