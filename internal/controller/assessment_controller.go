package controller

import (
	"errors"
	"net/http"
	"strings"

	"french_assessment_backend/internal/model"
	"french_assessment_backend/internal/service"
	"french_assessment_backend/internal/util"
	"french_assessment_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

const submitSuccessMessage = "Thanks, your response was saved."

type AssessmentController struct {
	Scoring     *service.ScoringService
	Submissions *service.SubmissionService
	Reports     *service.ReportService
}

func NewAssessmentController(scoring *service.ScoringService, submissions *service.SubmissionService, reports *service.ReportService) *AssessmentController {
	return &AssessmentController{Scoring: scoring, Submissions: submissions, Reports: reports}
}

// @Summary Start a questionnaire session
// @Description The returned session id is sent back with the submission so the time taken can be measured
// @Tags questionnaire
// @Produce json
// @Success 201 {object} util.Response{data=service.Session}
// @Router /sessions [post]
func (c *AssessmentController) StartSession(ctx *gin.Context) {
	sess, err := c.Submissions.StartSession(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, sess)
}

type scoreRequest struct {
	Framework string   `json:"framework" binding:"required"`
	Checked   []string `json:"checked"`
}

// @Summary Score checked statements
// @Description Returns the highest checked level per skill and the chart data
// @Tags questionnaire
// @Accept json
// @Produce json
// @Param body body scoreRequest true "framework and checked statement codes"
// @Success 200 {object} util.Response{data=service.ScoreResult}
// @Failure 400 {object} util.Response
// @Router /assessments/score [post]
func (c *AssessmentController) Score(ctx *gin.Context) {
	var req scoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	framework, ok := model.ParseFramework(req.Framework)
	if !ok {
		util.BadRequest(ctx, "framework must be ACTFL or CEFRL")
		return
	}

	result, err := c.Scoring.Score(ctx.Request.Context(), framework, req.Checked)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	monitoring.ScoreCounter.WithLabelValues(string(framework)).Inc()
	util.Success(ctx, result)
}

// @Summary Submit the questionnaire
// @Description Scores the answers and delivers them to the configured target
// @Tags questionnaire
// @Accept json
// @Produce json
// @Param target query string false "local or spreadsheet, defaults to the configured target"
// @Param body body service.AssessmentForm true "questionnaire answers"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 422 {object} util.Response{data=service.SubmitResult}
// @Failure 502 {object} util.Response{data=service.SubmitResult}
// @Router /assessments/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	var form service.AssessmentForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var kind service.TargetKind
	if raw := ctx.Query("target"); raw != "" {
		k, ok := service.ParseTargetKind(raw)
		if !ok {
			util.BadRequest(ctx, "target must be local or spreadsheet")
			return
		}
		kind = k
	}

	result, err := c.Submissions.Submit(ctx.Request.Context(), form, kind)
	if err != nil {
		respondSubmitError(ctx, result, err)
		return
	}

	util.SuccessWithMessage(ctx, submitSuccessMessage, result)
}

func respondSubmitError(ctx *gin.Context, result *service.SubmitResult, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		util.BadRequest(ctx, "Please complete the required fields: "+strings.Join(verr.Fields, ", "))
	case errors.Is(err, util.ErrValidation), errors.Is(err, util.ErrUnknownFramework), errors.Is(err, util.ErrUnknownTarget):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrSubmissionInFlight):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrRejected):
		util.ErrorWithData(ctx, http.StatusUnprocessableEntity, "Submission rejected: "+service.RejectionMessage(err), result)
	case errors.Is(err, util.ErrTransport):
		util.ErrorWithData(ctx, http.StatusBadGateway, "Submission could not be delivered, please try again", result)
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary Download the PDF report
// @Description Renders the answers and scores as a PDF; when report storage is enabled the stored copy's URL is in X-Report-URL
// @Tags questionnaire
// @Accept json
// @Produce application/pdf
// @Param body body service.AssessmentForm true "questionnaire answers"
// @Success 200 {file} file
// @Failure 400 {object} util.Response
// @Router /assessments/report [post]
func (c *AssessmentController) Report(ctx *gin.Context) {
	var form service.AssessmentForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.Reports.Export(ctx.Request.Context(), form)
	if err != nil {
		if errors.Is(err, util.ErrValidation) || errors.Is(err, util.ErrUnknownFramework) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	if report.URL != "" {
		ctx.Header("X-Report-URL", report.URL)
	}
	ctx.Header("Content-Disposition", `attachment; filename="`+report.Filename+`"`)
	ctx.Data(http.StatusOK, util.MimePDF, report.Content)
}
