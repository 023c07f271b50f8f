package controller

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"french_assessment_backend/internal/service"
	"french_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Auth        *service.AuthService
	Submissions *service.SubmissionService
}

func NewAdminController(auth *service.AuthService, submissions *service.SubmissionService) *AdminController {
	return &AdminController{Auth: auth, Submissions: submissions}
}

// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "credentials"
// @Success 200 {object} util.Response{data=service.LoginResponse}
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /admin/login [post]
func (c *AdminController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Auth.Login(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAdminDisabled):
			util.Error(ctx, http.StatusForbidden, err.Error())
		case errors.Is(err, util.ErrInvalidCredentials):
			util.Error(ctx, http.StatusUnauthorized, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, resp)
}

// @Summary List stored submissions
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page, from 1"
// @Param limit query int false "page size, at most 100"
// @Param framework query string false "ACTFL or CEFRL"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /admin/submissions [get]
func (c *AdminController) ListSubmissions(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	subs, total, err := c.Submissions.List(ctx.Request.Context(), page, limit, ctx.Query("framework"))
	if err != nil {
		if errors.Is(err, util.ErrUnknownFramework) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  subs,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary Export stored submissions as CSV
// @Tags admin
// @Produce text/csv
// @Security ApiKeyAuth
// @Success 200 {file} file
// @Router /admin/submissions/export [get]
func (c *AdminController) ExportSubmissions(ctx *gin.Context) {
	var buf bytes.Buffer
	if _, err := c.Submissions.ExportCSV(ctx.Request.Context(), &buf); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := "french_language_test_data_" + time.Now().Format(util.DateFormat) + ".csv"
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, util.MimeCSV, buf.Bytes())
}
