package controller

import (
	"errors"

	"french_assessment_backend/internal/model"
	"french_assessment_backend/internal/service"
	"french_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FrameworkController struct {
	Scoring *service.ScoringService
}

func NewFrameworkController(scoring *service.ScoringService) *FrameworkController {
	return &FrameworkController{Scoring: scoring}
}

// @Summary List proficiency frameworks
// @Tags questionnaire
// @Produce json
// @Success 200 {object} util.Response{data=[]service.FrameworkInfo}
// @Router /frameworks [get]
func (c *FrameworkController) ListFrameworks(ctx *gin.Context) {
	util.Success(ctx, c.Scoring.Frameworks())
}

// @Summary List can-do statements of a framework grouped by skill
// @Tags questionnaire
// @Produce json
// @Param framework query string true "ACTFL or CEFRL"
// @Success 200 {object} util.Response{data=[]service.SkillGroup}
// @Failure 400 {object} util.Response
// @Router /statements [get]
func (c *FrameworkController) ListStatements(ctx *gin.Context) {
	framework, ok := model.ParseFramework(ctx.Query("framework"))
	if !ok {
		util.BadRequest(ctx, "framework must be ACTFL or CEFRL")
		return
	}

	groups, err := c.Scoring.GroupedStatements(ctx.Request.Context(), framework)
	if err != nil {
		if errors.Is(err, util.ErrUnknownFramework) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, groups)
}
