package controller

import (
	"errors"

	"french_assessment_backend/internal/model"
	"french_assessment_backend/internal/service"
	"french_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Service *service.CatalogService
}

func NewCatalogController(svc *service.CatalogService) *CatalogController {
	return &CatalogController{Service: svc}
}

// @Summary Filter and sort a listing
// @Tags catalog
// @Produce json
// @Param kind path string true "categories or resources"
// @Param level query string false "beginner, intermediate, advanced, superior or all"
// @Param type query string false "card type or all"
// @Param search query string false "case-insensitive text search"
// @Param sort query string false "name or level"
// @Success 200 {object} util.Response{data=service.CatalogListing}
// @Failure 404 {object} util.Response
// @Router /catalog/{kind} [get]
func (c *CatalogController) List(ctx *gin.Context) {
	kind, ok := model.ParseCardKind(ctx.Param("kind"))
	if !ok {
		util.NotFound(ctx)
		return
	}

	sel := model.DefaultSelection()
	if err := ctx.ShouldBindQuery(&sel); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	listing, err := c.Service.List(ctx.Request.Context(), kind, sel)
	if err != nil {
		if errors.Is(err, util.ErrUnknownCatalog) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, listing)
}

// @Summary Filter options of a listing
// @Tags catalog
// @Produce json
// @Param kind path string true "categories or resources"
// @Success 200 {object} util.Response{data=service.CatalogFacets}
// @Failure 404 {object} util.Response
// @Router /catalog/{kind}/facets [get]
func (c *CatalogController) Facets(ctx *gin.Context) {
	kind, ok := model.ParseCardKind(ctx.Param("kind"))
	if !ok {
		util.NotFound(ctx)
		return
	}

	facets, err := c.Service.Facets(ctx.Request.Context(), kind)
	if err != nil {
		if errors.Is(err, util.ErrUnknownCatalog) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, facets)
}
