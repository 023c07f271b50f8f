package app

import (
	"french_assessment_backend/docs"
	"french_assessment_backend/internal/config"
	"french_assessment_backend/internal/middleware"
	"french_assessment_backend/internal/util"
	"french_assessment_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerAdminRoutes(router, c, s)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		public.GET("/frameworks", c.framework.ListFrameworks)
		public.GET("/statements", c.framework.ListStatements)

		public.POST("/sessions", c.assessment.StartSession)
		public.POST("/assessments/score", c.assessment.Score)
		public.POST("/assessments/submit", c.assessment.Submit)
		public.POST("/assessments/report", c.assessment.Report)

		public.GET("/catalog/:kind", c.catalog.List)
		public.GET("/catalog/:kind/facets", c.catalog.Facets)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, s *services) {
	router.POST("/api/admin/login", c.admin.Login)

	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(s.auth.Secret), middleware.RoleMiddleware(util.RoleAdmin))
	{
		admin.GET("/submissions", c.admin.ListSubmissions)
		admin.GET("/submissions/export", c.admin.ExportSubmissions)
	}
}
