package app

import (
	"learning_dashboard_backend/internal/config"
	"learning_dashboard_backend/internal/middleware"
	"learning_dashboard_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")

	// 1. 公共路由
	a.registerPublicRoutes(api, c)

	// 2. AI 生成
	a.registerAIRoutes(api, c)

	// 3. 管理员相关接口
	a.registerAdminRoutes(api, c, cfg)
}

func (a *App) registerPublicRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/health", c.health.HealthCheck)

	// 用户
	api.GET("/user/:id", c.user.GetUser)
	api.GET("/user/username/:username", c.user.GetUserByUsername)
	api.POST("/users", c.user.CreateUser)

	api.GET("/dashboard/:userId", c.dashboard.GetDashboard)

	// 学科与课程
	api.GET("/subjects", c.catalog.ListSubjects)
	api.POST("/subjects", c.catalog.CreateSubject)
	api.GET("/subjects/:subjectId/courses", c.catalog.ListCourses)
	api.GET("/courses/:id", c.catalog.GetCourse)

	api.POST("/progress", c.progress.UpsertProgress)
	api.POST("/assessments", c.assessment.CreateAssessment)
	api.POST("/sessions", c.session.CreateSession)
	api.PATCH("/sessions/:id", c.session.UpdateSession)

	users := api.Group("/users/:userId")
	{
		users.GET("/progress", c.progress.ListProgress)
		users.GET("/progress/subjects/:subjectId", c.progress.GetProgressBySubject)
		users.PATCH("/progress/subjects/:subjectId/strength", c.progress.UpdateStrength)
		users.GET("/assessments", c.assessment.ListAssessments)
		users.GET("/sessions", c.session.ListSessions)
		users.GET("/sessions/active", c.session.GetActiveSession)
		users.GET("/achievements", c.achievement.GetUserAchievements)
		users.GET("/recommendations", c.recommendation.ListRecommendations)
	}
}

func (a *App) registerAIRoutes(api *gin.RouterGroup, c *controllers) {
	ai := api.Group("/ai")
	{
		ai.POST("/generate-content", c.ai.GenerateContent)
		ai.POST("/generate-assessment", c.ai.GenerateAssessment)
		ai.POST("/analyze-weaknesses", c.ai.AnalyzeWeaknesses)
		ai.POST("/daily-recommendations", c.ai.DailyRecommendations)
		ai.POST("/programming-exercise", c.ai.ProgrammingExercise)
	}
}

func (a *App) registerAdminRoutes(api *gin.RouterGroup, c *controllers, cfg *config.Config) {
	api.POST("/admin/login", c.admin.Login)

	admin := api.Group("")
	admin.Use(middleware.AdminMiddleware(cfg))
	{
		admin.PATCH("/user/:id", c.user.UpdateUser)
		admin.POST("/courses", c.catalog.CreateCourse)
		admin.POST("/achievements", c.achievement.AwardAchievement)
		admin.POST("/recommendations", c.recommendation.CreateRecommendation)
		admin.PATCH("/recommendations/:id/deactivate", c.recommendation.DeactivateRecommendation)

		admin.POST("/admin/snapshots", c.admin.CreateSnapshot)
		admin.GET("/admin/snapshots", c.admin.ListSnapshots)
	}
}
