package app

import (
	"learnhub_backend/docs"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Check)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/courses", c.course.List)
		public.GET("/courses/categories", c.course.Categories)
		public.GET("/courses/:id", middleware.TryAuthMiddleware(cfg), c.course.Get)
		public.GET("/achievements/verify", c.achievement.Verify)
		public.GET("/achievements/leaderboard", c.achievement.Leaderboard)
		public.GET("/achievements/:id", middleware.TryAuthMiddleware(cfg), c.achievement.Get)
	}

	// Authenticated routes.
	auth := router.Group("/api")
	auth.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		auth.GET("/profile", c.auth.GetProfile)
		auth.PUT("/profile", c.user.UpdateProfile)
		auth.GET("/profile/stats", c.user.GetStats)

		courses := auth.Group("/courses")
		{
			courses.POST("", middleware.RoleMiddleware(model.Instructor), c.course.Create)
			courses.PUT("/:id", middleware.RoleMiddleware(model.Instructor), c.course.Update)
			courses.DELETE("/:id", middleware.RoleMiddleware(model.Admin), c.course.Delete)
			courses.POST("/:id/enroll", c.course.Enroll)
			courses.GET("/enrolled/my", c.course.MyCourses)
			courses.GET("/teaching/my", middleware.RoleMiddleware(model.Instructor), c.course.Teaching)
		}

		progress := auth.Group("/progress")
		{
			progress.GET("/course/:courseId", c.progress.GetCourseProgress)
			progress.PUT("/course/:courseId/module", c.progress.CompleteModule)
			progress.POST("/course/:courseId/bookmark", c.progress.AddBookmark)
			progress.DELETE("/course/:courseId/bookmark/:bookmarkId", c.progress.RemoveBookmark)
			progress.PUT("/course/:courseId/notes", c.progress.UpdateNotes)
			progress.POST("/session/start", c.progress.StartSession)
			progress.GET("/session/active", c.progress.ActiveSession)
			progress.PUT("/session/:sessionId/end", c.progress.EndSession)
			progress.GET("/sessions", c.progress.SessionHistory)
		}

		assignments := auth.Group("/assignments")
		{
			assignments.GET("/course/:courseId", c.assignment.ListByCourse)
			assignments.GET("/course/:courseId/grade", c.assignment.CourseGrade)
			assignments.GET("/:id", c.assignment.Get)
			assignments.POST("", middleware.RoleMiddleware(model.Instructor), c.assignment.Create)
			assignments.PUT("/:id", middleware.RoleMiddleware(model.Instructor), c.assignment.Update)
			assignments.DELETE("/:id", middleware.RoleMiddleware(model.Instructor), c.assignment.Delete)
			assignments.POST("/:id/submit", c.assignment.Submit)
			assignments.GET("/:id/submissions/my", c.assignment.MySubmissions)
			assignments.GET("/:id/submissions", middleware.RoleMiddleware(model.Instructor), c.assignment.PendingSubmissions)
			assignments.GET("/:id/statistics", middleware.RoleMiddleware(model.Instructor), c.assignment.Statistics)
			assignments.PUT("/submissions/:id/grade", middleware.RoleMiddleware(model.Instructor), c.assignment.Grade)
		}

		achievements := auth.Group("/achievements")
		{
			achievements.GET("/my", c.achievement.MyAchievements)
			achievements.POST("/:id/share", c.achievement.Share)
			achievements.POST("/certificates/course/:courseId", c.achievement.IssueCertificate)
		}

		analytics := auth.Group("/analytics")
		{
			analytics.GET("/dashboard", c.analytics.Dashboard)
			analytics.GET("/learning", c.analytics.Learning)
			analytics.GET("/instructor", middleware.RoleMiddleware(model.Instructor), c.analytics.Instructor)
			analytics.GET("/system", middleware.RoleMiddleware(model.Admin), c.analytics.System)
		}

		tasks := auth.Group("/tasks")
		{
			tasks.GET("", c.task.List)
			tasks.POST("", c.task.Create)
			tasks.GET("/analytics", c.task.Analytics)
			tasks.GET("/category/:category", c.task.ListByCategory)
			tasks.PUT("/:id", c.task.Update)
			tasks.DELETE("/:id", c.task.Delete)
		}
	}
}
