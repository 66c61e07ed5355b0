package app

import (
	"ortprep_backend/docs"
	"ortprep_backend/internal/config"
	"ortprep_backend/internal/middleware"
	"ortprep_backend/internal/model"
	"ortprep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.Profile)

		tests := authGroup.Group("/tests")
		{
			tests.POST("/generate", c.test.GenerateTest)
			tests.POST("", c.test.CreateTest)
			tests.POST("/submit", c.test.SubmitTest)
			tests.GET("", c.test.ListTests)
			tests.GET("/mine", c.test.MyTests)
			tests.GET("/user/:userId", middleware.RoleMiddleware(model.Admin), c.test.UserTests)
			tests.GET("/:id", c.test.GetTest)
			tests.GET("/:id/answers", c.test.GetTestAnswers)
		}

		progress := authGroup.Group("/test-progress")
		{
			progress.POST("/save", c.progress.SaveProgress)
			progress.GET("", c.progress.ListProgress)
			progress.GET("/:testId", c.progress.GetProgress)
			progress.DELETE("/:testId", c.progress.DeleteProgress)
		}

		history := authGroup.Group("/history")
		{
			history.GET("", c.history.ListHistory)
			history.GET("/:id", c.history.GetHistory)
			history.POST("", c.history.CreateHistory)
			history.DELETE("/:id", middleware.RoleMiddleware(model.Admin), c.history.DeleteHistory)
		}

		advice := authGroup.Group("/advice")
		{
			advice.POST("", c.advice.GenerateAdvice)
			advice.GET("", c.advice.ListAdvice)
		}

		ai := authGroup.Group("/ai")
		{
			ai.POST("/ask", c.aiQuestion.Ask)
			ai.GET("/top-questions", c.aiQuestion.TopQuestions)

			admin := ai.Group("/questions", middleware.RoleMiddleware(model.Admin))
			{
				admin.GET("", c.aiQuestion.ListQuestions)
				admin.GET("/:id", c.aiQuestion.GetQuestion)
				admin.DELETE("/:id", c.aiQuestion.DeleteQuestion)
			}
		}

		samples := authGroup.Group("/ort-samples")
		{
			samples.GET("", c.ortSample.ListSamples)
			samples.GET("/:id", c.ortSample.GetSample)

			adminOnly := middleware.RoleMiddleware(model.Admin)
			samples.POST("", adminOnly, c.ortSample.CreateSample)
			samples.PUT("/:id", adminOnly, c.ortSample.UpdateSample)
			samples.DELETE("/:id", adminOnly, c.ortSample.DeleteSample)
		}
	}
}
