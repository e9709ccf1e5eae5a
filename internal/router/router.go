package router

import (
	"time"

	"github.com/sinnovah/exam-cram/internal/database/repository"
	"github.com/sinnovah/exam-cram/internal/handlers"
	"github.com/sinnovah/exam-cram/internal/middleware"
	"github.com/sinnovah/exam-cram/internal/services"
	"github.com/sinnovah/exam-cram/internal/services/auth"
	"github.com/sinnovah/exam-cram/internal/services/excel"
	"github.com/sinnovah/exam-cram/internal/services/password"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with all API routes
func SetupRouter(db *gorm.DB) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Create a new router
	r := gin.New()

	// Use middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Create repositories
	topicRepo := repository.NewTopicRepository(db)
	tagRepo := repository.NewTagRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	questionRepo := repository.NewQuestionRepository(db)

	// Create services
	authService := auth.NewAuthService(db, password.DefaultPolicy())
	topicService := services.NewTopicService(db, topicRepo)
	attributeService := services.NewAttributeService(tagRepo, resourceRepo, questionRepo)
	excelService := excel.NewService(topicRepo, tagRepo, resourceRepo, questionRepo)

	// Create middleware with services
	bearerTokenMiddleware := middleware.NewBearerTokenMiddleware(authService)

	// Create handlers with services
	userHandler := handlers.NewUserHandler(authService)
	topicHandler := handlers.NewTopicHandler(topicService, excelService)
	tagHandler := handlers.NewTagHandler(attributeService)
	resourceHandler := handlers.NewResourceHandler(attributeService)
	questionHandler := handlers.NewQuestionHandler(attributeService)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logrus.Info("Swagger UI endpoint registered at /swagger/index.html")

	// API routes
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		// User routes (public)
		user := api.Group("/user")
		{
			user.POST("/create", userHandler.Register)
			user.POST("/token", userHandler.Token)
			user.POST("/token/refresh", userHandler.RefreshToken)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(bearerTokenMiddleware.BearerTokenAuthMiddleware())
		{
			// User protected routes
			userProtected := protected.Group("/user")
			{
				userProtected.GET("/me", userHandler.Me)
				userProtected.PATCH("/me", userHandler.UpdateMe)
				userProtected.PUT("/me", userHandler.UpdateMe)
				userProtected.POST("/logout", userHandler.Logout)
			}

			// Topic routes
			topic := protected.Group("/topic")
			{
				topics := topic.Group("/topics")
				{
					topics.POST("", topicHandler.CreateTopic)
					topics.GET("", topicHandler.ListTopics)
					topics.GET("/export", topicHandler.ExportTopics)
					topics.GET("/:id", topicHandler.GetTopic)
					topics.PUT("/:id", topicHandler.UpdateTopic)
					topics.PATCH("/:id", topicHandler.PatchTopic)
					topics.DELETE("/:id", topicHandler.DeleteTopic)
				}

				tags := topic.Group("/tags")
				{
					tags.GET("", tagHandler.ListTags)
					tags.PUT("/:id", tagHandler.UpdateTag)
					tags.PATCH("/:id", tagHandler.UpdateTag)
					tags.DELETE("/:id", tagHandler.DeleteTag)
				}

				resources := topic.Group("/resources")
				{
					resources.GET("", resourceHandler.ListResources)
					resources.PUT("/:id", resourceHandler.UpdateResource)
					resources.PATCH("/:id", resourceHandler.PatchResource)
					resources.DELETE("/:id", resourceHandler.DeleteResource)
				}

				questions := topic.Group("/questions")
				{
					questions.GET("", questionHandler.ListQuestions)
					questions.PUT("/:id", questionHandler.UpdateQuestion)
					questions.PATCH("/:id", questionHandler.PatchQuestion)
					questions.DELETE("/:id", questionHandler.DeleteQuestion)
				}
			}
		}
	}

	return r
}
