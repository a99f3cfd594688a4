package handlers

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studenthub/studenthub-api/internal/auth"
	"github.com/studenthub/studenthub-api/internal/middleware"
	"github.com/studenthub/studenthub-api/internal/realtime"
	"github.com/studenthub/studenthub-api/internal/repository"
	"github.com/studenthub/studenthub-api/internal/services"
)

// NewRouter wires repositories, services, and handlers and registers every
// route with its capability: none, authenticated, or authenticated+admin.
// Capabilities live here and nowhere else; handler bodies never check auth.
func NewRouter(db *gorm.DB, tokens *auth.TokenManager, hub *realtime.Hub, logger *slog.Logger) *gin.Engine {
	studentRepo := repository.NewStudentRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	authService := services.NewAuthService(studentRepo, tokens)
	studentService := services.NewStudentService(studentRepo)
	projectService := services.NewProjectService(projectRepo, studentRepo, taskRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)
	messageService := services.NewMessageService(messageRepo, studentRepo, hub)

	authHandler := NewAuthHandler(authService, logger)
	studentHandler := NewStudentHandler(studentService, logger)
	projectHandler := NewProjectHandler(projectService, logger)
	taskHandler := NewTaskHandler(taskService, logger)
	messageHandler := NewMessageHandler(messageService, hub, logger)

	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(tokens)
	requireAdmin := middleware.RequireAdmin()

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.SignUp)
			authGroup.POST("/signin", authHandler.SignIn)
			authGroup.GET("/me", requireAuth, authHandler.Me)
		}

		students := api.Group("/students")
		students.Use(requireAuth)
		{
			students.GET("", studentHandler.ListStudents)
			students.GET("/:id", studentHandler.GetStudent)
			students.PATCH("/:id", requireAdmin, studentHandler.UpdateStudent)
			students.DELETE("/:id", requireAdmin, studentHandler.DeleteStudent)
		}

		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.POST("", requireAdmin, projectHandler.CreateProject)
			projects.PATCH("/:id", requireAdmin, projectHandler.UpdateProject)
			projects.DELETE("/:id", requireAdmin, projectHandler.DeleteProject)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", requireAdmin, taskHandler.DeleteTask)
		}

		messages := api.Group("/messages")
		messages.Use(requireAuth)
		{
			messages.GET("", messageHandler.ListMessages)
			messages.GET("/conversation", messageHandler.Conversation)
			messages.GET("/stream", messageHandler.Stream)
			messages.POST("", messageHandler.CreateMessage)
			messages.PATCH("/:id", requireAdmin, messageHandler.UpdateMessage)
			messages.DELETE("/:id", requireAdmin, messageHandler.DeleteMessage)
		}
	}

	return r
}
