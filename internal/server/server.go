package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"taskflow/internal/config"
	"taskflow/internal/handler"
	"taskflow/internal/middleware"
	"taskflow/internal/repository"
	"taskflow/internal/service"
)

type Server struct {
	Engine     *gin.Engine
	DB         *gorm.DB
	Config     *config.Config
	Recurrence *service.RecurrenceService
}

func Init(cfg *config.Config) (*Server, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := repository.Open(postgres.Open(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Info().Msg("connected to database")

	r := gin.Default()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tagRepo := repository.NewTagRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	timeLogRepo := repository.NewTimeLogRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Services
	taskService := service.NewTaskService(taskRepo, tagRepo, categoryRepo, goalRepo, templateRepo)
	goalService := service.NewGoalService(goalRepo)
	analyticsService := service.NewAnalyticsService(analyticsRepo, goalRepo, taskRepo)
	recurrenceService := service.NewRecurrenceService(taskRepo)

	// Handlers
	userHandler := handler.NewUserHandler(userRepo)
	taskHandler := handler.NewTaskHandler(taskService)
	tagHandler := handler.NewTagHandler(tagRepo)
	categoryHandler := handler.NewCategoryHandler(categoryRepo)
	goalHandler := handler.NewGoalHandler(goalService)
	templateHandler := handler.NewTemplateHandler(templateRepo, taskService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentRepo, taskRepo, cfg.UploadDir)
	timeLogHandler := handler.NewTimeLogHandler(timeLogRepo, taskRepo)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	adminHandler := handler.NewAdminHandler(recurrenceService)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware())
	{
		// Task routes
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks", taskHandler.List)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.POST("/tasks/:id/toggle-complete", taskHandler.ToggleComplete)
		authorized.POST("/tasks/:id/duplicate", taskHandler.Duplicate)
		authorized.POST("/tasks/:id/extend-due-date", taskHandler.ExtendDueDate)
		authorized.PUT("/tasks/:id/dependencies", taskHandler.SetDependencies)
		authorized.GET("/tasks/:id/dependencies", taskHandler.GetDependencies)
		authorized.GET("/tasks/:id/dependents", taskHandler.GetDependents)
		authorized.POST("/tasks/:id/create-template", templateHandler.CreateFromTask)

		// Attachment routes
		authorized.POST("/tasks/:id/attachments", attachmentHandler.Upload)
		authorized.GET("/tasks/:id/attachments", attachmentHandler.List)
		authorized.GET("/attachments/:attachmentID/download", attachmentHandler.Download)
		authorized.DELETE("/attachments/:attachmentID", attachmentHandler.Delete)

		// Time log routes
		authorized.POST("/tasks/:id/time-logs", timeLogHandler.Create)
		authorized.GET("/tasks/:id/time-logs", timeLogHandler.List)

		// Tag routes
		authorized.POST("/tags", tagHandler.Create)
		authorized.GET("/tags", tagHandler.List)
		authorized.PUT("/tags/:id", tagHandler.Update)
		authorized.DELETE("/tags/:id", tagHandler.Delete)

		// Category routes
		authorized.POST("/categories", categoryHandler.Create)
		authorized.GET("/categories", categoryHandler.List)
		authorized.GET("/categories/:id", categoryHandler.GetByID)
		authorized.PUT("/categories/:id", categoryHandler.Update)
		authorized.DELETE("/categories/:id", categoryHandler.Delete)

		// Goal routes
		authorized.POST("/goals", goalHandler.Create)
		authorized.GET("/goals", goalHandler.List)
		authorized.GET("/goals/:id", goalHandler.GetByID)
		authorized.PUT("/goals/:id", goalHandler.Update)
		authorized.POST("/goals/:id/progress", goalHandler.UpdateProgress)
		authorized.DELETE("/goals/:id", goalHandler.Delete)

		// Template routes
		authorized.POST("/templates", templateHandler.Create)
		authorized.GET("/templates", templateHandler.List)
		authorized.PUT("/templates/:id", templateHandler.Update)
		authorized.DELETE("/templates/:id", templateHandler.Delete)
		authorized.POST("/templates/:id/create-task", templateHandler.CreateTask)

		// Analytics routes
		authorized.GET("/analytics", analyticsHandler.Report)
		authorized.GET("/dashboard", analyticsHandler.Dashboard)

		// Maintenance routes
		authorized.POST("/admin/generate-recurring", adminHandler.GenerateRecurring)
	}

	return &Server{
		Engine:     r,
		DB:         db,
		Config:     cfg,
		Recurrence: recurrenceService,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Info().Str("port", s.Config.ServerPort).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to listen")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
