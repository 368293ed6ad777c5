package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	handlers "github.com/studioforma/atelier/internal/adapter/handler/http"
	"github.com/studioforma/atelier/internal/config"
	"github.com/studioforma/atelier/internal/infrastructure/database"
	"github.com/studioforma/atelier/internal/logger"
	"github.com/studioforma/atelier/internal/middleware/auth"
	"github.com/studioforma/atelier/internal/usecase"
)

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	repos  *database.Repositories

	email     usecase.EmailSender
	publisher usecase.EventPublisher
	storage   usecase.BlobUploader
}

func NewServer(
	cfg *config.Config,
	zapLogger *zap.Logger,
	repos *database.Repositories,
	email usecase.EmailSender,
	publisher usecase.EventPublisher,
	storage usecase.BlobUploader,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.OFF)
	e.Validator = handlers.NewRequestValidator()

	stripe.Key = cfg.Stripe.SecretKey

	e.Use(middleware.Recover())
	e.Use(logger.NewEchoRequestLogger(zapLogger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE},
	}))

	return &Server{
		config:    cfg,
		logger:    zapLogger,
		echo:      e,
		repos:     repos,
		email:     email,
		publisher: publisher,
		storage:   storage,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Usecases
	dispatcher := usecase.NewNotificationDispatcher(
		s.repos.Notification,
		s.repos.Task,
		s.repos.Member,
		s.email,
		s.publisher,
		s.logger,
		s.config.Notify.DueSoonDays,
		s.config.Notify.MaxConcurrent,
	)
	taskService := usecase.NewTaskService(s.repos.Task, dispatcher, s.logger)
	clearanceWorkflow := usecase.NewClearanceWorkflow(s.repos.Clearance, s.repos.Task, dispatcher, s.logger)
	projectService := usecase.NewProjectService(s.repos.Project, s.repos.Client, s.logger)
	statsService := usecase.NewProjectStatsService(s.repos.Project, s.repos.Task, s.repos.ProjectImage, s.logger)
	invoiceService := usecase.NewInvoiceService(s.repos.Invoice, s.repos.Client, s.logger, s.config.Service.ClientURL)
	documentService := usecase.NewDocumentService(s.repos.Document, s.repos.ProjectImage, s.storage, s.logger)
	meetingService := usecase.NewMeetingService(s.repos.Meeting, s.logger)
	memberService := usecase.NewMemberService(s.repos.Member, s.logger)

	// Handlers
	taskHandler := handlers.NewTaskHandler(taskService, s.logger)
	clearanceHandler := handlers.NewClearanceHandler(clearanceWorkflow, s.logger)
	projectHandler := handlers.NewProjectHandler(projectService, statsService, s.logger)
	clientHandler := handlers.NewClientHandler(projectService, s.logger)
	notificationHandler := handlers.NewNotificationHandler(dispatcher, s.repos.Notification, s.logger)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, s.logger)
	documentHandler := handlers.NewDocumentHandler(documentService, s.logger)
	meetingHandler := handlers.NewMeetingHandler(meetingService, s.logger)
	memberHandler := handlers.NewMemberHandler(memberService, s.logger)

	jwtConfig := auth.JWTConfig{
		Secret: s.config.JWT.Secret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
		},
	}

	v1 := s.echo.Group("/api/v1", auth.JWTMiddleware(jwtConfig))

	// Tasks and the clearance workflow
	tasks := v1.Group("/tasks")
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("", taskHandler.ListTasks)
	tasks.GET("/:id", taskHandler.GetTask)
	tasks.PATCH("/:id", taskHandler.UpdateTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)
	tasks.PUT("/:id/status", taskHandler.SetStatus)
	tasks.POST("/:id/complete", taskHandler.CompleteTask)
	tasks.POST("/:id/clearance", clearanceHandler.RequestClearance)
	tasks.GET("/:id/clearances", clearanceHandler.HistoryForTask)

	clearances := v1.Group("/clearances")
	clearances.GET("/pending", clearanceHandler.PendingQueue)
	clearances.POST("/:id/resolve", clearanceHandler.ResolveClearance)

	// Projects, stats and the gallery
	projects := v1.Group("/projects")
	projects.POST("", projectHandler.CreateProject)
	projects.GET("", projectHandler.ListProjects)
	projects.GET("/:id", projectHandler.GetProject)
	projects.PATCH("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)
	projects.GET("/:id/stats", projectHandler.GetProjectStats)
	projects.POST("/:id/images", documentHandler.UploadImage)
	projects.GET("/:id/images", documentHandler.ListImages)

	clients := v1.Group("/clients")
	clients.POST("", clientHandler.CreateClient)
	clients.GET("", clientHandler.ListClients)
	clients.GET("/:id", clientHandler.GetClient)
	clients.PATCH("/:id", clientHandler.UpdateClient)
	clients.DELETE("/:id", clientHandler.DeleteClient)

	// Staff directory
	members := v1.Group("/members")
	members.GET("", memberHandler.ListMembers)
	members.PUT("/me", memberHandler.SyncProfile)

	// Notifications
	notifications := v1.Group("/notifications")
	notifications.GET("", notificationHandler.ListMine)
	notifications.POST("/:id/read", notificationHandler.MarkRead)
	notifications.POST("/alerts", notificationHandler.SendCustomAlert)
	notifications.POST("/deadline-scan", notificationHandler.RunDeadlineScan)

	// Financials
	invoices := v1.Group("/invoices")
	invoices.POST("", invoiceHandler.CreateInvoice)
	invoices.GET("", invoiceHandler.ListInvoices)
	invoices.GET("/:id", invoiceHandler.GetInvoice)
	invoices.DELETE("/:id", invoiceHandler.DeleteInvoice)
	invoices.POST("/:id/issue", invoiceHandler.IssueInvoice)
	invoices.POST("/:id/pay", invoiceHandler.MarkPaid)
	invoices.POST("/:id/void", invoiceHandler.VoidInvoice)
	invoices.POST("/:id/payment-link", invoiceHandler.CreatePaymentLink)

	// Documents and meeting logs
	documents := v1.Group("/documents")
	documents.POST("", documentHandler.UploadDocument)
	documents.GET("", documentHandler.ListDocuments)
	documents.DELETE("/:id", documentHandler.DeleteDocument)

	images := v1.Group("/images")
	images.DELETE("/:id", documentHandler.DeleteImage)

	meetings := v1.Group("/meetings")
	meetings.POST("", meetingHandler.CreateMeeting)
	meetings.GET("", meetingHandler.ListMeetings)
	meetings.GET("/:id", meetingHandler.GetMeeting)
	meetings.PATCH("/:id", meetingHandler.UpdateMeeting)
	meetings.DELETE("/:id", meetingHandler.DeleteMeeting)
}
