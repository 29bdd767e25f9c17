package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/config"
	"github.com/emsclinic/ems-backend/internal/handler"
	"github.com/emsclinic/ems-backend/internal/middleware"
	"github.com/emsclinic/ems-backend/internal/pdf"
	"github.com/emsclinic/ems-backend/internal/repository"
	"github.com/emsclinic/ems-backend/internal/service"
	"github.com/emsclinic/ems-backend/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	var logger *zap.Logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("storage_path", cfg.Storage.Path),
	)

	// Open the embedded document store
	store, err := storage.OpenBolt(cfg.Storage.Path, logger)
	if err != nil {
		logger.Fatal("Failed to open document store", zap.Error(err))
	}
	defer store.Close()

	// Initialize the repository and seed the starter document on first run
	repo := repository.New(store, logger)
	if err := repo.Init(context.Background()); err != nil {
		logger.Fatal("Failed to initialize document store", zap.Error(err))
	}
	logger.Info("Document store ready")

	// Initialize services
	reportService := service.NewReportService(repo, logger)
	backupService := service.NewBackupService(repo, logger)
	pdfGenerator := pdf.NewGenerator(logger)

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(repo, logger)
	serviceHandler := handler.NewServiceHandler(repo, logger)
	doctorHandler := handler.NewDoctorHandler(repo, logger)
	appointmentHandler := handler.NewAppointmentHandler(repo, logger)
	recordHandler := handler.NewMedicalRecordHandler(repo, logger)
	contractHandler := handler.NewContractHandler(repo, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)
	backupHandler := handler.NewBackupHandler(backupService, logger)
	documentHandler := handler.NewDocumentHandler(repo, pdfGenerator, logger)
	healthHandler := handler.NewHealthHandler(store, logger)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r := gin.New()

	// Add recovery middleware (must be first)
	r.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Configure appropriately for production
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add request ID middleware
	r.Use(middleware.RequestIDMiddleware())

	// Add request logging middleware
	r.Use(middleware.RequestLoggingMiddleware(logger))

	// Add error logging middleware
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	r.GET("/health", healthHandler.Check)

	api := r.Group("/api/v1")
	{
		api.POST("/patients", patientHandler.Create)
		api.GET("/patients", patientHandler.List)
		api.GET("/patients/:id", patientHandler.Get)
		api.DELETE("/patients/:id", patientHandler.Delete)

		api.POST("/services", serviceHandler.Create)
		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)
		api.DELETE("/services/:id", serviceHandler.Delete)

		api.POST("/doctors", doctorHandler.Create)
		api.GET("/doctors", doctorHandler.List)
		api.GET("/doctors/:id", doctorHandler.Get)

		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments", appointmentHandler.List)
		api.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)

		api.POST("/medical-records", recordHandler.Create)
		api.GET("/medical-records", recordHandler.List)

		api.POST("/contracts", contractHandler.Create)
		api.GET("/contracts", contractHandler.List)
		api.GET("/contracts/:id", contractHandler.Get)
		api.PATCH("/contracts/:id/status", contractHandler.UpdateStatus)
		api.PATCH("/contracts/:id/payment", contractHandler.UpdatePayment)

		api.GET("/reports/patients", reportHandler.Patients)
		api.GET("/reports/patients/csv", reportHandler.PatientsCSV)
		api.GET("/reports/financial", reportHandler.Financial)
		api.GET("/reports/financial/csv", reportHandler.FinancialCSV)
		api.GET("/reports/appointments", reportHandler.Appointments)

		api.GET("/backup/export", backupHandler.Export)
		api.POST("/backup/import", backupHandler.Import)

		api.GET("/documents/referrals/:appointmentId", documentHandler.Referral)
		api.GET("/documents/contracts/:contractId", documentHandler.Contract)
	}

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
