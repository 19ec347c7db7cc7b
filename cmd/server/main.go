package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"talentgate/assess/internal/config"
	"talentgate/assess/internal/handlers"
	"talentgate/assess/internal/jobs"
	"talentgate/assess/internal/llm"
	_ "talentgate/assess/internal/llm/gemini"
	"talentgate/assess/internal/metrics"
	"talentgate/assess/internal/models"
	"talentgate/assess/internal/pipeline"
	"talentgate/assess/internal/prompts"
	"talentgate/assess/internal/routers"
	"talentgate/assess/internal/store"
	"talentgate/assess/internal/utils"
)

func registerRoutes(router *chi.Mux, assessmentHandler *handlers.AssessmentHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.AssessmentRoutes(router, assessmentHandler)
	router.Handle("/metrics", metrics.Handler())
}

// Helper for environment variables
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// initDatabase initializes the PostgreSQL database connection
func initDatabase() (*gorm.DB, error) {
	host := getEnv("POSTGRES_HOST", "localhost")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "postgres")
	dbname := getEnv("POSTGRES_DB", "postgres")
	port := getEnv("POSTGRES_PORT", "5432")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.AssessmentRecord{}, &models.EvaluationRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func main() {
	logger := utils.GetLogger()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.Int("eval_workers", cfg.EvalWorkers))

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	provider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize generative provider", zap.Error(err))
	}

	// Database is optional: without it assessments live only in the cache
	// and evaluations are not retained for reporting.
	db, err := initDatabase()
	if err != nil {
		logger.Error("Failed to initialize database, running cache-only", zap.Error(err))
		db = nil
	}

	resultStore := store.NewResultStore(db, cfg.AssessmentTTL, logger)
	svc := pipeline.NewService(provider, promptManager, cfg, logger)

	assessmentHandler := handlers.NewAssessmentHandler(svc, resultStore, provider, logger)
	healthHandler := handlers.NewHealthHandler(provider, promptManager, cfg)

	var exporterJob *jobs.ReportExporterJob
	if db != nil {
		exporterConfig := &jobs.ExporterConfig{
			Schedule:      getEnv("REPORT_EXPORT_SCHEDULE", "0 2 * * *"),
			ExportDir:     getEnv("REPORT_EXPORT_DIR", "./exports"),
			ExportEnabled: getEnv("REPORT_EXPORT_ENABLED", "false") == "true",
		}
		exporterJob = jobs.NewReportExporterJob(resultStore, exporterConfig, logger)
		if err := exporterJob.Start(); err != nil {
			logger.Error("Failed to start report exporter job", zap.Error(err))
		}
	}

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:5173")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(120*time.Second))
	router.Use(metrics.Middleware("assess"))

	registerRoutes(router, assessmentHandler, healthHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port

	// http server with timeouts; generation requests can take a while, the
	// write timeout has to cover two generation batches with retries
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Assessment service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Assessment service shutting down...")

	if exporterJob != nil {
		exporterJob.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Assessment service exited")
}
