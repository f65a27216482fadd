package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kimi/legalease/backend/config"
	"github.com/kimi/legalease/backend/handler"
	"github.com/kimi/legalease/backend/middleware"
	"github.com/kimi/legalease/backend/pkg/logger"
	"github.com/kimi/legalease/backend/service"
)

func main() {
	// Optional .env for secrets (GEMINI_API_KEY, LEGALEASE_JWT_SECRET)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Select file-storage backend
	var storage service.FileStorage
	switch cfg.Storage.Backend {
	case "minio":
		minioStorage, err := service.NewMinioStorage(&cfg.Minio)
		if err != nil {
			slog.Error("failed to initialize MINIO storage", "error", err)
			os.Exit(1)
		}
		if err := minioStorage.EnsureBucket(context.Background()); err != nil {
			slog.Error("failed to ensure MINIO bucket", "error", err)
			os.Exit(1)
		}
		storage = minioStorage
	default:
		localStorage, err := service.NewLocalStorage(cfg.Storage.LocalDir)
		if err != nil {
			slog.Error("failed to initialize local storage", "error", err)
			os.Exit(1)
		}
		storage = localStorage
	}
	slog.Info("file storage initialized", "backend", cfg.Storage.Backend)

	// Initialize record store and services
	service.InitRecordStore(&cfg.Store)
	store := service.GetRecordStore()

	extractor := service.NewTikaExtractor(&cfg.Tika)
	processor := service.NewDocumentProcessor(storage, extractor, store)
	gateway := service.NewGeminiService(&cfg.Gemini)
	analyzer := service.NewAnalysisService(gateway, store)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	documentHandler := handler.NewDocumentHandler(processor, store)
	aiHandler := handler.NewAIHandler(analyzer, store)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())     // Request ID for tracing
	router.Use(middleware.Recovery())      // Panic recovery
	router.Use(middleware.RequestLogger()) // Access logging
	router.Use(corsMiddleware())           // CORS

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes. Login gets a tight per-IP limit against brute force.
	api := router.Group("/api")
	{
		api.POST("/auth/login", middleware.RateLimit(10, time.Minute), authHandler.Login)
	}

	// Protected routes, rate limited per authenticated user
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	protected.Use(middleware.RateLimit(100, time.Minute))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.POST("/documents/upload", documentHandler.Upload)
		protected.GET("/documents", documentHandler.List)
		protected.GET("/documents/:id", documentHandler.Get)
		protected.GET("/documents/:id/status", documentHandler.GetStatus)
		protected.POST("/documents/:id/reprocess", documentHandler.Reprocess)
		protected.DELETE("/documents/:id", documentHandler.Delete)

		protected.POST("/ai/documents/:id/summarize", aiHandler.Summarize)
		protected.POST("/ai/documents/:id/extract-clauses", aiHandler.ExtractClauses)
		protected.POST("/ai/documents/:id/question", aiHandler.Question)
		protected.POST("/ai/templates/generate", aiHandler.GenerateTemplate)
		protected.GET("/ai/documents/:id/analyses", aiHandler.ListAnalyses)
		protected.GET("/ai/documents/:id/clauses", aiHandler.ListClauses)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
