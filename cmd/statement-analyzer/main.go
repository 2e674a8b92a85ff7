package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"statement-analyzer/internal/api"
	"statement-analyzer/internal/api/handlers"
	"statement-analyzer/internal/app"
	"statement-analyzer/internal/metrics"
	"statement-analyzer/pkg/config"
	"statement-analyzer/pkg/logger"

	"go.uber.org/zap"
)

// @title Statement Analyzer API
// @version 1.0
// @description Bank statement analysis: PDF text extraction, completion-service summary and transaction categorization

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting statement analyzer")

	m := metrics.Default()

	application, err := app.New(cfg, m, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer application.Close()

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(application.Statements, appLogger)
	healthHandler := handlers.NewHealthHandler(cfg.Completion.Provider, application.Profiles.Default(), application.Profiles.Names())

	// Setup router
	server := api.SetupRouter(analyzeHandler, healthHandler, m, cfg, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := server.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := server.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
