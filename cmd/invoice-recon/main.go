package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"invoice-recon/internal/api"
	"invoice-recon/internal/api/handlers"
	"invoice-recon/internal/repository"
	"invoice-recon/internal/service"
	"invoice-recon/pkg/auth"
	"invoice-recon/pkg/config"
	"invoice-recon/pkg/logger"
	"invoice-recon/pkg/postgres"

	"go.uber.org/zap"
)

// @title Invoice Reconciliation API
// @version 1.0
// @description Multi-signal product matching and invoice line reconciliation service

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting invoice reconciliation service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	productRepo := repository.NewProductRepository(db, appLogger)
	invoiceRepo := repository.NewInvoiceRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)

	// The embedding provider is optional; without it queries run on text
	// signals only.
	var embedder service.Embedder
	if cfg.Embedding.APIKey != "" {
		embeddingService, err := service.NewEmbeddingService(ctx, &cfg.Embedding, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize embedding service", zap.Error(err))
		}
		embedder = embeddingService
	} else {
		appLogger.Warn("No embedding API key configured, semantic scoring disabled")
	}

	matchService := service.NewMatchService(productRepo, embedder, cfg, appLogger)
	reconcileService := service.NewReconcileService(invoiceRepo, matchService.Engine(), appLogger)

	// Load the initial catalog snapshot. An empty catalog is not fatal; the
	// snapshot can be rebuilt through the reload endpoint after seeding.
	if _, err := matchService.ReloadSnapshot(ctx); err != nil {
		appLogger.Error("Initial catalog load failed", zap.Error(err))
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	searchHandler := handlers.NewSearchHandler(matchService, appLogger)
	reconcileHandler := handlers.NewReconcileHandler(matchService, reconcileService, appLogger)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceRepo, appLogger)
	statusHandler := handlers.NewStatusHandler(matchService, productRepo, invoiceRepo, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, searchHandler, reconcileHandler, invoiceHandler, statusHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
