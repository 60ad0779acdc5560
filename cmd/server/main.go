package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ridwanfathin/invoice-vault/internal/config"
	"github.com/ridwanfathin/invoice-vault/internal/database"
	"github.com/ridwanfathin/invoice-vault/internal/domain"
	"github.com/ridwanfathin/invoice-vault/internal/extraction"
	"github.com/ridwanfathin/invoice-vault/internal/handler"
	"github.com/ridwanfathin/invoice-vault/internal/identity"
	"github.com/ridwanfathin/invoice-vault/internal/middleware"
	"github.com/ridwanfathin/invoice-vault/internal/repository"
	"github.com/ridwanfathin/invoice-vault/internal/server"
	"github.com/ridwanfathin/invoice-vault/internal/service"
	"github.com/ridwanfathin/invoice-vault/internal/storage"
)

func main() {
	// Load configuration
	log.Println("Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Connect to the database
	log.Println("Connecting to database...")
	db, err := database.NewPostgresDB(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize object storage
	log.Println("Initializing object storage...")
	store, err := storage.NewS3Store(&storage.Config{
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		AccessKeySecret: cfg.S3AccessKeySecret,
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
	})
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Initialize the Gemini extractor
	log.Println("Initializing Gemini extractor...")
	extractor, err := extraction.NewGeminiExtractor(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID, cfg.GeminiTimeout)
	if err != nil {
		log.Fatalf("Failed to initialize extractor: %v", err)
	}
	defer extractor.Close()

	// Initialize repository and services
	repo := repository.NewPostgresInvoiceRepository(db.GetPool())
	resolver := identity.NewStaticResolver(domain.AnonymousUserID)

	ingestService := service.NewIngestService(repo, store, extractor, resolver, cfg.MaxUploadSize)
	invoiceService := service.NewInvoiceService(repo, store)
	retentionEngine := service.NewRetentionEngine(repo, cfg.Retention)
	cleanupService := service.NewCleanupService(retentionEngine, repo, store)

	// Create and configure server
	log.Println("Configuring server...")
	appServer := server.NewServer(cfg)
	router := appServer.GetRouter()

	invoiceHandler := handler.NewInvoiceHandler(ingestService, invoiceService, resolver.Resolve(ctx), cfg.MaxUploadSize)
	invoiceHandler.RegisterRoutes(router)

	cleanupHandler := handler.NewCleanupHandler(cleanupService)
	cleanupGroup := router.Group("/v1", middleware.CleanupAuth(cfg.CleanupSecret))
	cleanupHandler.RegisterRoutes(cleanupGroup)

	// Start the scheduled cleanup
	schedulerCtx, cancelScheduler := context.WithCancel(ctx)
	scheduler := service.NewCleanupScheduler(cleanupService, cfg.CleanupSchedule)
	if err := scheduler.Start(schedulerCtx); err != nil {
		log.Fatalf("Failed to start cleanup scheduler: %v", err)
	}
	appServer.OnShutdown(func() {
		cancelScheduler()
		scheduler.Stop()
	})

	// Start server (blocking call)
	log.Printf("Starting server on port %d...", cfg.Port)
	if err := appServer.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server shutdown complete")
}
