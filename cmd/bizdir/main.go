// Package main is the entry point for the business directory server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bizdir/internal/cache"
	"bizdir/internal/config"
	"bizdir/internal/database"
	"bizdir/internal/handlers"
	"bizdir/internal/importer"
	"bizdir/internal/middleware"
	"bizdir/internal/premium"
	"bizdir/internal/router"
	"bizdir/internal/storage"
	"bizdir/internal/store"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the default admin and the Unknown category (no-op once present).
	if err := database.Seed(db); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (Redis-compatible listing cache). Optional: with
	// no host configured the API runs uncached.
	var listings *cache.ListingCache
	if cfg.ValkeyHost != "" {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		listings = cache.NewListingCache(valkeyClient, cache.DefaultListingTTL)
	} else {
		slog.Warn("valkey not configured — listing cache disabled")
	}

	// Company image storage: S3-compatible object storage when configured,
	// a local directory otherwise.
	var images storage.ImageStore
	uploadDir := ""
	s3store, err := storage.NewS3Store(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if s3store != nil {
		images = s3store
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		local, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			slog.Error("failed to initialize local storage", "error", err)
			os.Exit(1)
		}
		images = local
		uploadDir = local.Dir()
		slog.Info("local storage ready", "dir", uploadDir)
	}

	// Initialize data stores.
	adminStore := store.NewAdminStore(db)
	companyStore := store.NewCompanyStore(db)
	categoryStore := store.NewCategoryStore(db)
	notificationStore := store.NewNotificationStore(db)
	premiumStore := store.NewPremiumStore(db)

	// Bulk import pipeline.
	imp := importer.New(companyStore, categoryStore, importer.Policy(cfg.CategoryPolicy), cfg.ImportMaxRows)

	// Premium lifecycle scheduler: expires lapsed listings and warns
	// about upcoming expiries on a fixed interval.
	scheduler := premium.NewScheduler(premiumStore, cfg.PremiumSweepInterval, cfg.PremiumWarningWindow, logger)
	scheduler.Start()
	defer scheduler.Stop()

	// Throttle public company submissions per client IP.
	submitLimiter := middleware.NewRateLimiter(30, time.Minute)
	defer submitLimiter.Stop()

	// Create handler groups with their dependencies.
	publicHandlers := handlers.NewPublic(companyStore, categoryStore, images, listings)
	adminHandlers := handlers.NewAdmin(companyStore, categoryStore, notificationStore, images, listings)
	authHandlers := handlers.NewAuth(adminStore, cfg.JWTSecret, cfg.TokenTTL)
	importExportHandlers := handlers.NewImportExport(imp, companyStore, listings)

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Options{
		Public:        publicHandlers,
		Admin:         adminHandlers,
		Auth:          authHandlers,
		ImportExport:  importExportHandlers,
		JWTSecret:     cfg.JWTSecret,
		SubmitLimiter: submitLimiter,
		UploadDir:     uploadDir,
	})

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate spreadsheet exports on large directories.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
