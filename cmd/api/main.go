package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"packline/internal/backup"
	"packline/internal/clock"
	"packline/internal/config"
	"packline/internal/database"
	"packline/internal/events"
	"packline/internal/exclusion"
	"packline/internal/handler"
	"packline/internal/manifest"
	"packline/internal/metrics"
	"packline/internal/normalizer"
	"packline/internal/repository"
	"packline/internal/router"
	"packline/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting packline API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(pool, logger)
	manifestRepo := repository.NewManifestRepository(pool, logger)

	// Initialize the test-order exclusion set
	excluded, err := loadExclusionSet(ctx, cfg.Exclusion, logger)
	if err != nil {
		return fmt.Errorf("failed to load exclusion set: %w", err)
	}
	logger.Info().Int("orders_excluded", excluded.Size()).Msg("exclusion set ready")

	// Initialize the normalization pipeline
	var idgen normalizer.IDGenerator
	switch cfg.Pipeline.IDStrategy {
	case "stable":
		idgen = normalizer.StableIDGenerator{}
	default:
		idgen = normalizer.WeekdayIDGenerator{Clock: clock.System{}}
	}

	norm := normalizer.New(excluded, idgen, logger)
	builder := manifest.NewBuilder(cfg.Manifest)

	// Initialize the payload backup writer
	var backupWriter *backup.Writer
	if cfg.Backup.Enabled {
		backupWriter, err = backup.NewWriter(cfg.Backup.Directory, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize backup writer: %w", err)
		}
	}

	// Initialize the event publisher
	var publisher events.Publisher
	if cfg.Events.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic, logger)
	} else {
		publisher = events.NewNopPublisher()
		logger.Info().Msg("event publishing disabled")
	}
	defer publisher.Close()

	// Initialize metrics
	reg := metrics.NewRegistry()

	// Initialize services
	webhookService := service.NewWebhookService(norm, builder, orderRepo, manifestRepo, backupWriter, publisher, reg, logger)
	reportService := service.NewReportService(orderRepo, logger)

	// Initialize HTTP handlers
	webhookHandler := handler.NewWebhookHandler(webhookService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)

	// Initialize router
	mux := router.New(webhookHandler, reportHandler, reg.Handler(), cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// loadExclusionSet builds the test-order exclusion set from the configured
// source. A failed file or S3 load falls back to the static list.
func loadExclusionSet(ctx context.Context, cfg config.ExclusionConfig, logger zerolog.Logger) (exclusion.Set, error) {
	staticSet := exclusion.NewSet(cfg.OrderNumbers)

	switch cfg.Source {
	case "file":
		set, err := exclusion.NewFileLoader(logger).Load(ctx, cfg.FilePath)
		if err != nil {
			logger.Warn().Err(err).Msg("falling back to static exclusion list")
			return staticSet, nil
		}
		return set, nil

	case "s3":
		loader, err := exclusion.NewS3Loader(ctx, cfg.S3Bucket, cfg.S3Region, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialise S3 loader, falling back to static exclusion list")
			return staticSet, nil
		}
		set, err := loader.Load(ctx, cfg.S3Key)
		if err != nil {
			logger.Warn().Err(err).Msg("falling back to static exclusion list")
			return staticSet, nil
		}
		return set, nil

	default:
		return staticSet, nil
	}
}
