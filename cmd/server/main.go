package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/gameshelf/internal/api"
	"github.com/vytor/gameshelf/internal/config"
	"github.com/vytor/gameshelf/internal/db"
	"github.com/vytor/gameshelf/internal/enrichment"
	"github.com/vytor/gameshelf/internal/jobs"
	"github.com/vytor/gameshelf/internal/logger"
	"github.com/vytor/gameshelf/internal/repository/sqlite"
	"github.com/vytor/gameshelf/internal/services"
	"github.com/vytor/gameshelf/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Error("invalid timezone: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("GameShelf Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("timezone=%s", loc)
	log.Debug("metadata_base_url=%s", cfg.MetadataBaseURL)
	log.Debug("deals_base_url=%s", cfg.DealsBaseURL)
	log.Debug("enrich_worker_count=%d", cfg.EnrichWorkerCount)
	log.Debug("enrich_queue_size=%d", cfg.EnrichQueueSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Interface values stay nil unless configured; a typed nil pointer
	// would look like a configured client to the services.
	var (
		metadata enrichment.MetadataClient
		deals    enrichment.DealsClient
	)
	if cfg.MetadataBaseURL != "" {
		metadata = enrichment.NewMetadata(cfg.MetadataBaseURL, cfg.HTTPTimeout)
	}
	if cfg.DealsBaseURL != "" {
		deals = enrichment.NewDeals(cfg.DealsBaseURL, cfg.HTTPTimeout)
	}

	gameRepo := sqlite.NewGameRepository(database.DB)
	enrichmentService := services.NewEnrichmentService(gameRepo, metadata, deals, time.Now)

	var (
		enrichPool *worker.Pool
		queue      jobs.JobQueue = jobs.NoopQueue{}
	)
	if metadata != nil {
		enrichPool = worker.NewPool(cfg.EnrichWorkerCount, cfg.EnrichQueueSize)
		queue = jobs.NewWorkerQueue(enrichPool, enrichmentService)
	} else {
		log.Info("metadata service not configured, enrichment jobs disabled")
	}

	srv := &api.Server{
		GameService:       services.NewGameService(gameRepo, queue, time.Now),
		InsightsService:   services.NewInsightsService(gameRepo, time.Now, loc),
		EnrichmentService: enrichmentService,
		LibraryService:    services.NewLibraryService(gameRepo, queue, time.Now),
		DB:                database,
		RequestTimeout:    cfg.HTTPTimeout * 2,
	}

	ctx, cancel := context.WithCancel(context.Background())
	if enrichPool != nil {
		enrichPool.Start(ctx)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPTimeout*2 + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping enrichment pool")
	cancel()
	if enrichPool != nil {
		enrichPool.Stop()
	}

	log.Info("===========================================")
	log.Info("GameShelf Server Stopped")
	log.Info("===========================================")
}
