package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marioc/chessvault/internal/api"
	"github.com/marioc/chessvault/internal/chesscom"
	"github.com/marioc/chessvault/internal/config"
	"github.com/marioc/chessvault/internal/db"
	"github.com/marioc/chessvault/internal/export"
	"github.com/marioc/chessvault/internal/logger"
	"github.com/marioc/chessvault/internal/repository/sqlite"
	"github.com/marioc/chessvault/internal/services"
	"github.com/marioc/chessvault/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Chessvault Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("downloads_dir=%s", cfg.DownloadsDir)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("fetch_timeout=%ds", cfg.FetchTimeoutSecs)
	log.Debug("max_concurrent_archive=%d", cfg.MaxConcurrentArchive)
	log.Debug("rate_limit_rps=%d", cfg.RateLimitRPS)
	log.Debug("warm_cache=%t", cfg.WarmCache)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	chessClient := chesscom.New(time.Duration(cfg.FetchTimeoutSecs)*time.Second, cfg.RateLimitRPS)
	archiveRepo := sqlite.NewArchiveRepository(database.DB)

	syncService := services.NewSyncService(archiveRepo, chessClient, cfg.MaxConcurrentArchive)
	exporter := export.New(cfg.DownloadsDir)
	downloadService := services.NewDownloadService(syncService, exporter)

	warmPool := worker.NewPool(cfg.WarmWorkerCount, cfg.WarmQueueSize)

	srv := &api.Server{
		DownloadService: downloadService,
		SyncService:     syncService,
		ChessClient:     chessClient,
		WarmPool:        warmPool,
		WarmCache:       cfg.WarmCache,
		DownloadsDir:    cfg.DownloadsDir,
	}

	ctx, cancel := context.WithCancel(context.Background())
	warmPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
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

	log.Debug("stopping worker pool")
	cancel()
	warmPool.Stop()

	log.Info("===========================================")
	log.Info("Chessvault Server Stopped")
	log.Info("===========================================")
}
