package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/groblegark/trak/internal/backup"
	"github.com/groblegark/trak/internal/config"
	"github.com/groblegark/trak/internal/events"
	"github.com/groblegark/trak/internal/server"
	"github.com/groblegark/trak/internal/store/postgres"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the trak server",
	// Override PersistentPreRunE so we don't create an API client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}

		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				store.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (TRAK_NATS_URL not set)")
		}

		issueServer := server.NewIssueServer(store, publisher, logger)
		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: issueServer.NewHTTPHandler(cfg.AuthToken),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start the backup scheduler when an interval and a destination are
		// configured.
		var scheduler *backup.Scheduler
		if cfg.BackupInterval > 0 && cfg.BackupS3Bucket != "" {
			dest, err := backup.NewS3Destination(
				context.Background(),
				cfg.BackupS3Bucket,
				cfg.BackupS3Key,
				cfg.BackupS3Region,
				cfg.BackupS3Endpoint,
			)
			if err != nil {
				logger.Error("failed to create S3 backup destination", "err", err)
			} else {
				scheduler = backup.NewScheduler(store, []backup.Destination{dest}, cfg.BackupInterval, logger)
				scheduler.Start()
				logger.Info("backup enabled", "bucket", cfg.BackupS3Bucket, "key", cfg.BackupS3Key, "interval", cfg.BackupInterval)
			}
		}

		// Wait for shutdown signal.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP shutdown error", "err", err)
		}

		if scheduler != nil {
			scheduler.Stop()
		}
		publisher.Close()
		store.Close()
		return nil
	},
}
