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

	"github.com/dgallion1/pdfoutline/internal/api"
	"github.com/dgallion1/pdfoutline/internal/config"
	"github.com/dgallion1/pdfoutline/internal/pathstore"
	"github.com/dgallion1/pdfoutline/internal/pipeline"
	"github.com/dgallion1/pdfoutline/internal/store"
	"github.com/spf13/cobra"
)

func serveCmd(cfg config.Config, log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the outline HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return serve(cmd.Context(), cfg, log)
		},
	}
}

func serve(parent context.Context, cfg config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Initialize optional sinks.
	var (
		stores api.Stores
		sinks  []pipeline.Sink
	)
	if cfg.PathstoreURL != "" {
		ps := pathstore.NewClient(cfg.PathstoreURL, cfg.PathstoreAPIKey)
		defer ps.Close()
		stores.Pathstore = ps
		sinks = append(sinks, &pipeline.PathstoreSink{Client: ps})
	}
	if cfg.DatabaseURL != "" {
		repo, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer repo.Close()
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		stores.Postgres = repo
		sinks = append(sinks, &pipeline.PostgresSink{Repo: repo})
	}

	// Initialize pipeline.
	stats := pipeline.NewStats(time.Hour)
	orch := pipeline.NewOrchestrator(cfg, newWorker(cfg, sinks, stats, log), log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, stats, stores, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
		case <-ctx.Done():
		}
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting outliner",
		"port", cfg.Port,
		"pathstore", stores.Pathstore != nil,
		"postgres", stores.Postgres != nil,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		cancel()
		<-done
		return fmt.Errorf("server error: %w", err)
	}
	<-done
	return nil
}
