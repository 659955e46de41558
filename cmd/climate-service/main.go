package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	httpadapter "github.com/couchcryptid/climate-report-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/climate-report-service/internal/adapter/kafka"
	"github.com/couchcryptid/climate-report-service/internal/config"
	"github.com/couchcryptid/climate-report-service/internal/observability"
	"github.com/couchcryptid/climate-report-service/internal/pipeline"
	"github.com/couchcryptid/climate-report-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	prefs, err := config.LoadPreferences(cfg.PreferencesFile)
	if err != nil {
		logger.Error("failed to load preferences", "error", err, "path", cfg.PreferencesFile)
		os.Exit(1)
	}
	logger.Info("preferences loaded",
		"default_expiration", prefs.DefaultExpiration,
		"strict_routing", prefs.StrictRouting,
		"max_transmit_attempts", prefs.MaxTransmitAttempts,
	)

	sessions, err := store.Open(cfg.SessionDBPath)
	if err != nil {
		logger.Error("failed to open session store", "error", err, "path", cfg.SessionDBPath)
		os.Exit(1)
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	assembler := pipeline.NewAssembler(prefs, logger)

	p := pipeline.New(reader, assembler, writer, sessions, prefs, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, sessions, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// Start HTTP server.
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Start generation pipeline.
	g.Go(func() error {
		if err := p.Run(gctx); err != nil {
			return fmt.Errorf("pipeline: %w", err)
		}
		return nil
	})

	// Stop the server once a signal arrives or either task fails.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
		return nil
	})

	exitCode := 0
	if err := g.Wait(); err != nil {
		logger.Error("service stopped with error", "error", err)
		exitCode = 1
	}

	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
	if err := sessions.Close(); err != nil {
		logger.Error("session store close error", "error", err)
	}

	logger.Info("shutdown complete")
	if exitCode != 0 {
		stop()
		os.Exit(exitCode)
	}
}
