package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/college-tracker/internal/adapter/httpadapter"
	"github.com/couchcryptid/college-tracker/internal/adapter/scorecard"
	"github.com/couchcryptid/college-tracker/internal/config"
	"github.com/couchcryptid/college-tracker/internal/observability"
	"github.com/couchcryptid/college-tracker/internal/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := scorecard.NewClient(cfg.ScorecardTimeout, metrics, logger,
		scorecard.WithBaseURL(cfg.ScorecardBaseURL),
		scorecard.WithDefaultPerPage(cfg.ScorecardDefaultPerPage),
	)

	// The key is checked again on every request; this only warns early.
	if err := client.CheckReadiness(context.Background()); err != nil {
		logger.Warn("scorecard API key not configured, searches will fail until it is set", "error", err)
	}

	svc := search.NewService(client, metrics, logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, client, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
