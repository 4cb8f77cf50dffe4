// Command api serves the read-only query API over finished result CSVs.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jrendon/weather-aggregation/internal/adapter/httpapi"
	"github.com/jrendon/weather-aggregation/internal/config"
	"github.com/jrendon/weather-aggregation/internal/observability"
	"github.com/jrendon/weather-aggregation/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	// A missing results file is not fatal: the API serves whatever exists and
	// reports not-ready until at least one dataset is present.
	temperature, err := report.LoadTemperature(cfg.TemperatureOutPath)
	if err != nil {
		logger.Warn("temperature results unavailable", "path", cfg.TemperatureOutPath, "error", err)
	}
	precipitation, err := report.LoadPrecipitation(cfg.PrecipitationOutPath)
	if err != nil {
		logger.Warn("precipitation results unavailable", "path", cfg.PrecipitationOutPath, "error", err)
	}
	logger.Info("results loaded",
		"temperature_records", len(temperature),
		"precipitation_records", len(precipitation),
	)

	svc := report.NewService(temperature, precipitation, nil)
	srv := httpapi.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
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
