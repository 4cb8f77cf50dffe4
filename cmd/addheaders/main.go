// Command addheaders injects the published column header row into finished
// result files. It runs as a separate pass after aggregation so an aborted
// run never leaves a headered-but-incomplete file behind.
package main

import (
	"log/slog"
	"os"

	"github.com/jrendon/weather-aggregation/internal/adapter/csvio"
	"github.com/jrendon/weather-aggregation/internal/config"
	"github.com/jrendon/weather-aggregation/internal/domain"
	"github.com/jrendon/weather-aggregation/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	targets := []struct {
		path    string
		columns []string
	}{
		{cfg.TemperatureOutPath, domain.TemperatureColumns},
		{cfg.PrecipitationOutPath, domain.PrecipitationColumns},
	}

	failed := false
	for _, t := range targets {
		if err := csvio.InjectHeader(t.path, t.columns); err != nil {
			logger.Error("header injection failed", "path", t.path, "error", err)
			failed = true
			continue
		}
		logger.Info("header injected", "path", t.path)
	}
	if failed {
		os.Exit(1)
	}
}
