// Command fetch downloads daily weather history for every configured city
// from the Open-Meteo archive API and writes the combined raw input CSV.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jrendon/weather-aggregation/internal/adapter/openmeteo"
	"github.com/jrendon/weather-aggregation/internal/config"
	"github.com/jrendon/weather-aggregation/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("fetch failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	cities, err := openmeteo.LoadCities(cfg.CitiesFile)
	if err != nil {
		return err
	}

	client := openmeteo.NewClient(cfg.OpenMeteoBaseURL, cfg.OpenMeteoTimeout, logger)

	out, err := os.Create(cfg.InputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	logger.Info("starting download",
		"cities", len(cities),
		"start_date", cfg.FetchStartDate,
		"end_date", cfg.FetchEndDate,
	)

	// A failed city is skipped so one outage does not lose the whole batch;
	// the exit status stays zero as long as at least one city succeeded.
	fetched := 0
	for _, city := range cities {
		records, err := client.FetchDaily(ctx, city.Lat, city.Lon, cfg.FetchStartDate, cfg.FetchEndDate)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("city download failed", "city", city.Name, "error", err)
			continue
		}

		if err := openmeteo.WriteCSV(out, city, records, fetched == 0); err != nil {
			return err
		}
		fetched++
		logger.Info("city downloaded", "city", city.Name, "records", len(records))
	}

	if fetched == 0 {
		logger.Error("no cities downloaded")
		os.Exit(1)
	}
	logger.Info("download complete", "cities_fetched", fetched, "output", cfg.InputPath)
	return nil
}
