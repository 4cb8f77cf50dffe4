// Command aggregate runs both two-stage pipelines over the raw input file
// and writes the monthly temperature and seasonal precipitation result CSVs.
// Result rows can additionally be published to Kafka when KAFKA_ENABLED is set.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/jrendon/weather-aggregation/internal/adapter/csvio"
	"github.com/jrendon/weather-aggregation/internal/adapter/kafkapub"
	"github.com/jrendon/weather-aggregation/internal/config"
	"github.com/jrendon/weather-aggregation/internal/observability"
	"github.com/jrendon/weather-aggregation/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	runID := uuid.NewString()
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat).With("run_id", runID)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, runID, logger, metrics); err != nil {
		logger.Error("aggregation run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, runID string, logger *slog.Logger, metrics *observability.Metrics) error {
	var publisher *kafkapub.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkapub.NewPublisher(cfg, runID, logger)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("kafka publisher close error", "error", err)
			}
		}()
		logger.Info("kafka publishing enabled",
			"brokers", cfg.KafkaBrokers,
			"temperature_topic", cfg.KafkaTemperatureTopic,
			"seasonal_topic", cfg.KafkaSeasonalTopic,
		)
	}

	logger.Info("starting aggregation run",
		"input", cfg.InputPath,
		"workers", cfg.Workers,
	)

	if err := runTemperature(ctx, cfg, logger, metrics, publisher); err != nil {
		return err
	}
	return runPrecipitation(ctx, cfg, logger, metrics, publisher)
}

func runTemperature(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, publisher *kafkapub.Publisher) error {
	sink, err := csvio.NewFileSink(cfg.TemperatureOutPath)
	if err != nil {
		return err
	}

	sinks := []pipeline.TemperatureSink{sink}
	if publisher != nil {
		sinks = append(sinks, publisher)
	}

	p := pipeline.NewTemperature(cfg.Workers, logger, metrics)
	_, runErr := p.Run(ctx, csvio.NewFileSource(cfg.InputPath), sinks...)
	if closeErr := sink.Close(); runErr == nil {
		runErr = closeErr
	}
	return runErr
}

func runPrecipitation(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, publisher *kafkapub.Publisher) error {
	sink, err := csvio.NewFileSink(cfg.PrecipitationOutPath)
	if err != nil {
		return err
	}

	sinks := []pipeline.SeasonalSink{sink}
	if publisher != nil {
		sinks = append(sinks, publisher)
	}

	p := pipeline.NewPrecipitation(cfg.Workers, logger, metrics)
	_, runErr := p.Run(ctx, csvio.NewFileSource(cfg.InputPath), sinks...)
	if closeErr := sink.Close(); runErr == nil {
		runErr = closeErr
	}
	return runErr
}
