// Package kafkapub publishes terminal pipeline records to Kafka for
// downstream consumers that want results as a stream rather than a file.
// Publishing is optional and feature-flagged via KAFKA_ENABLED.
package kafkapub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/jrendon/weather-aggregation/internal/config"
	"github.com/jrendon/weather-aggregation/internal/domain"
)

// Publisher writes terminal records to the configured sink topics.
// It implements pipeline.TemperatureSink and pipeline.SeasonalSink.
type Publisher struct {
	temperature *kafkago.Writer
	seasonal    *kafkago.Writer
	runID       string
	logger      *slog.Logger
}

// NewPublisher creates Kafka producers for both result topics. The runID is
// attached as a message header so consumers can tell batches apart.
func NewPublisher(cfg *config.Config, runID string, logger *slog.Logger) *Publisher {
	newWriter := func(topic string) *kafkago.Writer {
		return &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.KafkaBrokers...),
			Topic:        topic,
			Balancer:     &kafkago.LeastBytes{},
			RequiredAcks: kafkago.RequireAll,
			BatchTimeout: 100 * time.Millisecond,
		}
	}
	return &Publisher{
		temperature: newWriter(cfg.KafkaTemperatureTopic),
		seasonal:    newWriter(cfg.KafkaSeasonalTopic),
		runID:       runID,
		logger:      logger,
	}
}

// WriteTemperature publishes one final temperature row.
func (p *Publisher) WriteTemperature(ctx context.Context, row domain.FinalTemperatureRow) error {
	key := fmt.Sprintf("%s|%d|%02d", row.City, row.Year, row.Month)
	msg, err := p.serialize(key, "temperature", row)
	if err != nil {
		return err
	}
	return p.temperature.WriteMessages(ctx, msg)
}

// WriteSeasonal publishes one seasonal precipitation record.
func (p *Publisher) WriteSeasonal(ctx context.Context, stat domain.SeasonalPrecipitationStat) error {
	key := fmt.Sprintf("%s|%d|%s", stat.City, stat.Year, stat.Season)
	msg, err := p.serialize(key, "precipitation", stat)
	if err != nil {
		return err
	}
	return p.seasonal.WriteMessages(ctx, msg)
}

// serialize marshals a terminal record into a Kafka message.
func (p *Publisher) serialize(key, pipelineName string, record any) (kafkago.Message, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s record: %w", pipelineName, err)
	}
	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "pipeline", Value: []byte(pipelineName)},
			{Key: "run_id", Value: []byte(p.runID)},
		},
	}, nil
}

// Close flushes and closes both producers, reporting the first error.
func (p *Publisher) Close() error {
	errT := p.temperature.Close()
	errS := p.seasonal.Close()
	if errT != nil {
		return errT
	}
	return errS
}
