package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all settings for the batch, fetch, and API commands,
// populated from environment variables.
type Config struct {
	InputPath            string
	TemperatureOutPath   string
	PrecipitationOutPath string
	Workers              int

	LogLevel  string
	LogFormat string

	HTTPAddr        string
	ShutdownTimeout time.Duration

	// Optional Kafka publishing of terminal records.
	KafkaEnabled          bool
	KafkaBrokers          []string
	KafkaTemperatureTopic string
	KafkaSeasonalTopic    string

	// Raw-data acquisition (fetch command).
	CitiesFile       string
	FetchStartDate   string
	FetchEndDate     string
	OpenMeteoBaseURL string
	OpenMeteoTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is loaded first when
// present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	workers, err := parseWorkers()
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parsePositiveDuration("OPENMETEO_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		InputPath:            envOrDefault("INPUT_PATH", "data/raw/weather_data.csv"),
		TemperatureOutPath:   envOrDefault("TEMPERATURE_OUT", "data/processed/temperature_results.csv"),
		PrecipitationOutPath: envOrDefault("PRECIPITATION_OUT", "data/processed/precipitation_results.csv"),
		Workers:              workers,

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "json"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout: shutdownTimeout,

		KafkaEnabled:          envOrDefault("KAFKA_ENABLED", "false") == "true",
		KafkaBrokers:          parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTemperatureTopic: envOrDefault("KAFKA_TEMPERATURE_TOPIC", "monthly-temperature-stats"),
		KafkaSeasonalTopic:    envOrDefault("KAFKA_SEASONAL_TOPIC", "seasonal-precipitation-stats"),

		CitiesFile:       envOrDefault("CITIES_FILE", "config/cities.yaml"),
		FetchStartDate:   envOrDefault("FETCH_START_DATE", "2023-01-01"),
		FetchEndDate:     envOrDefault("FETCH_END_DATE", "2024-12-31"),
		OpenMeteoBaseURL: envOrDefault("OPENMETEO_BASE_URL", "https://archive-api.open-meteo.com/v1/archive"),
		OpenMeteoTimeout: fetchTimeout,
	}

	if cfg.InputPath == "" {
		return nil, errors.New("INPUT_PATH is required")
	}
	if cfg.TemperatureOutPath == "" || cfg.PrecipitationOutPath == "" {
		return nil, errors.New("TEMPERATURE_OUT and PRECIPITATION_OUT are required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	for _, env := range []string{"FETCH_START_DATE", "FETCH_END_DATE"} {
		value := envOrDefault(env, defaultDate(env))
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return nil, fmt.Errorf("invalid %s: %q is not YYYY-MM-DD", env, value)
		}
	}

	return cfg, nil
}

func defaultDate(env string) string {
	if env == "FETCH_START_DATE" {
		return "2023-01-01"
	}
	return "2024-12-31"
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseWorkers() (int, error) {
	s := envOrDefault("WORKERS", "4")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 64 {
		return 0, fmt.Errorf("invalid WORKERS: %q (want 1-64)", s)
	}
	return n, nil
}

func parsePositiveDuration(env, fallback string) (time.Duration, error) {
	s := envOrDefault(env, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", env, s)
	}
	return d, nil
}
