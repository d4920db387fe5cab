package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// DatasetPath replaces the embedded station fixture when set.
	DatasetPath string

	SimulatorEnabled  bool
	SimulatorInterval time.Duration
	SimulatorMaxDelta float64
	SimulatorSeed     uint64

	PreferencesDB string

	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string

	// Mapbox reverse geocoding of station place names.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// SummarySchedule is a cron spec for the fleet summary report. Empty disables it.
	SummarySchedule string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := positiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	simEnabled, err := boolOrDefault("SIMULATOR_ENABLED", true)
	if err != nil {
		return nil, err
	}

	simInterval, err := positiveDuration("SIMULATOR_INTERVAL", "5s")
	if err != nil {
		return nil, err
	}

	maxDelta, err := parseMaxDelta()
	if err != nil {
		return nil, err
	}

	seed, err := parseSeed()
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := positiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	kafkaBrokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled, err := boolOrDefault("KAFKA_ENABLED", len(kafkaBrokers) > 0)
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled, err := boolOrDefault("MAPBOX_ENABLED", mapboxToken != "")
	if err != nil {
		return nil, err
	}

	summarySchedule, ok := os.LookupEnv("SUMMARY_SCHEDULE")
	if !ok {
		summarySchedule = "@every 1m"
	}

	// An explicit empty KAFKA_TOPIC is kept so the check below rejects it.
	kafkaTopic, ok := os.LookupEnv("KAFKA_TOPIC")
	if !ok {
		kafkaTopic = "dwlr-readings"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DatasetPath: os.Getenv("DATASET_PATH"),

		SimulatorEnabled:  simEnabled,
		SimulatorInterval: simInterval,
		SimulatorMaxDelta: maxDelta,
		SimulatorSeed:     seed,

		PreferencesDB: envOrDefault("PREFERENCES_DB", "data/preferences.db"),

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: kafkaBrokers,
		KafkaTopic:   kafkaTopic,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),

		SummarySchedule: summarySchedule,
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if cfg.SummarySchedule != "" {
		if _, err := cron.ParseStandard(cfg.SummarySchedule); err != nil {
			return nil, fmt.Errorf("invalid SUMMARY_SCHEDULE: %w", err)
		}
	}

	return cfg, nil
}

func parseMaxDelta() (float64, error) {
	s := envOrDefault("SIMULATOR_MAX_DELTA", "0.1")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid SIMULATOR_MAX_DELTA: %q", s)
	}
	return v, nil
}

func parseSeed() (uint64, error) {
	s := os.Getenv("SIMULATOR_SEED")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid SIMULATOR_SEED: %q", s)
	}
	return v, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
