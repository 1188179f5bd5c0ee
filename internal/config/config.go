// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: environment variables > config file > defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a wrapper around time.Duration that supports YAML unmarshaling
// from human-readable strings like "250ms", "1s", "1m".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config holds all toolkit configuration.
type Config struct {
	History   HistoryConfig   `yaml:"history"`
	Ingestion IngestionConfig `yaml:"ingestion"`
	Feed      FeedConfig      `yaml:"feed"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// HistoryConfig holds the bounded-window capacities. A value <= 0 disables
// eviction for that window.
type HistoryConfig struct {
	MetricCapacity   int `yaml:"metric_capacity"`
	PacketCapacity   int `yaml:"packet_capacity"`
	SnapshotCapacity int `yaml:"snapshot_capacity"`
}

// IngestionConfig holds the acceptance-time tolerances.
type IngestionConfig struct {
	// RecencyWindow is the maximum age a metric sample may have at
	// acceptance time before being rejected as stale.
	RecencyWindow Duration `yaml:"recency_window"`

	// FutureSkew is the allowance for producer clocks running ahead when
	// checking packet timestamps.
	FutureSkew Duration `yaml:"future_skew"`
}

// FeedConfig holds the demo host's producer intervals.
type FeedConfig struct {
	MetricInterval   Duration `yaml:"metric_interval"`
	SnapshotInterval Duration `yaml:"snapshot_interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			MetricCapacity:   100,
			PacketCapacity:   100,
			SnapshotCapacity: 100,
		},
		Ingestion: IngestionConfig{
			RecencyWindow: Duration{1000 * time.Millisecond},
			FutureSkew:    Duration{50 * time.Millisecond},
		},
		Feed: FeedConfig{
			MetricInterval:   Duration{250 * time.Millisecond},
			SnapshotInterval: Duration{2 * time.Second},
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromBytes parses YAML configuration from a byte slice and merges with defaults.
// Environment variables take highest precedence and override values from the byte slice.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config data: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration from a YAML file and merges with defaults.
// If path is empty or the file does not exist, only defaults and environment
// variables are used.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadFromBytes(nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// File doesn't exist — use defaults + env overrides
		return LoadFromBytes(nil)
	}

	return LoadFromBytes(data)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables have the highest precedence.
func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv("DEVHUD_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if file := os.Getenv("DEVHUD_LOG_FILE"); file != "" {
		cfg.Logging.File = file
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Ingestion.RecencyWindow.Duration <= 0 {
		return fmt.Errorf("ingestion recency window must be positive")
	}
	if c.Ingestion.FutureSkew.Duration < 0 {
		return fmt.Errorf("ingestion future skew must be non-negative")
	}
	return nil
}
