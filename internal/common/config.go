package common

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment" validate:"omitempty,oneof=development production"`
	Logging     LoggingConfig   `toml:"logging"`
	PlacesAPI   PlacesAPIConfig `toml:"places_api"`
	Storage     StorageConfig   `toml:"storage"`
	Collector   CollectorConfig `toml:"collector"`
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	Output []string `toml:"output" validate:"omitempty,dive,oneof=stdout console file"`
}

// PlacesAPIConfig contains Google Places API configuration
type PlacesAPIConfig struct {
	APIKey         string        `toml:"api_key"`                                       // Google Places API key (GOOGLE_MAPS_API_KEY overrides)
	BaseURL        string        `toml:"base_url" validate:"omitempty,url"`             // Override for testing against a local server
	RequestTimeout time.Duration `toml:"request_timeout"`                               // HTTP request timeout
	LanguageCode   string        `toml:"language_code"`                                 // Language for results
	MaxResults     int           `toml:"max_results" validate:"omitempty,min=1,max=20"` // Places API limit per request page
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// CollectorConfig controls the collect command
type CollectorConfig struct {
	DefinitionsFile   string `toml:"definitions_file"`                               // Search definitions file (TOML or YAML)
	RequestsPerSecond int    `toml:"requests_per_second" validate:"omitempty,min=1"` // Pacing between API calls
	MaxPages          int    `toml:"max_pages" validate:"omitempty,min=1,max=3"`     // Pages to follow per text search
	Schedule          string `toml:"schedule"`                                       // Cron schedule; empty = run once
}

// DefaultConfig returns the configuration defaults applied before any file or
// environment override.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		PlacesAPI: PlacesAPIConfig{
			RequestTimeout: 30 * time.Second,
			LanguageCode:   "en",
			MaxResults:     20,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/locus",
			},
		},
		Collector: CollectorConfig{
			DefinitionsFile:   "searches.toml",
			RequestsPerSecond: 2,
			MaxPages:          3,
		},
	}
}

// LoadConfig loads configuration in priority order: defaults, then each file
// in order (later files override earlier ones), then environment variables.
func LoadConfig(paths ...string) (*Config, error) {
	config := DefaultConfig()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if key := os.Getenv("GOOGLE_MAPS_API_KEY"); key != "" {
		config.PlacesAPI.APIKey = key
	}
	if level := os.Getenv("LOCUS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if path := os.Getenv("LOCUS_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}
}

func validateConfig(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if config.Collector.Schedule != "" {
		if _, err := cron.ParseStandard(config.Collector.Schedule); err != nil {
			return fmt.Errorf("invalid collector schedule %q: %w", config.Collector.Schedule, err)
		}
	}

	return nil
}
