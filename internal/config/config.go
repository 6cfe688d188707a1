// Package config loads service settings from the environment. A .env file in
// the working directory is applied first when present, so local runs do not
// need exported variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings.
type Config struct {
	// Tracked club, provider abbreviation.
	Team   string `envconfig:"TEAM" default:"LAD"`
	TeamID string `envconfig:"TEAM_ID" default:"19"`
	Season int    `envconfig:"SEASON"`

	SourceBaseURL   string        `envconfig:"SOURCE_BASE_URL" required:"true"`
	SourceRateLimit int           `envconfig:"SOURCE_RATE_LIMIT" default:"120"`
	SourceTimeout   time.Duration `envconfig:"SOURCE_TIMEOUT" default:"10s"`

	WeatherBaseURL string        `envconfig:"WEATHER_BASE_URL"`
	WeatherAPIKey  string        `envconfig:"WEATHER_API_KEY"`
	WeatherTimeout time.Duration `envconfig:"WEATHER_TIMEOUT" default:"5s"`

	GeocodeBaseURL   string        `envconfig:"GEOCODE_BASE_URL"`
	GeocodeUserAgent string        `envconfig:"GEOCODE_USER_AGENT" default:"ballclub-data-pipeline/1.0"`
	GeocodeTimeout   time.Duration `envconfig:"GEOCODE_TIMEOUT" default:"5s"`

	// Local first-pitch hour used when the schedule only carries a date.
	StartHour int `envconfig:"START_HOUR" default:"19"`

	// Empty DatabaseURL selects the in-memory store.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"4"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	FeedTopic    string   `envconfig:"FEED_TOPIC" default:"canonical-ballclub-records"`

	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Daemon sync cadence.
	SyncInterval time.Duration `envconfig:"SYNC_INTERVAL" default:"6h"`
}

// Load reads configuration, applying a .env file when one exists.
func Load() (*Config, error) {
	// Absence of a .env file is the normal production case.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.Season == 0 {
		cfg.Season = time.Now().Year()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WeatherEnabled reports whether weather enrichment is configured.
func (c *Config) WeatherEnabled() bool {
	return c.WeatherBaseURL != "" && c.WeatherAPIKey != ""
}

// GeocodeEnabled reports whether the external geocoding fallback is
// configured. The static venue table works regardless.
func (c *Config) GeocodeEnabled() bool {
	return c.GeocodeBaseURL != ""
}

// FeedEnabled reports whether canonical records are published to Kafka.
func (c *Config) FeedEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	if c.SourceBaseURL == "" {
		return errors.New("SOURCE_BASE_URL is required")
	}
	if c.Team == "" {
		return errors.New("TEAM is required")
	}
	if c.TeamID == "" {
		return errors.New("TEAM_ID is required")
	}
	if c.SourceRateLimit <= 0 {
		return errors.New("SOURCE_RATE_LIMIT must be positive")
	}
	if c.StartHour < 0 || c.StartHour > 23 {
		return fmt.Errorf("START_HOUR %d outside [0,23]", c.StartHour)
	}
	if c.WeatherBaseURL != "" && c.WeatherAPIKey == "" {
		return errors.New("WEATHER_BASE_URL is set but WEATHER_API_KEY is not")
	}
	if c.FeedEnabled() && c.FeedTopic == "" {
		return errors.New("KAFKA_BROKERS is set but FEED_TOPIC is empty")
	}
	if c.SyncInterval < time.Minute {
		return fmt.Errorf("SYNC_INTERVAL %s is below the 1m floor", c.SyncInterval)
	}
	return nil
}
