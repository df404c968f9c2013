package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

// Prefix is prepended to every environment variable
const Prefix = "HOROSCOPEFS"

// Config holds all filesystem configuration.
type Config struct {
	Fetch   FetchConfig
	Breaker BreakerConfig
	Mount   MountConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// FetchConfig holds upstream website fetch configuration.
type FetchConfig struct {
	Timeout     time.Duration `default:"30s"`
	Retries     int           `default:"0"`
	RateLimit   float64       `split_words:"true" default:"0"`
	Concurrency int           `default:"3"`
	UserAgent   string        `split_words:"true" default:"horoscopefs/1.0"`
}

// BreakerConfig holds per-host circuit breaker configuration.
type BreakerConfig struct {
	Threshold uint32        `default:"3"`
	Cooldown  time.Duration `default:"60s"`
}

// MountConfig holds FUSE mount configuration.
type MountConfig struct {
	AllowOther     bool          `split_words:"true" default:"false"`
	SingleThreaded bool          `split_words:"true" default:"true"`
	Debug          bool          `default:"false"`
	Prefetch       bool          `default:"false"`
	AttrTimeout    time.Duration `split_words:"true" default:"1s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `default:"info"`
	Dev   bool   `default:"false"`
}

// MetricsConfig holds status server configuration. An empty address
// disables the server.
type MetricsConfig struct {
	Addr string `default:""`
}

// Load loads configuration from HOROSCOPEFS_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Fetch: FetchConfig{
			Timeout:     30 * time.Second,
			Retries:     0,
			RateLimit:   0,
			Concurrency: 3,
			UserAgent:   "horoscopefs/1.0",
		},
		Breaker: BreakerConfig{
			Threshold: 3,
			Cooldown:  60 * time.Second,
		},
		Mount: MountConfig{
			SingleThreaded: true,
			AttrTimeout:    time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	var errs []error

	if c.Fetch.Timeout < 0 {
		errs = append(errs, fmt.Errorf("fetch timeout must not be negative"))
	}
	if c.Fetch.Retries < 0 {
		errs = append(errs, fmt.Errorf("fetch retries must not be negative"))
	}
	if c.Fetch.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("fetch rate limit must not be negative"))
	}
	if c.Fetch.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("fetch concurrency must be at least 1"))
	}
	if c.Mount.AttrTimeout < 0 {
		errs = append(errs, fmt.Errorf("attribute timeout must not be negative"))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}

	return errors.Join(errs...)
}
