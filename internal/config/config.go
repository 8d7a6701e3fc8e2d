// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds process-level settings. User preferences live in the store,
// not here.
type Config struct {
	// DBPath overrides the default XDG database location.
	DBPath string `env:"HASHBOARD_DB"`

	// LogFile is where structured logs go. Empty means next to the database.
	LogFile  string `env:"HASHBOARD_LOG_FILE"`
	LogLevel string `env:"HASHBOARD_LOG_LEVEL" envDefault:"info"`

	// NotifyTTL is how long success and info notifications stay visible.
	NotifyTTL time.Duration `env:"HASHBOARD_NOTIFY_TTL" envDefault:"5s"`
	NotifyCap int           `env:"HASHBOARD_NOTIFY_CAP" envDefault:"50"`

	// TourCatalog optionally points at a YAML file replacing the built-in tour.
	TourCatalog string `env:"HASHBOARD_TOUR_CATALOG"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables only.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.NotifyCap <= 0 {
		return Config{}, fmt.Errorf("HASHBOARD_NOTIFY_CAP must be positive, got %d", cfg.NotifyCap)
	}
	if cfg.NotifyTTL < 0 {
		return Config{}, fmt.Errorf("HASHBOARD_NOTIFY_TTL must not be negative, got %s", cfg.NotifyTTL)
	}
	return cfg, nil
}
