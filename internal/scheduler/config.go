package scheduler

import (
	"time"

	appconfig "github.com/civicgrid/waterworks/internal/config"
)

// Config controls the overdue sweep cadence.
type Config struct {
	Enabled     bool
	RunInterval time.Duration
	RunTimeout  time.Duration
}

func DefaultConfig() Config {
	return Config{
		Enabled:     true,
		RunInterval: time.Hour,
		RunTimeout:  time.Minute,
	}
}

func ProvideConfig(cfg appconfig.Config) Config {
	return Config{
		Enabled:     cfg.SweepEnabled,
		RunInterval: cfg.SweepInterval,
	}.withDefaults()
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.RunTimeout <= 0 {
		c.RunTimeout = defaults.RunTimeout
	}
	return c
}
