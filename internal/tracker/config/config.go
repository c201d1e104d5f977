package config

import (
	"time"

	"signal-outcome-tracker/pkg/config"
)

// Tracker holds outcome-tracker specific configuration.
type Tracker struct {
	CronSchedule         string        `mapstructure:"cron_schedule"`
	BatchSize            int           `mapstructure:"batch_size"`
	MinSignalAge         time.Duration `mapstructure:"min_signal_age"`
	RunTimeout           time.Duration `mapstructure:"run_timeout"`
	MaxConcurrentSignals int           `mapstructure:"max_concurrent_signals"`
	MetricsCronSchedule  string        `mapstructure:"metrics_cron_schedule"`
}

// Bybit holds the configuration for the Bybit market-data API.
type Bybit struct {
	BaseURL             string `mapstructure:"base_url"`
	Category            string `mapstructure:"category"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// QuoteProvider holds the configuration for the stock/forex last-price API.
type QuoteProvider struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Config holds the full configuration for the tracker service.
type Config struct {
	App           config.App      `mapstructure:"app"`
	Logger        config.Logger   `mapstructure:"logger"`
	Database      config.Database `mapstructure:"database"`
	Redis         config.Redis    `mapstructure:"redis"`
	API           config.API      `mapstructure:"api"`
	Telegram      config.Telegram `mapstructure:"telegram"`
	Tracker       Tracker         `mapstructure:"tracker"`
	Bybit         Bybit           `mapstructure:"bybit"`
	QuoteProvider QuoteProvider   `mapstructure:"quote_provider"`
}

// Load loads the tracker configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Tracker.CronSchedule == "" {
		c.Tracker.CronSchedule = "0 * * * *"
	}
	if c.Tracker.BatchSize <= 0 {
		c.Tracker.BatchSize = 50
	}
	if c.Tracker.MinSignalAge <= 0 {
		c.Tracker.MinSignalAge = time.Hour
	}
	if c.Tracker.RunTimeout <= 0 {
		c.Tracker.RunTimeout = 5 * time.Minute
	}
	if c.Tracker.MaxConcurrentSignals <= 0 {
		c.Tracker.MaxConcurrentSignals = 1
	}
	if c.Tracker.MetricsCronSchedule == "" {
		c.Tracker.MetricsCronSchedule = "10 0 * * *"
	}
	if c.Bybit.BaseURL == "" {
		c.Bybit.BaseURL = "https://api.bybit.com"
	}
	if c.Bybit.Category == "" {
		c.Bybit.Category = "linear"
	}
	if c.Bybit.MaxRequestPerMinute <= 0 {
		c.Bybit.MaxRequestPerMinute = 60
	}
	if c.QuoteProvider.MaxRequestPerMinute <= 0 {
		c.QuoteProvider.MaxRequestPerMinute = 30
	}
}
