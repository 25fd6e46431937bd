// Package config provides Viper-based hierarchical configuration management
// for the exchange rate pipeline.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"data" yaml:"data"`

	// Currencies is the set of quote currencies fetched against EUR.
	Currencies []string `mapstructure:"currencies" yaml:"currencies"`

	Fetch struct {
		BaseURL           string `mapstructure:"base_url" yaml:"base_url"`
		TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		MaxRetries        int    `mapstructure:"max_retries" yaml:"max_retries"`
		RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" yaml:"retry_delay_seconds"`
		FreshnessHours    int    `mapstructure:"freshness_hours" yaml:"freshness_hours"`
	} `mapstructure:"fetch" yaml:"fetch"`
}

// Timeout returns the fetch HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// RetryDelay returns the fixed delay between fetch retries.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Fetch.RetryDelaySeconds) * time.Second
}

// Freshness returns the maximum age of a cached raw file before re-fetching.
func (c *Config) Freshness() time.Duration {
	return time.Duration(c.Fetch.FreshnessHours) * time.Hour
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.ecb-rates")
	v.AddConfigPath(".ecb-rates")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("ECB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Data defaults
	v.SetDefault("data.directory", "data")

	// Base currency is EUR; these are the quote currencies.
	v.SetDefault("currencies", []string{"USD", "SEK", "NOK", "DKK"})

	// Fetch defaults
	v.SetDefault("fetch.base_url", "https://data-api.ecb.europa.eu/service/data/EXR")
	v.SetDefault("fetch.timeout_seconds", 30)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.retry_delay_seconds", 5)
	v.SetDefault("fetch.freshness_hours", 24)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Data.Directory == "" {
		return fmt.Errorf("data.directory must not be empty")
	}

	if len(config.Currencies) == 0 {
		return fmt.Errorf("at least one quote currency is required")
	}
	for _, cur := range config.Currencies {
		if len(cur) != 3 {
			return fmt.Errorf("invalid currency code: %q (must be a 3-letter ISO code)", cur)
		}
	}

	if config.Fetch.BaseURL == "" {
		return fmt.Errorf("fetch.base_url must not be empty")
	}

	if config.Fetch.MaxRetries < 0 || config.Fetch.MaxRetries > 10 {
		return fmt.Errorf("fetch.max_retries must be between 0 and 10, got: %d", config.Fetch.MaxRetries)
	}

	if config.Fetch.TimeoutSeconds < 1 || config.Fetch.TimeoutSeconds > 300 {
		return fmt.Errorf("fetch.timeout_seconds must be between 1 and 300, got: %d", config.Fetch.TimeoutSeconds)
	}

	if config.Fetch.RetryDelaySeconds < 0 || config.Fetch.RetryDelaySeconds > 60 {
		return fmt.Errorf("fetch.retry_delay_seconds must be between 0 and 60, got: %d", config.Fetch.RetryDelaySeconds)
	}

	if config.Fetch.FreshnessHours < 0 {
		return fmt.Errorf("fetch.freshness_hours must not be negative, got: %d", config.Fetch.FreshnessHours)
	}

	return nil
}
