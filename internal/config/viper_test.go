package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is a stand-in for t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestInitializeConfigDefaults(t *testing.T) {
	// Run from a temp dir so a developer's local config.yaml is not picked up.
	chdir(t, t.TempDir())

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "data", cfg.Data.Directory)
	assert.Equal(t, []string{"USD", "SEK", "NOK", "DKK"}, cfg.Currencies)
	assert.Equal(t, "https://data-api.ecb.europa.eu/service/data/EXR", cfg.Fetch.BaseURL)
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.RetryDelay())
	assert.Equal(t, 24*time.Hour, cfg.Freshness())
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ECB_LOG_LEVEL", "debug")
	t.Setenv("ECB_DATA_DIRECTORY", "/tmp/rates")

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/rates", cfg.Data.Directory)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Log.Level = "info"
		cfg.Log.Format = "text"
		cfg.Data.Directory = "data"
		cfg.Currencies = []string{"USD"}
		cfg.Fetch.BaseURL = "https://example.com"
		cfg.Fetch.TimeoutSeconds = 30
		cfg.Fetch.MaxRetries = 3
		cfg.Fetch.RetryDelaySeconds = 5
		cfg.Fetch.FreshnessHours = 24
		return cfg
	}

	assert.NoError(t, validateConfig(valid()))

	cfg := valid()
	cfg.Log.Level = "nope"
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Log.Format = "xml"
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Currencies = nil
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Currencies = []string{"US"}
	assert.Error(t, validateConfig(cfg), "currency codes must be 3 letters")

	cfg = valid()
	cfg.Fetch.MaxRetries = 11
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Fetch.TimeoutSeconds = 0
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Fetch.FreshnessHours = -1
	assert.Error(t, validateConfig(cfg))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ECB_RATES_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("ECB_RATES_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("ECB_RATES_MISSING_KEY", "fallback"))
}
