// Package config provides functionality for loading and accessing environment
// variables alongside the Viper-based configuration.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"fjacquet/ecb-rates/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var once sync.Once

// LoadEnv loads environment variables from .env file if it exists
func LoadEnv() {
	once.Do(func() {
		log := logging.GetLogger()

		// Try to find .env file in current directory
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			// Try to find .env in parent directory (project root)
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				log.Debug("No .env file found, using environment variables")
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			log.Warnf("Error loading .env file: %v", err)
			return
		}
		log.Infof("Loaded environment variables from %s", envFile)
	})
}

// ConfigureLogging configures the shared logger from the given configuration
// and returns it.
func ConfigureLogging(cfg *Config) *logrus.Logger {
	return logging.Configure(cfg.Log.Level, cfg.Log.Format)
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
