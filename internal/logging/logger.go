// Package logging provides the shared logrus logger used across the pipeline.
// Packages grab the singleton with GetLogger and may be handed a configured
// instance later via their own SetLogger functions.
package logging

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once   sync.Once
	logger *logrus.Logger
)

// GetLogger returns the shared logger instance, creating it on first use.
func GetLogger() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	})
	return logger
}

// Configure applies a level and format ("text" or "json") to the shared logger.
// Invalid levels fall back to info.
func Configure(level, format string) *logrus.Logger {
	log := GetLogger()

	logLevel, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		log.Warnf("Invalid log level '%s', using 'info'", level)
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	if strings.ToLower(format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return log
}

// SetAllLogLevels forces a level on the shared logger and the global logrus
// instance so loggers created before configuration ran pick it up too.
func SetAllLogLevels(level logrus.Level) {
	logrus.SetLevel(level)
	GetLogger().SetLevel(level)
}
