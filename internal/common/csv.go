// Package common provides shared CSV read/write helpers used by every stage
// that persists an artifact.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/ecb-rates/internal/logging"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return // Don't change the logger if nil is passed
	}
	log = logger
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TRow is the struct type that maps to the CSV columns; columns not present
// in the struct are ignored.
func ReadCSVFile[TRow any](filePath string) ([]TRow, error) {
	log.WithField(logging.FieldFile, filePath).Debug("Reading CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file %s: %w", filePath, err)
	}

	log.WithFields(logrus.Fields{
		logging.FieldFile:  filePath,
		logging.FieldCount: len(rows),
	}).Debug("Successfully read CSV data")
	return rows, nil
}

// WriteCSVFile writes a slice of structs to a CSV file using gocsv, creating
// parent directories as needed. The file is written in one shot so downstream
// readers never observe a partial artifact.
func WriteCSVFile[TRow any](filePath string, rows []TRow) error {
	if rows == nil {
		return fmt.Errorf("cannot write nil rows to CSV")
	}

	log.WithFields(logrus.Fields{
		logging.FieldFile:  filePath,
		logging.FieldCount: len(rows),
	}).Debug("Writing CSV file")

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	return nil
}
