// Package normalize extracts the canonical column subset from raw ECB exports.
package normalize

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/ecb-rates/internal/common"
	"fjacquet/ecb-rates/internal/logging"
	"fjacquet/ecb-rates/internal/models"
	"fjacquet/ecb-rates/internal/pipelineerror"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// requiredColumns are the raw export columns the pipeline depends on. The
// export carries many more; those are passed over.
var requiredColumns = []string{"CURRENCY", "CURRENCY_DENOM", "TIME_PERIOD", "OBS_VALUE"}

// Rows maps raw ECB rows to the canonical schema, renaming TIME_PERIOD to
// DATE and OBS_VALUE to RATE. Rows with a blank observation value (the ECB
// publishes those around holidays in some exports) are skipped; rows whose
// rate does not parse as a decimal fail the unit. An empty input produces an
// empty output, not an error: a pair with no observations is still a pair.
func Rows(filePath string, raw []models.RawRow) ([]models.NormalizedRow, error) {
	normalized := make([]models.NormalizedRow, 0, len(raw))
	for _, row := range raw {
		if row.ObsValue == "" {
			continue
		}
		if _, err := decimal.NewFromString(row.ObsValue); err != nil {
			return nil, fmt.Errorf("invalid OBS_VALUE %q in %s: %w", row.ObsValue, filePath, err)
		}
		normalized = append(normalized, models.NormalizedRow{
			Currency:      row.Currency,
			CurrencyDenom: row.CurrencyDenom,
			Date:          row.TimePeriod,
			Rate:          row.ObsValue,
		})
	}
	return normalized, nil
}

// File reads a raw export, normalizes it and writes the canonical per-pair
// file. Returns the output path. A *pipelineerror.SchemaError is returned
// when a required column is missing from the header, so the caller can
// exclude the unit instead of persisting a malformed artifact.
func File(rawPath, outputDir, currency string) (string, error) {
	if err := CheckSchema(rawPath); err != nil {
		return "", err
	}

	raw, err := common.ReadCSVFile[models.RawRow](rawPath)
	if err != nil {
		return "", fmt.Errorf("reading raw file: %w", err)
	}

	rows, err := Rows(rawPath, raw)
	if err != nil {
		return "", err
	}

	outputPath := filepath.Join(outputDir, models.PairName(currency)+".csv")
	if err := common.WriteCSVFile(outputPath, rows); err != nil {
		return "", fmt.Errorf("writing normalized file: %w", err)
	}

	log.WithFields(logrus.Fields{
		logging.FieldFile:  outputPath,
		logging.FieldCount: len(rows),
	}).Info("Normalized raw export")
	return outputPath, nil
}

// CheckSchema verifies the raw export's header carries every required column.
func CheckSchema(rawPath string) error {
	file, err := os.Open(rawPath)
	if err != nil {
		return fmt.Errorf("opening raw file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	header, err := csv.NewReader(file).Read()
	if err == io.EOF {
		return &pipelineerror.SchemaError{FilePath: rawPath, Field: requiredColumns[0]}
	}
	if err != nil {
		return fmt.Errorf("reading header of %s: %w", rawPath, err)
	}

	present := make(map[string]struct{}, len(header))
	for _, col := range header {
		present[col] = struct{}{}
	}
	for _, col := range requiredColumns {
		if _, ok := present[col]; !ok {
			return &pipelineerror.SchemaError{FilePath: rawPath, Field: col}
		}
	}
	return nil
}
