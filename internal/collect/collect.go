// Package collect derives the global pair and date sets from the normalized
// per-pair files. Both are plain set unions, so input file order is irrelevant.
package collect

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"fjacquet/ecb-rates/internal/common"
	"fjacquet/ecb-rates/internal/dateutils"
	"fjacquet/ecb-rates/internal/logging"
	"fjacquet/ecb-rates/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Pairs derives the distinct pair identifiers from the normalized file names.
// Files that do not follow the EUR_<CODE>.csv convention are ignored.
func Pairs(files []string) []string {
	set := make(map[string]struct{})
	for _, f := range files {
		if pair, ok := models.PairFromFileName(filepath.Base(f)); ok {
			set[pair] = struct{}{}
		}
	}
	pairs := make([]string, 0, len(set))
	for pair := range set {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)
	return pairs
}

// Dates reads every normalized file and returns the distinct observed dates
// across all of them, sorted ascending. A file that cannot be read is logged
// and skipped; its dates simply do not contribute.
func Dates(files []string) []time.Time {
	set := make(map[string]time.Time)
	for _, f := range files {
		rows, err := common.ReadCSVFile[models.NormalizedRow](f)
		if err != nil {
			log.WithError(err).WithField(logging.FieldFile, f).Error("Skipping unreadable normalized file")
			continue
		}
		for _, row := range rows {
			if _, seen := set[row.Date]; seen {
				continue
			}
			d, err := dateutils.ParseISODate(row.Date)
			if err != nil {
				log.WithFields(logrus.Fields{
					logging.FieldFile:   f,
					logging.FieldReason: err.Error(),
				}).Warn("Skipping row with unparseable date")
				continue
			}
			set[row.Date] = d
		}
	}

	dates := make([]time.Time, 0, len(set))
	for _, d := range set {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// WritePairsReport persists the pairs report (single currency_pair column,
// sorted ascending).
func WritePairsReport(outputDir string, pairs []string) (string, error) {
	sorted := append([]string(nil), pairs...)
	sort.Strings(sorted)

	rows := make([]models.PairRow, 0, len(sorted))
	for _, pair := range sorted {
		rows = append(rows, models.PairRow{CurrencyPair: pair})
	}

	path := filepath.Join(outputDir, "pairs.csv")
	if err := common.WriteCSVFile(path, rows); err != nil {
		return "", fmt.Errorf("writing pairs report: %w", err)
	}
	log.WithFields(logrus.Fields{
		logging.FieldFile:  path,
		logging.FieldCount: len(rows),
	}).Info("Wrote pairs report")
	return path, nil
}

// WriteDatesReport persists the dates report (single date column, YYYY-MM-DD,
// sorted ascending).
func WriteDatesReport(outputDir string, dates []time.Time) (string, error) {
	rows := make([]models.DateRow, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, models.DateRow{Date: dateutils.ToISODate(d)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })

	path := filepath.Join(outputDir, "dates.csv")
	if err := common.WriteCSVFile(path, rows); err != nil {
		return "", fmt.Errorf("writing dates report: %w", err)
	}
	log.WithFields(logrus.Fields{
		logging.FieldFile:  path,
		logging.FieldCount: len(rows),
	}).Info("Wrote dates report")
	return path, nil
}
