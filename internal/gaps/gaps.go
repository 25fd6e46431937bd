// Package gaps detects months without coverage per currency pair and merges
// the per-pair results into the aggregate missing-data report.
package gaps

import (
	"fmt"
	"path/filepath"
	"sort"

	"fjacquet/ecb-rates/internal/common"
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

// StatsLookup resolves a pair identifier to its monthly stats. The second
// return value is false when the pair has no stats at all (its upstream unit
// failed or never produced data), in which case every expected month counts
// as missing.
type StatsLookup func(pair string) ([]models.MonthlyStat, bool)

// Detect diffs the expected month range against the pair's available months,
// preserving the expected range's order. An absent stats collection is a
// valid outcome, not an error: the whole range is reported missing.
func Detect(pair string, expected []models.MonthKey, lookup StatsLookup) []models.MissingEntry {
	available := make(map[models.MonthKey]struct{})
	if monthly, ok := lookup(pair); ok {
		for _, s := range monthly {
			available[s.Month] = struct{}{}
		}
	} else {
		log.WithField(logging.FieldPair, pair).Warn("No monthly stats for pair, all expected months are missing")
	}

	missing := make([]models.MissingEntry, 0)
	for _, month := range expected {
		if _, ok := available[month]; !ok {
			missing = append(missing, models.MissingEntry{Pair: pair, Month: month})
		}
	}
	return missing
}

// Aggregate concatenates the per-pair missing entries and sorts them by
// (pair, month) on the canonical string forms. Entries for pairs outside the
// known set are dropped; known pairs with zero entries simply contribute no
// rows. Input order does not affect the output.
func Aggregate(perPair [][]models.MissingEntry, knownPairs []string) []models.MissingEntry {
	known := make(map[string]struct{}, len(knownPairs))
	for _, pair := range knownPairs {
		known[pair] = struct{}{}
	}

	var all []models.MissingEntry
	for _, entries := range perPair {
		for _, e := range entries {
			if _, ok := known[e.Pair]; !ok {
				log.WithField(logging.FieldPair, e.Pair).Warn("Dropping missing entry for unknown pair")
				continue
			}
			all = append(all, e)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Pair != all[j].Pair {
			return all[i].Pair < all[j].Pair
		}
		return all[i].Month.String() < all[j].Month.String()
	})
	return all
}

// MissingFileName returns the per-pair missing-data file name, e.g.
// "EUR_USD_missing_data.csv".
func MissingFileName(pair string) string {
	return pair + "_missing_data.csv"
}

// WriteMissingFile persists one pair's missing months. An empty entry list
// still writes a header-only file so downstream consumers see the unit ran.
func WriteMissingFile(outputDir, pair string, entries []models.MissingEntry) (string, error) {
	path := filepath.Join(outputDir, MissingFileName(pair))
	if err := common.WriteCSVFile(path, toRows(entries)); err != nil {
		return "", fmt.Errorf("writing missing data for %s: %w", pair, err)
	}
	return path, nil
}

// WriteAggregateReport persists the sorted aggregate missing-data report.
func WriteAggregateReport(outputDir string, entries []models.MissingEntry) (string, error) {
	path := filepath.Join(outputDir, "missing_data.csv")
	if err := common.WriteCSVFile(path, toRows(entries)); err != nil {
		return "", fmt.Errorf("writing aggregate missing data: %w", err)
	}
	log.WithFields(logrus.Fields{
		logging.FieldFile:  path,
		logging.FieldCount: len(entries),
	}).Info("Wrote aggregate missing-data report")
	return path, nil
}

func toRows(entries []models.MissingEntry) []models.MissingRow {
	rows := make([]models.MissingRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, e.Row())
	}
	return rows
}
