// Package stats computes monthly low/high/average rates per currency pair.
package stats

import (
	"fmt"
	"path/filepath"
	"sort"

	"fjacquet/ecb-rates/internal/common"
	"fjacquet/ecb-rates/internal/logging"
	"fjacquet/ecb-rates/internal/models"

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

// Monthly groups a single pair's observations by calendar month and folds
// each group into low = min, high = max, average = arithmetic mean. Months
// with zero observations produce no row. Duplicate-date observations are
// included as-is. Output is sorted by month ascending.
func Monthly(pair string, observations []models.Observation) []models.MonthlyStat {
	type acc struct {
		low   decimal.Decimal
		high  decimal.Decimal
		sum   decimal.Decimal
		count int64
	}

	groups := make(map[models.MonthKey]*acc)
	for _, obs := range observations {
		key := models.MonthKeyOf(obs.Date)
		g, ok := groups[key]
		if !ok {
			groups[key] = &acc{low: obs.Rate, high: obs.Rate, sum: obs.Rate, count: 1}
			continue
		}
		if obs.Rate.LessThan(g.low) {
			g.low = obs.Rate
		}
		if obs.Rate.GreaterThan(g.high) {
			g.high = obs.Rate
		}
		g.sum = g.sum.Add(obs.Rate)
		g.count++
	}

	result := make([]models.MonthlyStat, 0, len(groups))
	for key, g := range groups {
		result = append(result, models.MonthlyStat{
			Pair:    pair,
			Month:   key,
			Low:     g.low,
			High:    g.high,
			Average: g.sum.Div(decimal.NewFromInt(g.count)),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month.Before(result[j].Month) })
	return result
}

// FromNormalizedFile reads a pair's normalized file, parses its observations
// and computes the monthly stats.
func FromNormalizedFile(filePath, pair string) ([]models.MonthlyStat, error) {
	rows, err := common.ReadCSVFile[models.NormalizedRow](filePath)
	if err != nil {
		return nil, fmt.Errorf("reading normalized file: %w", err)
	}

	observations := make([]models.Observation, 0, len(rows))
	for _, row := range rows {
		obs, err := models.ParseObservation(pair, row)
		if err != nil {
			return nil, fmt.Errorf("parsing observation in %s: %w", filePath, err)
		}
		observations = append(observations, obs)
	}
	return Monthly(pair, observations), nil
}

// ReadStatsFile loads a pair's persisted monthly stats back from storage.
func ReadStatsFile(outputDir, pair string) ([]models.MonthlyStat, error) {
	path := filepath.Join(outputDir, StatsFileName(pair))
	rows, err := common.ReadCSVFile[models.MonthlyStatRow](path)
	if err != nil {
		return nil, fmt.Errorf("reading monthly stats: %w", err)
	}

	monthly := make([]models.MonthlyStat, 0, len(rows))
	for _, row := range rows {
		month, err := models.ParseMonthKey(row.MonthStr)
		if err != nil {
			return nil, fmt.Errorf("parsing monthly stats in %s: %w", path, err)
		}
		low, err := decimal.NewFromString(row.Low)
		if err != nil {
			return nil, fmt.Errorf("parsing low in %s: %w", path, err)
		}
		high, err := decimal.NewFromString(row.High)
		if err != nil {
			return nil, fmt.Errorf("parsing high in %s: %w", path, err)
		}
		average, err := decimal.NewFromString(row.Average)
		if err != nil {
			return nil, fmt.Errorf("parsing average in %s: %w", path, err)
		}
		monthly = append(monthly, models.MonthlyStat{
			Pair:    pair,
			Month:   month,
			Low:     low,
			High:    high,
			Average: average,
		})
	}
	return monthly, nil
}

// StatsFileName returns the per-pair monthly stats file name, e.g.
// "EUR_USD_monthly_stats.csv".
func StatsFileName(pair string) string {
	return pair + "_monthly_stats.csv"
}

// WriteStatsFile persists a pair's monthly stats. Returns the output path.
func WriteStatsFile(outputDir, pair string, monthly []models.MonthlyStat) (string, error) {
	rows := make([]models.MonthlyStatRow, 0, len(monthly))
	for _, s := range monthly {
		rows = append(rows, s.Row())
	}

	path := filepath.Join(outputDir, StatsFileName(pair))
	if err := common.WriteCSVFile(path, rows); err != nil {
		return "", fmt.Errorf("writing monthly stats: %w", err)
	}
	log.WithFields(logrus.Fields{
		logging.FieldPair:  pair,
		logging.FieldFile:  path,
		logging.FieldCount: len(rows),
	}).Info("Wrote monthly stats")
	return path, nil
}
