// Package models defines the data types flowing through the exchange rate
// pipeline and the csv-tagged row structs used for the persisted artifacts.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PairPrefix is the canonical pair-name prefix; the base currency is always EUR.
const PairPrefix = "EUR_"

// PairName returns the canonical pair identifier for a quote currency code,
// e.g. "USD" -> "EUR_USD".
func PairName(currency string) string {
	return PairPrefix + strings.ToUpper(currency)
}

// PairFromFileName derives the pair identifier from a normalized file name
// such as "EUR_USD.csv". The second return value is false when the name does
// not follow the convention.
func PairFromFileName(name string) (string, bool) {
	base := strings.TrimSuffix(name, ".csv")
	if base == name || !strings.HasPrefix(base, PairPrefix) {
		return "", false
	}
	return base, true
}

// RawRow mirrors the columns of the ECB EXR csvdata export that the pipeline
// cares about. The export carries many more columns; gocsv ignores the rest.
type RawRow struct {
	Currency      string `csv:"CURRENCY"`
	CurrencyDenom string `csv:"CURRENCY_DENOM"`
	TimePeriod    string `csv:"TIME_PERIOD"`
	ObsValue      string `csv:"OBS_VALUE"`
}

// NormalizedRow is the canonical per-pair schema persisted to EUR_<CODE>.csv.
type NormalizedRow struct {
	Currency      string `csv:"CURRENCY"`
	CurrencyDenom string `csv:"CURRENCY_DENOM"`
	Date          string `csv:"DATE"`
	Rate          string `csv:"RATE"`
}

// Observation is one (pair, date, rate) data point. Immutable once parsed.
// Duplicate (pair, date) rows are tolerated and flow into aggregates as-is.
type Observation struct {
	Pair string
	Date time.Time
	Rate decimal.Decimal
}

// ParseObservation builds an Observation from a normalized row.
func ParseObservation(pair string, row NormalizedRow) (Observation, error) {
	date, err := time.Parse("2006-01-02", row.Date)
	if err != nil {
		return Observation{}, fmt.Errorf("invalid date %q: %w", row.Date, err)
	}
	rate, err := decimal.NewFromString(row.Rate)
	if err != nil {
		return Observation{}, fmt.Errorf("invalid rate %q: %w", row.Rate, err)
	}
	return Observation{Pair: pair, Date: date, Rate: rate}, nil
}

// PairRow is one row of the pairs.csv report.
type PairRow struct {
	CurrencyPair string `csv:"currency_pair"`
}

// DateRow is one row of the dates.csv report; dates are YYYY-MM-DD.
type DateRow struct {
	Date string `csv:"date"`
}
