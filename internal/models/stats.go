package models

import "github.com/shopspring/decimal"

// MonthlyStat holds the derived low/high/average rate for one pair-month.
// Recomputed from scratch on every run, never incrementally updated.
type MonthlyStat struct {
	Pair    string
	Month   MonthKey
	Low     decimal.Decimal
	High    decimal.Decimal
	Average decimal.Decimal
}

// MonthlyStatRow is one row of a EUR_<CODE>_monthly_stats.csv file.
type MonthlyStatRow struct {
	MonthStr string `csv:"month_str"`
	Low      string `csv:"low"`
	High     string `csv:"high"`
	Average  string `csv:"average"`
}

// Row converts a MonthlyStat to its persisted form. Averages are rounded to
// four decimal places, matching the precision of the upstream daily rates.
func (s MonthlyStat) Row() MonthlyStatRow {
	return MonthlyStatRow{
		MonthStr: s.Month.String(),
		Low:      s.Low.String(),
		High:     s.High.String(),
		Average:  s.Average.Round(4).String(),
	}
}

// MissingEntry records one month in the expected range for which a pair has
// no monthly stat.
type MissingEntry struct {
	Pair  string
	Month MonthKey
}

// MissingRow is one row of a missing-data report (per-pair or aggregate).
type MissingRow struct {
	CurrencyPair string `csv:"currency_pair"`
	Month        string `csv:"month"`
}

// Row converts a MissingEntry to its persisted form.
func (e MissingEntry) Row() MissingRow {
	return MissingRow{CurrencyPair: e.Pair, Month: e.Month.String()}
}
