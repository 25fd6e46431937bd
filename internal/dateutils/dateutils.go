// Package dateutils provides common date operations used throughout the application.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO  = "2006-01-02"
	MonthLayoutISO = "2006-01"
)

// ParseISODate parses a date string in YYYY-MM-DD format.
func ParseISODate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayoutISO, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
	}
	return t, nil
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// MinMax returns the earliest and latest of a set of dates. ok is false when
// the set is empty.
func MinMax(dates []time.Time) (min, max time.Time, ok bool) {
	if len(dates) == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return min, max, true
}
