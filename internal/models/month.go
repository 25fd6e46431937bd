package models

import (
	"fmt"
	"time"
)

// MonthKey identifies a calendar month. Its canonical string form "YYYY-MM"
// sorts lexicographically in chronological order.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthKeyOf returns the MonthKey containing the given date.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// ParseMonthKey parses the canonical "YYYY-MM" form.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthKeyOf(t), nil
}

// String returns the canonical "YYYY-MM" form.
func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Next returns the following calendar month; December rolls over to January
// of the next year.
func (m MonthKey) Next() MonthKey {
	if m.Month == time.December {
		return MonthKey{Year: m.Year + 1, Month: time.January}
	}
	return MonthKey{Year: m.Year, Month: m.Month + 1}
}

// Before reports whether m is chronologically before other.
func (m MonthKey) Before(other MonthKey) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// After reports whether m is chronologically after other.
func (m MonthKey) After(other MonthKey) bool {
	return other.Before(m)
}
