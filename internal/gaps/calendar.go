package gaps

import (
	"time"

	"fjacquet/ecb-rates/internal/dateutils"
	"fjacquet/ecb-rates/internal/models"
)

// ExpandMonths produces the inclusive, contiguous sequence of calendar months
// from the earliest to the latest observed date. The range is global across
// all pairs: a pair with a narrower observation window is still judged
// against the full calendar. An empty date set yields an empty range.
func ExpandMonths(dates []time.Time) []models.MonthKey {
	min, max, ok := dateutils.MinMax(dates)
	if !ok {
		return nil
	}

	first := models.MonthKeyOf(min)
	last := models.MonthKeyOf(max)

	months := make([]models.MonthKey, 0, 12)
	for m := first; !m.After(last); m = m.Next() {
		months = append(months, m)
	}
	return months
}
