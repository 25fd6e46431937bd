package gaps

import (
	"testing"
	"time"

	"fjacquet/ecb-rates/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandMonths(t *testing.T) {
	dates := []time.Time{
		day(2023, time.November, 15),
		day(2024, time.January, 10),
		day(2024, time.February, 3),
	}

	months := ExpandMonths(dates)
	require.Len(t, months, 4)
	assert.Equal(t, "2023-11", months[0].String())
	assert.Equal(t, "2023-12", months[1].String())
	assert.Equal(t, "2024-01", months[2].String())
	assert.Equal(t, "2024-02", months[3].String())
}

func TestExpandMonthsLength(t *testing.T) {
	// length = (maxYear*12+maxMonth) - (minYear*12+minMonth) + 1
	dates := []time.Time{day(2021, time.March, 31), day(2024, time.July, 1)}
	months := ExpandMonths(dates)
	assert.Len(t, months, (2024*12+7)-(2021*12+3)+1)

	// Contiguous and monotonic
	for i := 1; i < len(months); i++ {
		assert.Equal(t, months[i], months[i-1].Next())
	}
}

func TestExpandMonthsSingleDate(t *testing.T) {
	months := ExpandMonths([]time.Time{day(2024, time.June, 15)})
	require.Len(t, months, 1)
	assert.Equal(t, models.MonthKey{Year: 2024, Month: time.June}, months[0])
}

func TestExpandMonthsEmpty(t *testing.T) {
	assert.Empty(t, ExpandMonths(nil), "no observed dates yields an empty range, not an error")
}

func TestExpandMonthsUnorderedInput(t *testing.T) {
	ordered := ExpandMonths([]time.Time{day(2023, time.November, 15), day(2024, time.February, 3)})
	shuffled := ExpandMonths([]time.Time{day(2024, time.February, 3), day(2023, time.November, 15)})
	assert.Equal(t, ordered, shuffled)
}
