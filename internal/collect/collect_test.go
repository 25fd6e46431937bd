package collect

import (
	"path/filepath"
	"testing"
	"time"

	"fjacquet/ecb-rates/internal/common"
	"fjacquet/ecb-rates/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNormalized(t *testing.T, dir, pair string, dates ...string) string {
	t.Helper()
	rows := make([]models.NormalizedRow, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, models.NormalizedRow{
			Currency:      pair[len("EUR_"):],
			CurrencyDenom: "EUR",
			Date:          d,
			Rate:          "1.0",
		})
	}
	path := filepath.Join(dir, pair+".csv")
	require.NoError(t, common.WriteCSVFile(path, rows))
	return path
}

func TestPairs(t *testing.T) {
	files := []string{
		"/data/EUR_USD.csv",
		"/data/EUR_SEK.csv",
		"/data/EUR_USD.csv", // duplicate
		"/data/pairs.csv",   // not a pair file
	}
	assert.Equal(t, []string{"EUR_SEK", "EUR_USD"}, Pairs(files))
}

func TestPairsInputOrderIrrelevant(t *testing.T) {
	forward := Pairs([]string{"a/EUR_USD.csv", "b/EUR_NOK.csv", "c/EUR_DKK.csv"})
	backward := Pairs([]string{"c/EUR_DKK.csv", "b/EUR_NOK.csv", "a/EUR_USD.csv"})
	assert.Equal(t, forward, backward)
}

func TestDates(t *testing.T) {
	tempDir := t.TempDir()
	usd := writeNormalized(t, tempDir, "EUR_USD", "2024-01-03", "2024-01-02")
	sek := writeNormalized(t, tempDir, "EUR_SEK", "2024-01-02", "2024-02-01")

	dates := Dates([]string{usd, sek})
	require.Len(t, dates, 3, "duplicate dates across files collapse into one")
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), dates[1])
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), dates[2])
}

func TestDatesSkipsUnreadableFile(t *testing.T) {
	tempDir := t.TempDir()
	usd := writeNormalized(t, tempDir, "EUR_USD", "2024-01-02")

	dates := Dates([]string{usd, filepath.Join(tempDir, "EUR_NOK.csv")})
	assert.Len(t, dates, 1, "a missing file contributes no dates but does not abort")
}

func TestWritePairsReportRoundTrip(t *testing.T) {
	tempDir := t.TempDir()

	path, err := WritePairsReport(tempDir, []string{"EUR_USD", "EUR_DKK", "EUR_SEK"})
	require.NoError(t, err)

	rows, err := common.ReadCSVFile[models.PairRow](path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "EUR_DKK", rows[0].CurrencyPair, "pairs report is sorted ascending")
	assert.Equal(t, "EUR_SEK", rows[1].CurrencyPair)
	assert.Equal(t, "EUR_USD", rows[2].CurrencyPair)
}

func TestWriteDatesReportRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	dates := []time.Time{
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC),
	}

	path, err := WriteDatesReport(tempDir, dates)
	require.NoError(t, err)

	rows, err := common.ReadCSVFile[models.DateRow](path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2023-11-15", rows[0].Date, "dates report is sorted ascending")
	assert.Equal(t, "2024-02-01", rows[1].Date)
}
