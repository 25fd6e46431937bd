package pipeline

import (
	"path/filepath"
	"time"

	"fjacquet/ecb-rates/internal/fileutils"
	"fjacquet/ecb-rates/internal/models"

	"gopkg.in/yaml.v3"
)

// UnitFailure records why one currency pair was excluded from the run.
type UnitFailure struct {
	Pair   string `yaml:"pair"`
	Stage  string `yaml:"stage"`
	Reason string `yaml:"reason"`
}

// Summary is the operator-facing record of one run, persisted as
// run_summary.yaml. It distinguishes "a fetch failed" from "no data ever
// existed": failed units are listed with their stage and reason, while the
// missing-month counts cover only units that succeeded.
type Summary struct {
	RunAt          time.Time     `yaml:"run_at"`
	Currencies     []string      `yaml:"currencies"`
	PairsReported  int           `yaml:"pairs_reported"`
	DatesObserved  int           `yaml:"dates_observed"`
	ExpectedMonths int           `yaml:"expected_months"`
	MissingMonths  int           `yaml:"missing_months"`
	Failures       []UnitFailure `yaml:"failures"`
}

// Succeeded reports whether every unit completed.
func (s *Summary) Succeeded() bool {
	return len(s.Failures) == 0
}

// Write persists the summary to run_summary.yaml in the output directory.
func (s *Summary) Write(outputDir string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return fileutils.WriteFile(filepath.Join(outputDir, "run_summary.yaml"), data, 0640)
}

func buildSummary(currencies []string, results []unitResult, pairs []string,
	dates []time.Time, expected []models.MonthKey, aggregate []models.MissingEntry) *Summary {
	summary := &Summary{
		RunAt:          time.Now().UTC(),
		Currencies:     currencies,
		PairsReported:  len(pairs),
		DatesObserved:  len(dates),
		ExpectedMonths: len(expected),
		MissingMonths:  len(aggregate),
		Failures:       []UnitFailure{},
	}
	for i := range results {
		if results[i].Err != nil {
			summary.Failures = append(summary.Failures, UnitFailure{
				Pair:   results[i].Pair,
				Stage:  results[i].FailedStage,
				Reason: results[i].Err.Error(),
			})
		}
	}
	return summary
}
