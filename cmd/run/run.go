// Package run contains the command that executes the full pipeline.
package run

import (
	"fmt"

	"fjacquet/ecb-rates/cmd/root"
	"fjacquet/ecb-rates/internal/pipeline"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Cmd is the run command. Individual pair failures are logged and reflected
// in the run summary but do not fail the command; only setup errors do.
var Cmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full exchange rate pipeline",
	Long: `Fetches daily EUR reference rates for every configured quote currency,
normalizes them, and writes the pairs, dates, monthly stats and missing-data
reports to the data directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := pipeline.New(root.Cfg)
		summary, err := p.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("pipeline setup failed: %w", err)
		}

		root.Log.WithFields(logrus.Fields{
			"pairs":           summary.PairsReported,
			"dates":           summary.DatesObserved,
			"expected_months": summary.ExpectedMonths,
			"missing_months":  summary.MissingMonths,
			"failures":        len(summary.Failures),
		}).Info("Pipeline run complete")

		if !summary.Succeeded() {
			for _, f := range summary.Failures {
				root.Log.Warnf("Excluded %s: %s stage failed: %s", f.Pair, f.Stage, f.Reason)
			}
		}
		return nil
	},
}
