// Package root contains the root command for the application
package root

import (
	"fjacquet/ecb-rates/internal/config"
	"fjacquet/ecb-rates/internal/pipeline"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration, available to subcommands
	// after PersistentPreRunE has run.
	Cfg *config.Config

	// DataDir overrides the configured data directory when set via flag.
	DataDir string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ecb-rates",
		Short: "A CLI tool that fetches ECB EUR exchange rates and reports monthly coverage gaps.",
		Long: `ecb-rates downloads daily EUR reference rates from the ECB Data Portal,
normalizes them and derives flat-file reports: currency pairs, observed dates,
monthly low/high/average rates, and months without coverage per pair.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to ecb-rates!")
			Log.Info("Use 'ecb-rates run' to execute the full pipeline, or --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			if DataDir != "" {
				cfg.Data.Directory = DataDir
			}
			Cfg = cfg

			Log = config.ConfigureLogging(cfg)
			pipeline.SetLogger(Log)
			return nil
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&DataDir, "data-dir", "d", "", "Output directory for all pipeline artifacts (overrides config)")
}
