// Package cmd defines and implements the CLI commands for the tidearchiver executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/coastalkit/tidearchiver/internal/logging"
	"github.com/coastalkit/tidearchiver/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string

// logger is the shared zap logger, built once the configuration is loaded.
var logger *zap.Logger

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tidearchiver",
		Short: "Archives NOAA tide predictions for a fixed set of stations.",
		Long: `tidearchiver downloads tide-prediction data from the NOAA
tides and currents API for every station in a station list, one calendar
year at a time, and stores each response as a compressed artifact. Failed
fetches are appended to an error log which the 'errors' subcommand
summarizes per station.`,

		// Build the logger after config is loaded but before any RunE.
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			l, err := logging.New(viper.GetBool("log.development"))
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				// Sync errors on stderr are expected on some platforms.
				_ = logger.Sync()
			}
		},
	}

	// Initialize Viper configuration.
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tidearchiver.yaml)")

	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newErrorsCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
