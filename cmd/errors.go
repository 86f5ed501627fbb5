package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/coastalkit/tidearchiver/internal/errlog"
	"github.com/coastalkit/tidearchiver/internal/report"
	"github.com/coastalkit/tidearchiver/internal/station"
)

// newErrorsCmd creates and configures the 'errors' subcommand.
func newErrorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "errors",
		Short: "Summarizes the error log per station",
		Long: `Reads the accumulated error log and prints, for every station with
failures, each distinct error message and the years it affected.`,

		RunE: runErrorsCommand,
	}
	return cmd
}

func runErrorsCommand(_ *cobra.Command, _ []string) error {
	stationFile := viper.GetString("fetch.station_file")
	logPath := viper.GetString("fetch.error_log")

	stations, err := station.Load(stationFile)
	if err != nil {
		return fmt.Errorf("load station list: %w", err)
	}

	f, err := os.Open(logPath) // #nosec G304 -- path comes from operator config.
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Warn("close error log", zap.Error(cerr))
		}
	}()

	entries, err := errlog.ReadErrors(f)
	if err != nil {
		return fmt.Errorf("read error log: %w", err)
	}

	rep := report.Summarize(entries, station.NameIndex(stations))
	return rep.Write(os.Stdout)
}
