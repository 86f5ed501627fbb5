package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/coastalkit/tidearchiver/internal/archive"
	"github.com/coastalkit/tidearchiver/internal/errlog"
	"github.com/coastalkit/tidearchiver/internal/fetcher"
	"github.com/coastalkit/tidearchiver/internal/noaa"
	"github.com/coastalkit/tidearchiver/internal/station"
)

// newFetchCmd creates and configures the 'fetch' subcommand.
func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Downloads and archives tide predictions for every station and year",
		Long: `Iterates every station in the station list across the configured year
range. Each station/year response is archived as a compressed file; a key
whose artifact already exists is skipped without a request. Failures are
appended to the error log and summarized by the 'errors' subcommand.`,

		RunE: runFetchCommand,
	}
	return cmd
}

func runFetchCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := fetcher.LoadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load fetch config: %w", err)
	}

	runLogger := logger.With(zap.String("run_id", uuid.NewString()))

	// A station-list failure is fatal: no requests are attempted.
	stations, err := station.Load(cfg.StationFile)
	if err != nil {
		return fmt.Errorf("load station list: %w", err)
	}
	fmt.Printf("Found %d stations in %s\n", len(stations), cfg.StationFile)

	store, err := archive.NewStore(cfg.OutputDir, runLogger)
	if err != nil {
		return fmt.Errorf("init archive: %w", err)
	}

	client, err := noaa.NewClient(cfg.BaseURL, cfg.Timeout, runLogger)
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		addr, shutdown, err := startMetricsServer(cfg.MetricsAddr, runLogger)
		if err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		runLogger.Info("metrics server listening", zap.String("addr", addr))
		defer shutdown()
	}

	f := fetcher.New(cfg, store, client, errlog.NewFileSink(cfg.ErrorLog), nil, runLogger)

	started := time.Now()
	fmt.Printf("Started at %s\n", started.Format(time.RFC1123))

	stats, runErr := f.Run(ctx, stations)
	printSummary(cfg, stations, stats)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("run fetch: %w", runErr)
	}

	runLogger.Info("fetch finished",
		zap.Int("success", stats.Success),
		zap.Int("failed", stats.Failed),
		zap.Int("skipped", stats.Skipped),
		zap.Duration("elapsed", stats.Elapsed),
	)
	return nil
}

func printSummary(cfg fetcher.Config, stations []station.Station, stats fetcher.Stats) {
	total := len(stations) * len(cfg.Years())
	fmt.Println("\n=== Summary ===")
	fmt.Printf("Total stations processed: %d\n", len(stations))
	fmt.Printf("Years processed: %d through %d\n", cfg.StartYear, cfg.EndYear)
	fmt.Printf("Successful requests: %d/%d\n", stats.Success, total)
	fmt.Printf("Failed requests: %d/%d\n", stats.Failed, total)
	fmt.Printf("Skipped (already archived): %d/%d\n", stats.Skipped, total)
	fmt.Printf("Duration: %s\n", stats.Elapsed)
}

// startMetricsServer exposes /metrics while the fetch runs. It returns
// the bound address and a function that shuts the listener down.
func startMetricsServer(addr string, l *zap.Logger) (string, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Warn("metrics server stopped", zap.Error(err))
		}
	}()

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			l.Warn("metrics server shutdown", zap.Error(err))
		}
	}
	return ln.Addr().String(), shutdown, nil
}
