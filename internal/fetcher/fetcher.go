// Package fetcher implements the sequential fetch-and-archive pipeline:
// for every (station, year) key it either skips an existing artifact,
// archives the response, or appends a line to the error log.
package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/coastalkit/tidearchiver/internal/archive"
	"github.com/coastalkit/tidearchiver/internal/errlog"
	"github.com/coastalkit/tidearchiver/internal/noaa"
	"github.com/coastalkit/tidearchiver/internal/station"
)

// Outcome is the result of processing one (station, year) key.
type Outcome int

// Outcomes of a single Process call.
const (
	Success Outcome = iota
	Failed
	Skipped
)

// String names the outcome for logs.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Stats aggregates outcomes over one run.
type Stats struct {
	Success int
	Failed  int
	Skipped int
	Elapsed time.Duration
}

// Total is the number of keys processed.
func (s Stats) Total() int {
	return s.Success + s.Failed + s.Skipped
}

// Fetcher drives the per-key pipeline. It is strictly sequential; the
// only pacing is a fixed delay between keys.
type Fetcher struct {
	cfg    Config
	store  *archive.Store
	client *noaa.Client
	errors errlog.Sink
	clock  clockwork.Clock
	logger *zap.Logger
}

// New wires a Fetcher. A nil clock falls back to the real clock and a nil
// logger to a no-op logger.
func New(cfg Config, store *archive.Store, client *noaa.Client, errors errlog.Sink, clock clockwork.Clock, logger *zap.Logger) *Fetcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		cfg:    cfg,
		store:  store,
		client: client,
		errors: errors,
		clock:  clock,
		logger: logger,
	}
}

// Process handles one key. It performs at most one network request, and
// exactly one of {artifact write, log append} for a non-skipped key.
func (f *Fetcher) Process(ctx context.Context, stationID string, year int) Outcome {
	if f.store.Exists(stationID, year) {
		return Skipped
	}

	TotalRequests.Inc()
	res, err := f.client.FetchPredictions(ctx, noaa.Query{Station: stationID, Year: year})
	if err != nil {
		f.logFailure(errlog.Entry{
			Category:  errlog.CategoryException,
			StationID: stationID,
			Year:      year,
			Message:   err.Error(),
		})
		return Failed
	}

	if !res.OK() {
		f.logFailure(errlog.Entry{
			Category:  errlog.CategoryError,
			StationID: stationID,
			Year:      year,
			Message:   fmt.Sprintf("HTTP %d", res.StatusCode),
		})
		return Failed
	}

	// A body that fails to parse is an exception, not a missing-data
	// error; only a parsed document may report "No predictions data".
	preds, err := res.Predictions()
	if err != nil {
		f.logFailure(errlog.Entry{
			Category:  errlog.CategoryException,
			StationID: stationID,
			Year:      year,
			Message:   err.Error(),
		})
		return Failed
	}
	if len(preds) == 0 {
		f.logFailure(errlog.Entry{
			Category:  errlog.CategoryError,
			StationID: stationID,
			Year:      year,
			Message:   "No predictions data",
		})
		return Failed
	}

	if err := f.store.Put(ctx, stationID, year, res.Body); err != nil {
		f.logFailure(errlog.Entry{
			Category:  errlog.CategoryException,
			StationID: stationID,
			Year:      year,
			Message:   err.Error(),
		})
		return Failed
	}

	return Success
}

// Run processes the full cross product of stations and configured years:
// stations in list order, years ascending. It sleeps the configured delay
// after every key except the last and stops early on context cancellation.
func (f *Fetcher) Run(ctx context.Context, stations []station.Station) (Stats, error) {
	start := f.clock.Now()
	years := f.cfg.Years()
	total := len(stations) * len(years)

	var stats Stats
	processed := 0

	for _, st := range stations {
		f.logger.Info("processing station",
			zap.String("station", st.ID),
			zap.String("name", st.Name),
		)
		for _, year := range years {
			if err := ctx.Err(); err != nil {
				stats.Elapsed = f.clock.Since(start)
				return stats, err
			}

			outcome := f.Process(ctx, st.ID, year)
			switch outcome {
			case Success:
				stats.Success++
				TotalSuccess.Inc()
			case Failed:
				stats.Failed++
				TotalFailed.Inc()
			case Skipped:
				stats.Skipped++
				TotalSkipped.Inc()
			}
			processed++

			f.logger.Info("processed key",
				zap.String("station", st.ID),
				zap.Int("year", year),
				zap.Stringer("outcome", outcome),
				zap.Int("done", processed),
				zap.Int("total", total),
			)

			if processed < total {
				if !f.pause(ctx) {
					stats.Elapsed = f.clock.Since(start)
					return stats, ctx.Err()
				}
			}
		}
	}

	stats.Elapsed = f.clock.Since(start)
	return stats, nil
}

// pause sleeps the configured delay, returning false if the context ended
// first.
func (f *Fetcher) pause(ctx context.Context) bool {
	if f.cfg.Delay <= 0 {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-f.clock.After(f.cfg.Delay):
		return true
	}
}

func (f *Fetcher) logFailure(e errlog.Entry) {
	if err := f.errors.Append(e); err != nil {
		f.logger.Error("append to error log failed",
			zap.String("station", e.StationID),
			zap.Int("year", e.Year),
			zap.Error(err),
		)
	}
}
