package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastalkit/tidearchiver/internal/errlog"
	"github.com/coastalkit/tidearchiver/internal/report"
)

func parseLog(t *testing.T, lines ...string) []errlog.ParsedError {
	t.Helper()
	entries, err := errlog.ReadErrors(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	return entries
}

func TestSummarize(t *testing.T) {
	names := map[string]string{
		"123": "Monterey",
		"456": "Point Reyes",
	}

	t.Run("GroupsByStationThenMessage", func(t *testing.T) {
		entries := parseLog(t,
			"Error: Station 123, year 2025: No predictions data",
			"Error: Station 456, year 2025: HTTP 500",
			"Error: Station 123, year 2026: No predictions data",
			"Error: Station 123, year 2027: HTTP 404",
		)
		rep := report.Summarize(entries, names)

		require.Len(t, rep.Stations, 2)
		assert.Equal(t, "123", rep.Stations[0].ID)
		assert.Equal(t, "Monterey", rep.Stations[0].Name)
		require.Len(t, rep.Stations[0].Messages, 2)
		assert.Equal(t, "No predictions data", rep.Stations[0].Messages[0].Message)
		assert.Equal(t, []string{"2025", "2026"}, rep.Stations[0].Messages[0].Years)
		assert.Equal(t, "HTTP 404", rep.Stations[0].Messages[1].Message)

		assert.Equal(t, "456", rep.Stations[1].ID)
	})

	t.Run("MissingRewriteAndYearOrder", func(t *testing.T) {
		entries := parseLog(t,
			"Error: Station 123, year 2026: No predictions data",
			"Error: Station 123, year 2025: No predictions data",
		)
		rep := report.Summarize(entries, names)

		out := rep.String()
		assert.Contains(t, out, "Station 123 (Monterey):\n")
		// Years are string-sorted at render, not first-seen order.
		assert.Contains(t, out, "  Missing: 2025, 2026\n")
		assert.NotContains(t, out, "No predictions data")
	})

	t.Run("UnknownStationFallback", func(t *testing.T) {
		entries := parseLog(t,
			"Error: Station 999, year 2025: HTTP 500",
		)
		rep := report.Summarize(entries, names)

		require.Len(t, rep.Stations, 1)
		assert.Equal(t, "Unknown Station", rep.Stations[0].Name)
		assert.Contains(t, rep.String(), "Station 999 (Unknown Station):\n")
	})

	t.Run("ExceptionLinesAbsent", func(t *testing.T) {
		entries := parseLog(t,
			"Exception: Station 123, year 2025: connection refused",
			"Error: Station 456, year 2025: HTTP 500",
		)
		rep := report.Summarize(entries, names)

		require.Len(t, rep.Stations, 1)
		assert.Equal(t, "456", rep.Stations[0].ID)
	})

	t.Run("StationsInFirstSeenOrder", func(t *testing.T) {
		entries := parseLog(t,
			"Error: Station 456, year 2025: HTTP 500",
			"Error: Station 123, year 2025: HTTP 500",
			"Error: Station 456, year 2026: HTTP 500",
		)
		rep := report.Summarize(entries, names)

		require.Len(t, rep.Stations, 2)
		assert.Equal(t, "456", rep.Stations[0].ID)
		assert.Equal(t, "123", rep.Stations[1].ID)
	})

	t.Run("EmptyLogEmptyReport", func(t *testing.T) {
		rep := report.Summarize(nil, names)
		assert.Empty(t, rep.Stations)
		assert.Equal(t, "", rep.String())
	})
}

func TestReportWrite(t *testing.T) {
	entries := parseLog(t,
		"Error: Station 123, year 2025: No predictions data",
		"Error: Station 123, year 2026: No predictions data",
		"Error: Station 999, year 2025: HTTP 503",
	)
	rep := report.Summarize(entries, map[string]string{"123": "Monterey"})

	var b strings.Builder
	require.NoError(t, rep.Write(&b))

	want := "Station 123 (Monterey):\n" +
		"  Missing: 2025, 2026\n" +
		"\n" +
		"Station 999 (Unknown Station):\n" +
		"  HTTP 503: 2025\n" +
		"\n"
	assert.Equal(t, want, b.String())
}
