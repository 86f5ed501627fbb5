package errlog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastalkit/tidearchiver/internal/errlog"
)

func TestEntryString(t *testing.T) {
	cases := []struct {
		entry errlog.Entry
		want  string
	}{
		{
			errlog.Entry{Category: errlog.CategoryError, StationID: "9410170", Year: 2025, Message: "HTTP 503"},
			"Error: Station 9410170, year 2025: HTTP 503",
		},
		{
			errlog.Entry{Category: errlog.CategoryError, StationID: "9413745", Year: 2026, Message: "No predictions data"},
			"Error: Station 9413745, year 2026: No predictions data",
		},
		{
			errlog.Entry{Category: errlog.CategoryException, StationID: "9410840", Year: 2027, Message: "context deadline exceeded"},
			"Exception: Station 9410840, year 2027: context deadline exceeded",
		},
	}
	for _, tc := range cases {
		if got := tc.entry.String(); got != tc.want {
			t.Fatalf("Entry.String() = %q, want %q", got, tc.want)
		}
	}
}

func TestFileSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error_log.txt")
	sink := errlog.NewFileSink(path)

	require.NoError(t, sink.Append(errlog.Entry{
		Category: errlog.CategoryError, StationID: "9410170", Year: 2025, Message: "HTTP 500",
	}))
	require.NoError(t, sink.Append(errlog.Entry{
		Category: errlog.CategoryException, StationID: "9410170", Year: 2026, Message: "boom",
	}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Error: Station 9410170, year 2025: HTTP 500\n"+
			"Exception: Station 9410170, year 2026: boom\n",
		string(raw))
}

func TestFileSinkAppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error_log.txt")

	// Separate sinks simulate separate fetcher runs sharing one log.
	require.NoError(t, errlog.NewFileSink(path).Append(errlog.Entry{
		Category: errlog.CategoryError, StationID: "1", Year: 2025, Message: "HTTP 404",
	}))
	require.NoError(t, errlog.NewFileSink(path).Append(errlog.Entry{
		Category: errlog.CategoryError, StationID: "1", Year: 2025, Message: "HTTP 404",
	}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	// Repeated failures append duplicate lines; there is no deduplication.
	assert.Equal(t,
		"Error: Station 1, year 2025: HTTP 404\nError: Station 1, year 2025: HTTP 404\n",
		string(raw))
}

func TestMemorySink(t *testing.T) {
	var sink errlog.MemorySink
	e := errlog.Entry{Category: errlog.CategoryError, StationID: "9", Year: 2029, Message: "HTTP 429"}
	require.NoError(t, sink.Append(e))

	got := sink.Entries()
	require.Len(t, got, 1)
	assert.Equal(t, e, got[0])

	// Entries returns a copy.
	got[0].Message = "mutated"
	assert.Equal(t, "HTTP 429", sink.Entries()[0].Message)
}
