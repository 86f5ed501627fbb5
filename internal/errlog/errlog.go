// Package errlog records failed fetch attempts in an append-only text log
// and parses that log back for reporting. One entry per line:
//
//	Error: Station <id>, year <year>: HTTP 503
//	Error: Station <id>, year <year>: No predictions data
//	Exception: Station <id>, year <year>: <description>
//
// The log is shared across runs and accumulates indefinitely.
package errlog

import (
	"fmt"
	"os"
	"sync"
)

// Category classifies a failed fetch attempt.
type Category string

const (
	// CategoryError marks failures the remote service reported (bad
	// status) or an empty predictions payload.
	CategoryError Category = "Error"
	// CategoryException marks failures on our side of the request:
	// transport errors, body read errors, persistence errors.
	CategoryException Category = "Exception"
)

// Entry is one failed fetch attempt.
type Entry struct {
	Category  Category
	StationID string
	Year      int
	Message   string
}

// String renders the entry in the on-disk line format, without a newline.
func (e Entry) String() string {
	return fmt.Sprintf("%s: Station %s, year %d: %s", e.Category, e.StationID, e.Year, e.Message)
}

// Sink is an append-only destination for failure entries. It is injected
// into the fetcher so tests can capture entries in memory.
type Sink interface {
	Append(e Entry) error
}

// FileSink appends entries to a flat file. The file is opened and closed
// per write so external readers observe whole lines.
type FileSink struct {
	path string
}

// NewFileSink returns a sink writing to path. The file is created on the
// first append.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Append writes one line to the log file.
func (s *FileSink) Append(e Entry) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) // #nosec G304 -- path comes from operator config.
	if err != nil {
		return fmt.Errorf("open error log %s: %w", s.path, err)
	}
	if _, err := f.WriteString(e.String() + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("append to error log %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close error log %s: %w", s.path, err)
	}
	return nil
}

// MemorySink collects entries in memory for tests.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
}

// Append records the entry.
func (s *MemorySink) Append(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

// Entries returns a copy of everything appended so far.
func (s *MemorySink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
