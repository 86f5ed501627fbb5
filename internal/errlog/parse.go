package errlog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// linePattern is the grammar the reporter understands. Only lines starting
// with "Error:" match; "Exception:" lines and anything malformed are
// skipped silently.
var linePattern = regexp.MustCompile(`^Error: Station (\d+), year (\d+): (.+)$`)

// ParsedError is one matched log line. Year stays the original string
// token; the reporter sorts years lexicographically.
type ParsedError struct {
	StationID string
	Year      string
	Message   string
}

// ParseLine matches one log line against the grammar.
func ParseLine(line string) (ParsedError, bool) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return ParsedError{}, false
	}
	return ParsedError{StationID: m[1], Year: m[2], Message: m[3]}, true
}

// ReadErrors scans a log stream and returns every matched line in order.
// Lines are read without a length cap so an overlong garbage line is
// skipped like any other unrecognized content.
func ReadErrors(r io.Reader) ([]ParsedError, error) {
	var out []ParsedError
	rd := bufio.NewReader(r)
	for {
		line, err := rd.ReadString('\n')
		if p, ok := ParseLine(strings.TrimSuffix(line, "\n")); ok {
			out = append(out, p)
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read error log: %w", err)
		}
	}
}
