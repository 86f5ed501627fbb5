// Package report turns the flat error log into a per-station, per-message
// breakdown of affected years.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/coastalkit/tidearchiver/internal/errlog"
)

// unknownStation is the display name for ids absent from the station list.
const unknownStation = "Unknown Station"

// missingMessage is rewritten to "Missing" at display time.
const missingMessage = "No predictions data"

// MessageGroup collects the years a given message was logged for, in
// first-seen order. Message is the verbatim log text.
type MessageGroup struct {
	Message string
	Years   []string
}

// StationGroup holds one station's messages in first-seen order.
type StationGroup struct {
	ID       string
	Name     string
	Messages []MessageGroup
}

// Report is the grouped summary of an error log.
type Report struct {
	Stations []StationGroup
}

// Summarize groups parsed log lines by station, then by exact message.
// Stations appear in the order their first matching line appeared;
// messages likewise within a station. Unresolvable ids get the
// "Unknown Station" display name.
func Summarize(entries []errlog.ParsedError, names map[string]string) Report {
	var rep Report
	stationIdx := make(map[string]int)
	messageIdx := make(map[string]map[string]int)

	for _, e := range entries {
		si, ok := stationIdx[e.StationID]
		if !ok {
			name, found := names[e.StationID]
			if !found {
				name = unknownStation
			}
			si = len(rep.Stations)
			stationIdx[e.StationID] = si
			messageIdx[e.StationID] = make(map[string]int)
			rep.Stations = append(rep.Stations, StationGroup{ID: e.StationID, Name: name})
		}

		mi, ok := messageIdx[e.StationID][e.Message]
		if !ok {
			mi = len(rep.Stations[si].Messages)
			messageIdx[e.StationID][e.Message] = mi
			rep.Stations[si].Messages = append(rep.Stations[si].Messages, MessageGroup{Message: e.Message})
		}

		rep.Stations[si].Messages[mi].Years = append(rep.Stations[si].Messages[mi].Years, e.Year)
	}

	return rep
}

// String renders the report. Years are sorted as strings, which matches
// numeric order for fixed-width four-digit years.
func (r Report) String() string {
	var b strings.Builder
	for _, st := range r.Stations {
		fmt.Fprintf(&b, "Station %s (%s):\n", st.ID, st.Name)
		for _, mg := range st.Messages {
			display := mg.Message
			if display == missingMessage {
				display = "Missing"
			}
			years := make([]string, len(mg.Years))
			copy(years, mg.Years)
			sort.Strings(years)
			fmt.Fprintf(&b, "  %s: %s\n", display, strings.Join(years, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Write prints the rendered report to w.
func (r Report) Write(w io.Writer) error {
	if _, err := io.WriteString(w, r.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
