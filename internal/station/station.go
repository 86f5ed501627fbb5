// Package station loads the tide-station list shared by the fetcher and
// the error reporter.
package station

import (
	"encoding/json"
	"fmt"
	"os"
)

// Station is a fixed tide-observation location. IDs are assumed unique in
// the source list; uniqueness is not enforced here.
type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Load reads a JSON array of stations from path.
func Load(path string) ([]Station, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from operator config.
	if err != nil {
		return nil, fmt.Errorf("read station list %s: %w", path, err)
	}
	var stations []Station
	if err := json.Unmarshal(raw, &stations); err != nil {
		return nil, fmt.Errorf("parse station list %s: %w", path, err)
	}
	if len(stations) == 0 {
		return nil, fmt.Errorf("station list %s is empty", path)
	}
	return stations, nil
}

// NameIndex builds an id-to-name lookup. Later duplicates win, matching
// the last-entry behavior of a plain map build.
func NameIndex(stations []Station) map[string]string {
	idx := make(map[string]string, len(stations))
	for _, s := range stations {
		idx[s.ID] = s.Name
	}
	return idx
}
