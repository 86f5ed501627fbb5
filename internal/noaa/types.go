package noaa

import (
	"encoding/json"
	"fmt"
)

// Prediction holds a single tide prediction as returned by the API.
// Values stay as strings; the archiver persists the raw document and only
// needs to know that predictions are present.
type Prediction struct {
	// Local time of the tide prediction, "2006-01-02 15:04".
	Time string `json:"t"`
	// Water height in feet.
	Height string `json:"v"`
}

// Document is the top-level shape of a datagetter response.
type Document struct {
	Predictions []Prediction `json:"predictions"`
}

// Result is the outcome of one datagetter request.
type Result struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the request completed with a 2xx status.
func (r Result) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Predictions decodes the body as a datagetter document and returns its
// predictions field, which may be empty. A body that does not parse is an
// error; callers distinguish a malformed response from one that parsed
// but carries no data.
func (r Result) Predictions() ([]Prediction, error) {
	var doc Document
	if err := json.Unmarshal(r.Body, &doc); err != nil {
		return nil, fmt.Errorf("parse predictions body: %w", err)
	}
	return doc.Predictions, nil
}
