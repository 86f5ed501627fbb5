package noaa

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const timeFormat = "20060102"

// Query identifies one unit of fetch work: a station and a calendar year.
// The request window is [Jan 1 of Year, Jan 1 of Year+1), end exclusive.
type Query struct {
	Station string
	Year    int
}

// BeginDate is the first day of the queried year in datagetter format.
func (q Query) BeginDate() string {
	return time.Date(q.Year, time.January, 1, 0, 0, 0, 0, time.UTC).Format(timeFormat)
}

// EndDate is the first day of the following year in datagetter format.
func (q Query) EndDate() string {
	return time.Date(q.Year+1, time.January, 1, 0, 0, 0, 0, time.UTC).Format(timeFormat)
}

func (q Query) values() url.Values {
	vals := make(url.Values)
	vals.Add("begin_date", q.BeginDate())
	vals.Add("end_date", q.EndDate())
	vals.Add("station", q.Station)
	vals.Add("product", "predictions")
	vals.Add("datum", "mllw")
	vals.Add("time_zone", "lst_ldt")
	vals.Add("units", "english")
	vals.Add("format", "json")
	return vals
}

// Client performs datagetter requests with a bounded timeout.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *zap.Logger
}

// NewClient builds a Client for the given endpoint.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q missing scheme or host", baseURL)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("timeout must be > 0, got %s", timeout)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		base:   base,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}, nil
}

// FetchPredictions performs a single GET for the query and returns the
// status code with the raw body. Transport and read failures return an
// error; a non-2xx status is reported through Result, not as an error.
func (c *Client) FetchPredictions(ctx context.Context, q Query) (Result, error) {
	addr := *c.base
	addr.RawQuery = q.values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr.String(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("build request for station %s year %d: %w", q.Station, q.Year, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("fetch station %s year %d: %w", q.Station, q.Year, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("close response body", zap.Error(cerr))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response for station %s year %d: %w", q.Station, q.Year, err)
	}

	return Result{StatusCode: resp.StatusCode, Body: body}, nil
}
