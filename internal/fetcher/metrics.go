package fetcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalRequests tracks the number of HTTP requests dispatched.
	TotalRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tidearchiver_requests_total",
		Help: "The total number of HTTP requests sent to the predictions endpoint.",
	})
	// TotalSuccess tracks keys that produced an archived artifact.
	TotalSuccess = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tidearchiver_fetch_success_total",
		Help: "The total number of station/year fetches archived successfully.",
	})
	// TotalFailed tracks keys that ended in an error-log entry.
	TotalFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tidearchiver_fetch_failed_total",
		Help: "The total number of station/year fetches that failed.",
	})
	// TotalSkipped tracks keys whose artifact already existed.
	TotalSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tidearchiver_fetch_skipped_total",
		Help: "The total number of station/year fetches skipped because the artifact exists.",
	})
)
