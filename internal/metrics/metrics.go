// Package metrics provides Prometheus metrics for socialspy.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProxyRequestsTotal counts proxy requests by outcome.
	ProxyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socialspy",
			Name:      "proxy_requests_total",
			Help:      "Total number of trending proxy requests",
		},
		[]string{"outcome"},
	)

	// UpstreamDuration measures upstream listing fetch duration.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "socialspy",
			Name:      "upstream_duration_seconds",
			Help:      "Duration of upstream listing fetches in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"platform"},
	)

	// SummariesTotal counts summarizer panel submissions by outcome.
	SummariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socialspy",
			Name:      "summaries_total",
			Help:      "Total number of summarize submissions",
		},
		[]string{"outcome"},
	)

	// StorageErrorsTotal counts contained storage failures.
	StorageErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socialspy",
			Name:      "storage_errors_total",
			Help:      "Total number of contained storage failures",
		},
		[]string{"store", "operation"},
	)

	// SnapshotsTotal counts scheduled snapshot runs.
	SnapshotsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socialspy",
			Name:      "snapshots_total",
			Help:      "Total number of trending snapshot runs",
		},
		[]string{"subreddit", "status"},
	)
)

// Proxy outcomes
const (
	OutcomeSuccess       = "success"
	OutcomeUpstreamError = "upstream_error"
	OutcomePreflight     = "preflight"
	OutcomeSetupError    = "setup_error"
)

// Summarizer outcomes
const (
	OutcomeValidation = "validation"
	OutcomeFailure    = "failure"
)
