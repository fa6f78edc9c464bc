package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memberclub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "memberclub_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	ImageStoreOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memberclub_image_store_operations_total",
			Help: "Image store calls by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	ImageCleanupFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memberclub_image_cleanup_failures_total",
			Help: "Best-effort image deletions that failed and left an orphaned asset",
		},
		[]string{"reason"},
	)
)
