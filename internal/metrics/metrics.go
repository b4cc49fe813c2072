// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gameshelf_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gameshelf_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// InsightDuration times each analytics computation, including the
	// library load.
	InsightDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gameshelf_insight_duration_seconds",
			Help:    "Duration of insight computations in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"insight"},
	)

	LibrarySize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gameshelf_library_size_games",
			Help:    "Number of games loaded per insight request",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gameshelf_db_query_duration_seconds",
			Help:    "Duration of SQLite queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	EnrichmentRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gameshelf_enrichment_requests_total",
			Help: "Outbound enrichment calls by client and outcome",
		},
		[]string{"client", "outcome"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gameshelf_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	JobsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gameshelf_jobs_processed_total",
			Help: "Background jobs processed by name and result",
		},
		[]string{"job", "result"},
	)

	JobQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gameshelf_job_queue_depth",
			Help: "Jobs waiting in the worker queue",
		},
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveInsight records one insight computation over a library of n games.
func ObserveInsight(name string, n int, d time.Duration) {
	InsightDuration.WithLabelValues(name).Observe(d.Seconds())
	LibrarySize.Observe(float64(n))
}

// ObserveQuery records one repository operation.
func ObserveQuery(operation string, start time.Time) {
	DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordJob counts a finished background job.
func RecordJob(name string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	JobsProcessed.WithLabelValues(name, result).Inc()
}
