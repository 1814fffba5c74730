// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Provider API fetches by league and outcome",
		},
		[]string{"league", "outcome"}, // success, request_error, decode_error, circuit_open
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Provider fetch latency including retries and rate limiting",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"league"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "response_cache_lookups_total",
			Help: "Response cache lookups by cache name and result",
		},
		[]string{"cache", "result"},
	)

	SyncedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synced_records_total",
			Help: "Canonical rows written by the sync pipeline",
		},
		[]string{"league", "entity"},
	)

	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_job_runs_total",
			Help: "Sync job executions by job name and status",
		},
		[]string{"job", "status"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sync_job_duration_seconds",
			Help:    "Sync job wall-clock duration",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		},
		[]string{"job"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	JobQueueRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_queue_rejected_total",
			Help: "Job triggers rejected because the worker pool was saturated",
		},
		[]string{"job"},
	)

	LogShipDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "log_ship_dropped_total",
			Help: "Log lines dropped because the remote log queue was full",
		},
	)
)
