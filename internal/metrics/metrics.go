// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests served",
		},
		[]string{"strategy"}, // cold_start, ease
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "End-to-end recommendation latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"strategy"},
	)

	RecommendationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_errors_total",
			Help: "Total number of failed recommendation requests",
		},
		[]string{"reason"}, // user_not_found, invalid_k, model, snapshot, other
	)

	RecommendationEmpty = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_empty_total",
			Help: "Total number of requests that produced no eligible items",
		},
	)

	// Model Fit Metrics
	ModelFitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "model_fit_duration_seconds",
			Help:    "Duration of similarity model fits in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	FitCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fit_cache_hits_total",
			Help: "Total number of requests served by a cached fitted model",
		},
	)

	FitCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fit_cache_misses_total",
			Help: "Total number of requests that required a model fit",
		},
	)

	FitCacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fit_cache_invalidations_total",
			Help: "Total number of fit cache invalidations",
		},
		[]string{"source"}, // event, admin
	)

	// Item Card Cache Metrics
	ItemCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "item_cache_hits_total",
			Help: "Total number of item card cache hits",
		},
	)

	ItemCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "item_cache_misses_total",
			Help: "Total number of item card cache misses",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published",
		},
		[]string{"topic", "result"}, // result: success, failure, rejected
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_consumed_total",
			Help: "Total number of events consumed",
		},
		[]string{"topic", "result"}, // result: processed, failed, invalid
	)

	EventProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "event_processing_duration_seconds",
			Help:    "Duration of event handling in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Snapshot Export Metrics
	SnapshotExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_exports_total",
			Help: "Total number of table snapshot exports",
		},
		[]string{"format", "result"},
	)

	SnapshotExportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snapshot_export_duration_seconds",
			Help:    "Duration of table snapshot exports in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	SnapshotRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "snapshot_rows",
			Help: "Row counts in the most recent snapshot export",
		},
		[]string{"table"},
	)

	SnapshotLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_last_success_timestamp",
			Help: "Unix timestamp of the last successful snapshot export",
		},
	)
)

// RecordRecommendation records a served recommendation.
func RecordRecommendation(strategy string, duration time.Duration, empty bool) {
	RecommendationsTotal.WithLabelValues(strategy).Inc()
	RecommendationDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	if empty {
		RecommendationEmpty.Inc()
	}
}

// RecordRecommendationError records a failed recommendation request.
func RecordRecommendationError(reason string) {
	RecommendationErrors.WithLabelValues(reason).Inc()
}

// RecordFit records the outcome of a fit cache lookup. fitDuration is only
// observed on a miss.
func RecordFit(cacheHit bool, fitDuration time.Duration) {
	if cacheHit {
		FitCacheHits.Inc()
		return
	}
	FitCacheMisses.Inc()
	ModelFitDuration.Observe(fitDuration.Seconds())
}

// RecordFitCacheInvalidation records a fit cache invalidation.
func RecordFitCacheInvalidation(source string) {
	FitCacheInvalidations.WithLabelValues(source).Inc()
}

// RecordItemCache records an item card cache lookup.
func RecordItemCache(hit bool) {
	if hit {
		ItemCacheHits.Inc()
	} else {
		ItemCacheMisses.Inc()
	}
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordEventPublished records a publish attempt.
func RecordEventPublished(topic, result string) {
	EventsPublished.WithLabelValues(topic, result).Inc()
}

// RecordEventConsumed records a consumed event and how long it took.
func RecordEventConsumed(topic, result string, duration time.Duration) {
	EventsConsumed.WithLabelValues(topic, result).Inc()
	EventProcessingDuration.Observe(duration.Seconds())
}

// RecordCircuitBreakerTransition records a breaker state change and updates
// the state gauge.
func RecordCircuitBreakerTransition(name, from, to string, toState float64) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(toState)
}

// RecordSnapshotExport records a snapshot export and, on success, the row
// counts per table.
func RecordSnapshotExport(format string, duration time.Duration, rows map[string]int64, err error) {
	SnapshotExportDuration.Observe(duration.Seconds())
	if err != nil {
		SnapshotExportsTotal.WithLabelValues(format, "failure").Inc()
		return
	}
	SnapshotExportsTotal.WithLabelValues(format, "success").Inc()
	for table, n := range rows {
		SnapshotRows.WithLabelValues(table).Set(float64(n))
	}
	SnapshotLastSuccess.Set(float64(time.Now().Unix()))
}
