// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:3857/metrics

# Available Metrics

Recommendation Metrics:
  - recommendations_total: Requests served (counter)
    Labels: strategy (cold_start, ease)
  - recommendation_duration_seconds: End-to-end latency (histogram)
    Labels: strategy
  - recommendation_errors_total: Failed requests (counter)
    Labels: reason
  - recommendation_empty_total: Requests with no eligible items (counter)

Model Metrics:
  - model_fit_duration_seconds: EASE fit time (histogram)
  - fit_cache_hits_total / fit_cache_misses_total (counters)
  - fit_cache_invalidations_total (counter)
    Labels: source

API Metrics:
  - api_requests_total (counter)
    Labels: method, endpoint, status
  - api_request_duration_seconds (histogram)
    Labels: method, endpoint
  - api_active_requests (gauge)
  - api_rate_limit_hits_total (counter)

Event Bus Metrics:
  - events_published_total (counter)
    Labels: topic, result
  - events_consumed_total (counter)
    Labels: topic, result
  - event_processing_duration_seconds (histogram)
  - circuit_breaker_state (gauge), circuit_breaker_state_transitions_total (counter)

Snapshot Metrics:
  - snapshot_exports_total (counter)
    Labels: format, result
  - snapshot_export_duration_seconds (histogram)
  - snapshot_rows (gauge)
    Labels: table
  - snapshot_last_success_timestamp (gauge)

Endpoint labels use chi route patterns (for example
/api/v1/recommendations/user/{userID}) to keep cardinality bounded.
*/
package metrics
