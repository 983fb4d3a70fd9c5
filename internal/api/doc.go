// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

/*
Package api provides the HTTP interface of the recommendation service.

Routing uses chi with the go-chi ecosystem middleware (cors, httprate,
Recoverer, RealIP, Compress) plus the service's own RequestID,
RequestLogger and PrometheusMetrics from package middleware.

Endpoints:

	GET   /health/live                         process is up
	GET   /health/ready                        database reachable
	GET   /metrics                             Prometheus exposition
	GET   /api/v1/recommendations/user/{userID}?k=N
	GET   /api/v1/items/{itemID}               item card
	POST  /api/v1/users                        register or update a profile
	GET   /api/v1/users/{userID}
	PATCH /api/v1/users/{userID}               {"field": ..., "value": ...}
	POST  /api/v1/interactions                 {"user_id", "item_id", "feedback"}

Every response is wrapped in models.APIResponse. Errors carry a stable
code (VALIDATION_ERROR, NOT_FOUND, TIMEOUT, ...) alongside the message.

Recording an interaction appends it to the store and then publishes an
interaction.recorded event. A failed publish is logged and reported in the
response but does not fail the request: the interaction is already stored
and the engine's fit cache is keyed by snapshot content, so a missed
invalidation only delays eviction of an unused entry.

Item cards are cached in ristretto with a TTL, since the catalog only
changes on import.
*/
package api
