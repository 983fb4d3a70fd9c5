// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

/*
Package middleware provides HTTP middleware for the API router.

All middleware has the chi signature func(http.Handler) http.Handler and is
mounted with router.Use. CORS, rate limiting, compression and panic
recovery come from go-chi/cors, httprate and chi's own middleware package;
this package adds the pieces tied to the service's logging and metrics.

Key Components:

  - RequestID: accepts or generates X-Request-ID and stores it, plus a
    fresh correlation ID, in the request context
  - RequestLogger: one zerolog line per request, level by status class
  - PrometheusMetrics: request count, latency and in-flight gauge, labeled
    by chi route pattern

Usage:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.PrometheusMetrics)

Because the route pattern is only known after routing, PrometheusMetrics
and RequestLogger read it once the wrapped handler returns. Requests that
match no route are labeled "unmatched".
*/
package middleware
