// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/cashpick/internal/models"
)

const readinessTimeout = 2 * time.Second

// HealthLive handles GET /health/live. It only reports that the process serves HTTP.
//
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthResponse}
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Version:   h.opts.Version,
		Uptime:    time.Since(h.startTime).Seconds(),
		Timestamp: time.Now().UTC(),
	}, models.Metadata{})
}

// HealthReady handles GET /health/ready. Unready when the database does
// not answer a ping.
//
// @Summary Readiness probe
// @Description Pings the database and reports engine counters.
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthResponse}
// @Failure 503 {object} models.APIResponse{data=models.HealthResponse} "Database unreachable"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks := map[string]string{"database": "ok"}
	status, code := "healthy", http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		checks["database"] = err.Error()
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	stats := h.engine.Stats()
	respondSuccess(w, r, code, models.HealthResponse{
		Status:    status,
		Version:   h.opts.Version,
		Uptime:    time.Since(h.startTime).Seconds(),
		Checks:    checks,
		Engine:    &stats,
		Timestamp: time.Now().UTC(),
	}, models.Metadata{})
}
