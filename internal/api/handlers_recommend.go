// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cashpick/internal/logging"
	"github.com/tomtom215/cashpick/internal/metrics"
	"github.com/tomtom215/cashpick/internal/models"
	"github.com/tomtom215/cashpick/internal/recommend"
)

// Recommendations handles GET /api/v1/recommendations/user/{userID}.
// An empty list is a success; First is then -1.
//
// @Summary Recommend offers
// @Description Returns ranked item IDs. New users get a weighted random draw; users with enough feedback get EASE scores.
// @Tags Recommendations
// @Produce json
// @Param userID path int true "User ID" minimum(1)
// @Param k query int false "Number of items (defaults to the engine setting)" minimum(1)
// @Success 200 {object} models.APIResponse{data=models.RecommendationResponse}
// @Failure 400 {object} models.APIResponse "Invalid user ID or k"
// @Failure 404 {object} models.APIResponse "User not found"
// @Failure 504 {object} models.APIResponse "Recommendation timed out"
// @Router /api/v1/recommendations/user/{userID} [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := parseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}
	k, err := parseK(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.RequestTimeout)
	defer cancel()

	res, err := h.engine.Recommend(ctx, recommend.Request{
		UserID:    userID,
		K:         k,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		ce := classifyError(err, CodeRecommendation)
		metrics.RecordRecommendationError(ce.reason)
		respondClassified(w, r, ce, "Failed to generate recommendations", err)
		return
	}

	metrics.RecordRecommendation(res.Strategy.String(), time.Since(start), len(res.Items) == 0)
	if res.Strategy == recommend.StrategyEASE {
		metrics.RecordFit(res.FitCacheHit, res.FitDuration)
	}

	respondSuccess(w, r, http.StatusOK, models.NewRecommendationResponse(res), models.Metadata{
		QueryTimeMS: res.LatencyMS,
		Cached:      res.FitCacheHit,
		RequestID:   res.RequestID,
	})
}
