// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package api

import (
	"net/http"

	"github.com/tomtom215/cashpick/internal/eventprocessor"
	"github.com/tomtom215/cashpick/internal/logging"
	"github.com/tomtom215/cashpick/internal/models"
)

// RecordInteraction handles POST /api/v1/interactions.
//
// @Summary Record feedback
// @Description Appends a like (1) or dislike (0) to the interaction log and publishes an event that invalidates cached models.
// @Tags Interactions
// @Accept json
// @Produce json
// @Param interaction body models.InteractionRequest true "Feedback"
// @Success 201 {object} models.APIResponse{data=models.InteractionResponse}
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Failure 404 {object} models.APIResponse "Unknown user or item"
// @Failure 500 {object} models.APIResponse "Database error"
// @Router /api/v1/interactions [post]
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	var req models.InteractionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	ctx := r.Context()
	in := req.Interaction()
	if err := h.store.AppendInteraction(ctx, in); err != nil {
		respondClassified(w, r, classifyError(err, CodeDatabase), "Failed to record interaction", err)
		return
	}

	resp := models.InteractionResponse{
		UserID:    in.UserID,
		ItemID:    in.ItemID,
		Feedback:  int(in.Feedback),
		Timestamp: in.Timestamp,
	}

	if h.publisher != nil {
		event := eventprocessor.NewInteractionEvent(in, eventSource, logging.CorrelationIDFromContext(ctx))
		resp.EventID = event.EventID
		if err := h.publisher.PublishInteraction(ctx, event); err != nil {
			logging.Ctx(ctx).Warn().Err(err).
				Str("event_id", event.EventID).
				Msg("Interaction stored but event publish failed")
		} else {
			resp.Published = true
		}
	}

	respondSuccess(w, r, http.StatusCreated, resp, models.Metadata{})
}
