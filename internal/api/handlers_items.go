// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cashpick/internal/metrics"
	"github.com/tomtom215/cashpick/internal/models"
	"github.com/tomtom215/cashpick/internal/recommend"
)

// Item handles GET /api/v1/items/{itemID} and returns the display card.
//
// @Summary Get offer card
// @Tags Items
// @Produce json
// @Param itemID path int true "Item ID" minimum(0)
// @Success 200 {object} models.APIResponse{data=recommend.ItemCard}
// @Failure 400 {object} models.APIResponse "Invalid item ID"
// @Failure 404 {object} models.APIResponse "Item not found"
// @Router /api/v1/items/{itemID} [get]
func (h *Handler) Item(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	itemID, err := parseItemID(chi.URLParam(r, "itemID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	if card, ok := h.itemCache.Get(itemID); ok {
		metrics.RecordItemCache(true)
		respondSuccess(w, r, http.StatusOK, card, models.Metadata{
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      true,
		})
		return
	}
	metrics.RecordItemCache(false)

	item, err := h.store.GetItem(r.Context(), itemID)
	if err != nil {
		respondClassified(w, r, classifyError(err, CodeDatabase), "Failed to load item", err)
		return
	}

	card := recommend.NewItemCard(item)
	h.itemCache.SetWithTTL(itemID, card, 1, h.opts.ItemCacheTTL)

	respondSuccess(w, r, http.StatusOK, card, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
	})
}
