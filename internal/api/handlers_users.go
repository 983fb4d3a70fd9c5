// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cashpick/internal/logging"
	"github.com/tomtom215/cashpick/internal/models"
	"github.com/tomtom215/cashpick/internal/recommend"
)

// UpsertUser handles POST /api/v1/users.
// Existing users keep their bookkeeping fields; only the profile changes.
//
// @Summary Create or update a user profile
// @Tags Users
// @Accept json
// @Produce json
// @Param user body models.UserRequest true "Profile"
// @Success 200 {object} models.APIResponse{data=recommend.User}
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Router /api/v1/users [post]
func (h *Handler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	if err := h.store.UpsertUser(r.Context(), req.User()); err != nil {
		respondClassified(w, r, classifyError(err, CodeDatabase), "Failed to save user", err)
		return
	}

	user, err := h.store.GetUser(r.Context(), req.UserID)
	if err != nil {
		respondClassified(w, r, classifyError(err, CodeDatabase), "Failed to load user", err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("user_id", user.ID).Msg("User profile saved")
	respondSuccess(w, r, http.StatusOK, user, models.Metadata{})
}

// GetUser handles GET /api/v1/users/{userID}.
//
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param userID path int true "User ID" minimum(1)
// @Success 200 {object} models.APIResponse{data=recommend.User}
// @Failure 404 {object} models.APIResponse "User not found"
// @Router /api/v1/users/{userID} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	user, err := h.store.GetUser(r.Context(), userID)
	if err != nil {
		respondClassified(w, r, classifyError(err, CodeDatabase), "Failed to load user", err)
		return
	}
	respondSuccess(w, r, http.StatusOK, user, models.Metadata{})
}

// UpdateUserField handles PATCH /api/v1/users/{userID}.
//
// @Summary Update one user field
// @Description Sets a single profile or bookkeeping field, for example last_item_acknowledged after the assistant shows an offer.
// @Tags Users
// @Accept json
// @Produce json
// @Param userID path int true "User ID" minimum(1)
// @Param update body models.UserFieldUpdate true "Field and value"
// @Success 200 {object} models.APIResponse{data=recommend.User}
// @Failure 400 {object} models.APIResponse "Unknown field or bad value"
// @Failure 404 {object} models.APIResponse "User not found"
// @Router /api/v1/users/{userID} [patch]
func (h *Handler) UpdateUserField(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	var req models.UserFieldUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}
	if !req.HasValue() {
		respondError(w, r, http.StatusBadRequest, CodeValidation, "value is required", nil)
		return
	}

	field, err := recommend.ParseUserField(req.Field)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return
	}

	if err := h.store.UpdateUserField(r.Context(), userID, field, req.Value); err != nil {
		respondClassified(w, r, classifyError(err, CodeDatabase), "Failed to update user", err)
		return
	}

	user, err := h.store.GetUser(r.Context(), userID)
	if err != nil {
		respondClassified(w, r, classifyError(err, CodeDatabase), "Failed to load user", err)
		return
	}
	respondSuccess(w, r, http.StatusOK, user, models.Metadata{})
}
