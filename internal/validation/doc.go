// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is created lazily and shared, so struct
// metadata is cached across requests. Error field names are taken from json
// tags, which keeps messages aligned with what API clients send.
//
// Custom tags:
//   - categories: semicolon-delimited profile categories, each at most 64 runes
//   - userfield: the name of a mutable user field (see recommend.UserFields)
//
// Example:
//
//	type InteractionRequest struct {
//	    UserID   int64 `json:"user_id" validate:"required,gt=0"`
//	    ItemID   *int  `json:"item_id" validate:"required,gte=0"`
//	    Feedback *int  `json:"feedback" validate:"required,oneof=0 1"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
