// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/cashpick/internal/recommend"
)

// Error codes returned in APIError.Code.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeTimeout          = "TIMEOUT"
	CodeRecommendation   = "RECOMMENDATION_ERROR"
	CodeDatabase         = "DATABASE_ERROR"
	CodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeUnavailable      = "SERVICE_UNAVAILABLE"
)

// classifiedError is the HTTP rendering of a domain error.
type classifiedError struct {
	status int
	code   string
	reason string // metrics label
}

// classifyError maps repository and engine errors to HTTP responses.
// fallbackCode is used for anything unrecognized.
func classifyError(err error, fallbackCode string) classifiedError {
	switch {
	case errors.Is(err, recommend.ErrUserNotFound):
		return classifiedError{http.StatusNotFound, CodeNotFound, "user_not_found"}
	case errors.Is(err, recommend.ErrItemNotFound):
		return classifiedError{http.StatusNotFound, CodeNotFound, "item_not_found"}
	case errors.Is(err, recommend.ErrInvalidK):
		return classifiedError{http.StatusBadRequest, CodeValidation, "invalid_k"}
	case errors.Is(err, recommend.ErrInvalidField):
		return classifiedError{http.StatusBadRequest, CodeValidation, "invalid_field"}
	case errors.Is(err, context.DeadlineExceeded):
		return classifiedError{http.StatusGatewayTimeout, CodeTimeout, "timeout"}
	case errors.Is(err, context.Canceled):
		return classifiedError{http.StatusServiceUnavailable, CodeUnavailable, "canceled"}
	default:
		return classifiedError{http.StatusInternalServerError, fallbackCode, "internal"}
	}
}
