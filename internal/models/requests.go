// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package models

import (
	"time"

	"github.com/tomtom215/cashpick/internal/recommend"
)

// UserRequest registers a user or replaces their profile.
// Bookkeeping fields are managed through UserFieldUpdate.
type UserRequest struct {
	UserID     int64  `json:"user_id" validate:"required,gt=0"`
	Age        int    `json:"age" validate:"gte=0,lte=150"`
	Sex        string `json:"sex" validate:"max=16"`
	Categories string `json:"categories" validate:"max=1024,categories"`
	KidsFlag   bool   `json:"kids_flag"`
	PetsFlag   bool   `json:"pets_flag"`
}

// User converts the request into a new profile with no recommendation shown.
func (r *UserRequest) User() *recommend.User {
	return &recommend.User{
		ID:         r.UserID,
		Age:        r.Age,
		Sex:        r.Sex,
		Categories: r.Categories,
		KidsFlag:   r.KidsFlag,
		PetsFlag:   r.PetsFlag,
		LastItemID: recommend.NoRecommendation,
	}
}

// UserFieldUpdate sets a single profile field. Value is coerced to the
// field's type by the repository; false and 0 are legitimate values, so
// only a missing value is rejected (see HasValue).
type UserFieldUpdate struct {
	Field string      `json:"field" validate:"required,userfield"`
	Value interface{} `json:"value"`
}

// HasValue reports whether the request carried a non-null value.
func (r *UserFieldUpdate) HasValue() bool {
	return r.Value != nil
}

// InteractionRequest records feedback on a shown item. Pointers distinguish
// a missing value from zero.
type InteractionRequest struct {
	UserID   int64 `json:"user_id" validate:"required,gt=0"`
	ItemID   *int  `json:"item_id" validate:"required,gte=0"`
	Feedback *int  `json:"feedback" validate:"required,oneof=0 1"`
}

// Interaction converts the request into a log row.
func (r *InteractionRequest) Interaction() *recommend.Interaction {
	return &recommend.Interaction{
		UserID:   r.UserID,
		ItemID:   *r.ItemID,
		Feedback: recommend.Feedback(*r.Feedback),
	}
}

// RecommendationResponse is the payload of a recommendation request.
type RecommendationResponse struct {
	UserID      int64     `json:"user_id"`
	Items       []int     `json:"items"`
	First       int       `json:"first"` // -1 when nothing is eligible
	Strategy    string    `json:"strategy"`
	FitCacheHit bool      `json:"fit_cache_hit"`
	RequestID   string    `json:"request_id"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewRecommendationResponse builds the response for an engine result.
func NewRecommendationResponse(res *recommend.Result) *RecommendationResponse {
	items := res.Items
	if items == nil {
		items = []int{}
	}
	return &RecommendationResponse{
		UserID:      res.UserID,
		Items:       items,
		First:       res.First(),
		Strategy:    res.Strategy.String(),
		FitCacheHit: res.FitCacheHit,
		RequestID:   res.RequestID,
		GeneratedAt: res.Timestamp,
	}
}

// InteractionResponse acknowledges a recorded interaction.
type InteractionResponse struct {
	UserID    int64     `json:"user_id"`
	ItemID    int       `json:"item_id"`
	Feedback  int       `json:"feedback"`
	Timestamp time.Time `json:"timestamp"`
	EventID   string    `json:"event_id,omitempty"`
	Published bool      `json:"published"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Status    string            `json:"status"` // healthy, degraded, unhealthy
	Version   string            `json:"version"`
	Uptime    float64           `json:"uptime_seconds"`
	Checks    map[string]string `json:"checks,omitempty"`
	Engine    *recommend.Stats  `json:"engine,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
