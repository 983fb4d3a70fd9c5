// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package recommend

import (
	"context"
	"encoding"
	"errors"
	"strings"
	"time"
)

// NoRecommendation is returned by Result.First when nothing is eligible.
const NoRecommendation = -1

// Sentinel errors returned by the engine and its strategies.
var (
	// ErrUnknownUser indicates a user absent from the fitted user index.
	ErrUnknownUser = errors.New("user not present in fitted model")

	// ErrNotFitted indicates Score was called before Fit.
	ErrNotFitted = errors.New("model has not been fitted")

	// ErrIllConditioned indicates the regularized Gram matrix could not be inverted.
	ErrIllConditioned = errors.New("gram matrix is not invertible")

	// ErrItemOutOfRange indicates an item id outside the declared catalog range.
	ErrItemOutOfRange = errors.New("item id outside catalog range")

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidField indicates an unknown user field or a value of the wrong type.
	ErrInvalidField = errors.New("invalid user field")

	// ErrInvalidK indicates a requested list size outside the configured limits.
	ErrInvalidK = errors.New("invalid number of recommendations requested")

	// ErrCatalogMismatch indicates the items table does not span the declared range.
	ErrCatalogMismatch = errors.New("items table does not match catalog range")
)

// Feedback is the user's reaction to a shown item.
type Feedback int

const (
	// FeedbackNegative is a dismissed or disliked offer.
	FeedbackNegative Feedback = 0
	// FeedbackPositive is an accepted or liked offer.
	FeedbackPositive Feedback = 1
)

// Valid reports whether f is one of the two defined values.
func (f Feedback) Valid() bool {
	return f == FeedbackNegative || f == FeedbackPositive
}

// Weight returns the signed matrix entry for this feedback.
func (f Feedback) Weight() float64 {
	if f == FeedbackPositive {
		return 1
	}
	return -1
}

// String returns a human-readable name for the feedback.
func (f Feedback) String() string {
	switch f {
	case FeedbackNegative:
		return "negative"
	case FeedbackPositive:
		return "positive"
	default:
		return "unknown"
	}
}

// User is a chat assistant user profile.
type User struct {
	ID         int64  `json:"user_id"`
	Age        int    `json:"age"`
	Sex        string `json:"sex"`
	Categories string `json:"categories"` // semicolon-delimited
	KidsFlag   bool   `json:"kids_flag"`
	PetsFlag   bool   `json:"pets_flag"`

	// Bookkeeping maintained by the chat layer. The engine never reads these.
	LastItemID           int       `json:"last_item_id"`
	LastItemAcknowledged bool      `json:"last_item_acknowledged"`
	LastMessageID        int64     `json:"last_message_id"`
	CreatedAt            time.Time `json:"created_at"`
}

// PreferredCategories returns the explicit categories from the profile.
// A blank field yields an empty slice.
func (u *User) PreferredCategories() []string {
	if strings.TrimSpace(u.Categories) == "" {
		return []string{}
	}
	parts := strings.Split(u.Categories, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FavoriteCategories returns the explicit categories plus the household
// categories implied by the kids and pets flags.
func (u *User) FavoriteCategories(kidsCategory, petsCategory string) map[string]struct{} {
	favs := make(map[string]struct{})
	for _, c := range u.PreferredCategories() {
		favs[c] = struct{}{}
	}
	if u.KidsFlag {
		favs[kidsCategory] = struct{}{}
	}
	if u.PetsFlag {
		favs[petsCategory] = struct{}{}
	}
	return favs
}

// Item is a cashback offer in the catalog.
type Item struct {
	ID              int     `json:"item_id"`
	Category        string  `json:"category"`
	Brand           string  `json:"brand"`
	CashbackPercent float64 `json:"cashback_percent"`
	FirstTime       bool    `json:"first_time"`
	Text            string  `json:"text"`
	DaysLeft        int     `json:"days_left"`
	ImageURL        string  `json:"image_url"`
}

// Interaction is one feedback event. The log is append-only.
type Interaction struct {
	UserID    int64     `json:"user_id"`
	ItemID    int       `json:"item_id"`
	Feedback  Feedback  `json:"feedback"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is a consistent view of the three tables.
// Interactions are in chronological log order.
type Snapshot struct {
	Users        []User
	Items        []Item
	Interactions []Interaction
}

// User returns the profile for id.
func (s *Snapshot) User(id int64) (User, bool) {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return s.Users[i], true
		}
	}
	return User{}, false
}

// InteractionCount returns the number of logged interactions for userID,
// duplicates included.
func (s *Snapshot) InteractionCount(userID int64) int {
	n := 0
	for i := range s.Interactions {
		if s.Interactions[i].UserID == userID {
			n++
		}
	}
	return n
}

// SnapshotSource supplies consistent reads of users, items and interactions.
// This is typically implemented by the database layer.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// ColdStarter recommends without a fitted model.
type ColdStarter interface {
	Sample(user User, items []Item, interactions []Interaction, k int) []int
}

// SimilarityModel is a fit-then-score model over the catalog column space.
// Implementations must be serializable so fitted state can be persisted.
type SimilarityModel interface {
	Name() string
	Fit(ctx context.Context, interactions []Interaction) error
	Score(userID int64, k int) ([]int, error)
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// ModelFactory returns a fresh, unfitted model.
type ModelFactory func() SimilarityModel

// ModelStore persists serialized fitted models keyed by snapshot fingerprint.
type ModelStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Strategy names the path that produced a result.
type Strategy string

const (
	// StrategyColdStart is the category-weighted sampler.
	StrategyColdStart Strategy = "cold_start"
	// StrategyEASE is the fitted similarity model.
	StrategyEASE Strategy = "ease"
)

// String returns the strategy name.
func (s Strategy) String() string {
	return string(s)
}

// Request is a recommendation request.
type Request struct {
	UserID    int64
	K         int
	RequestID string
}

// Result is an ordered recommendation list plus bookkeeping about how it was made.
type Result struct {
	UserID      int64         `json:"user_id"`
	Items       []int         `json:"items"`
	Strategy    Strategy      `json:"strategy"`
	RequestID   string        `json:"request_id"`
	FitCacheHit bool          `json:"fit_cache_hit"`
	FitDuration time.Duration `json:"-"`
	LatencyMS   int64         `json:"latency_ms"`
	Timestamp   time.Time     `json:"timestamp"`
}

// First returns the top item, or NoRecommendation when the list is empty.
func (r *Result) First() int {
	return First(r.Items)
}

// First returns ids[0], or NoRecommendation when ids is empty.
func First(ids []int) int {
	if len(ids) == 0 {
		return NoRecommendation
	}
	return ids[0]
}
