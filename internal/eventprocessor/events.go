// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package eventprocessor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/cashpick/internal/recommend"
)

// SchemaVersion is the current event schema version.
const SchemaVersion = 1

// TopicInteractionRecorded is the default topic for recorded feedback.
const TopicInteractionRecorded = "interaction.recorded"

// InteractionEvent announces that a feedback row was appended.
type InteractionEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	Source        string    `json:"source"`
	UserID        int64     `json:"user_id"`
	ItemID        int       `json:"item_id"`
	Feedback      int       `json:"feedback"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewInteractionEvent builds an event for a stored interaction.
func NewInteractionEvent(in *recommend.Interaction, source, correlationID string) *InteractionEvent {
	return &InteractionEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		CorrelationID: correlationID,
		Source:        source,
		UserID:        in.UserID,
		ItemID:        in.ItemID,
		Feedback:      int(in.Feedback),
		Timestamp:     in.Timestamp,
	}
}

// Validate checks required fields.
func (e *InteractionEvent) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("%w: event_id is required", ErrInvalidEvent)
	}
	if e.UserID <= 0 {
		return fmt.Errorf("%w: user_id must be positive", ErrInvalidEvent)
	}
	if !recommend.Feedback(e.Feedback).Valid() {
		return fmt.Errorf("%w: feedback must be 0 or 1, got %d", ErrInvalidEvent, e.Feedback)
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp is required", ErrInvalidEvent)
	}
	return nil
}

// Interaction converts the event back into a log row.
func (e *InteractionEvent) Interaction() recommend.Interaction {
	return recommend.Interaction{
		UserID:    e.UserID,
		ItemID:    e.ItemID,
		Feedback:  recommend.Feedback(e.Feedback),
		Timestamp: e.Timestamp,
	}
}
