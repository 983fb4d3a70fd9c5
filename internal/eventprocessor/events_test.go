// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package eventprocessor

import (
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/cashpick/internal/recommend"
)

func sampleInteraction() *recommend.Interaction {
	return &recommend.Interaction{
		UserID:    12,
		ItemID:    40,
		Feedback:  recommend.FeedbackPositive,
		Timestamp: time.Date(2026, 6, 1, 8, 30, 0, 0, time.UTC),
	}
}

func TestNewInteractionEvent(t *testing.T) {
	in := sampleInteraction()
	e := NewInteractionEvent(in, "api", "corr-1")

	if e.EventID == "" {
		t.Error("EventID is empty")
	}
	if e.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", e.SchemaVersion, SchemaVersion)
	}
	if e.UserID != 12 || e.ItemID != 40 || e.Feedback != 1 || e.Source != "api" || e.CorrelationID != "corr-1" {
		t.Errorf("event = %+v", e)
	}
	if got := e.Interaction(); got != *in {
		t.Errorf("Interaction() = %+v, want %+v", got, *in)
	}

	other := NewInteractionEvent(in, "api", "")
	if other.EventID == e.EventID {
		t.Error("event ids should be unique")
	}
}

func TestInteractionEvent_Validate(t *testing.T) {
	valid := func() *InteractionEvent { return NewInteractionEvent(sampleInteraction(), "api", "") }

	tests := []struct {
		name    string
		mutate  func(e *InteractionEvent)
		wantErr bool
	}{
		{"valid", func(e *InteractionEvent) {}, false},
		{"negative feedback is valid", func(e *InteractionEvent) { e.Feedback = 0 }, false},
		{"missing id", func(e *InteractionEvent) { e.EventID = "" }, true},
		{"zero user", func(e *InteractionEvent) { e.UserID = 0 }, true},
		{"bad feedback", func(e *InteractionEvent) { e.Feedback = 5 }, true},
		{"zero timestamp", func(e *InteractionEvent) { e.Timestamp = time.Time{} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.mutate(e)
			err := e.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidEvent) {
				t.Errorf("Validate() error = %v, want ErrInvalidEvent", err)
			}
		})
	}
}

func TestSerializeDeserialize(t *testing.T) {
	e := NewInteractionEvent(sampleInteraction(), "api", "corr-9")

	data, err := SerializeEvent(e)
	if err != nil {
		t.Fatalf("SerializeEvent() error = %v", err)
	}
	got, err := DeserializeEvent(data)
	if err != nil {
		t.Fatalf("DeserializeEvent() error = %v", err)
	}
	if got.EventID != e.EventID || got.UserID != e.UserID || !got.Timestamp.Equal(e.Timestamp) {
		t.Errorf("DeserializeEvent() = %+v, want %+v", got, e)
	}

	t.Run("invalid event is not serialized", func(t *testing.T) {
		bad := *e
		bad.UserID = 0
		if _, err := SerializeEvent(&bad); !errors.Is(err, ErrInvalidEvent) {
			t.Errorf("SerializeEvent() error = %v, want ErrInvalidEvent", err)
		}
	})

	t.Run("garbage payload", func(t *testing.T) {
		if _, err := DeserializeEvent([]byte("{not json")); !errors.Is(err, ErrInvalidEvent) {
			t.Errorf("DeserializeEvent() error = %v, want ErrInvalidEvent", err)
		}
	})

	t.Run("valid JSON failing validation", func(t *testing.T) {
		if _, err := DeserializeEvent([]byte(`{"event_id":"x","user_id":1,"feedback":3}`)); !errors.Is(err, ErrInvalidEvent) {
			t.Errorf("DeserializeEvent() error = %v, want ErrInvalidEvent", err)
		}
	})
}
