// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(NewTestLogger(&buf)))

	logger.With("service", "http").WithGroup("req").Warn("slow",
		"path", "/api/v1/recommendations",
		"status", 200,
		"elapsed", time.Second,
		"err", errors.New("late"),
	)

	out := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"message":"slow"`,
		`"req.path":"/api/v1/recommendations"`,
		`"req.status":200`,
		`"req.err":"late"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	h := NewSlogHandler(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("Enabled(info) = true for warn logger")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("Enabled(error) = false for warn logger")
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWatermillAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewWatermillAdapter(NewTestLogger(&buf))

	adapter.Info("subscribed", watermill.LogFields{"topic": "interaction.recorded"})
	adapter.With(watermill.LogFields{"handler": "invalidate"}).
		Error("handler failed", errors.New("boom"), watermill.LogFields{"message_uuid": "m-1"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"topic":"interaction.recorded"`) || !strings.Contains(lines[0], `"component":"eventbus"`) {
		t.Errorf("info line = %s", lines[0])
	}
	for _, want := range []string{`"handler":"invalidate"`, `"error":"boom"`, `"message_uuid":"m-1"`, `"level":"error"`} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("error line missing %s: %s", want, lines[1])
		}
	}
}
