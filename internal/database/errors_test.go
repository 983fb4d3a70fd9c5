// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package database

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/cashpick/internal/logging"
)

// mockCloser implements io.Closer for testing
type mockCloser struct {
	closed bool
	err    error
}

func (m *mockCloser) Close() error {
	m.closed = true
	return m.err
}

type mockTx struct{ rolledBack int }

func (m *mockTx) Rollback() error {
	m.rolledBack++
	return errors.New("sql: transaction has already been committed or rolled back")
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })
	return &buf
}

func TestCloseWithLog(t *testing.T) {
	t.Run("nil closer does not panic", func(t *testing.T) {
		buf := captureLogs(t)
		closeWithLog(nil, "test")
		if buf.Len() > 0 {
			t.Errorf("Expected no log output for nil closer, got: %s", buf.String())
		}
	})

	t.Run("successful close does not log", func(t *testing.T) {
		buf := captureLogs(t)
		closer := &mockCloser{}
		closeWithLog(closer, "test resource")

		if !closer.closed {
			t.Error("Expected closer to be closed")
		}
		if buf.Len() > 0 {
			t.Errorf("Expected no log output for successful close, got: %s", buf.String())
		}
	})

	t.Run("error during close is logged", func(t *testing.T) {
		buf := captureLogs(t)
		closer := &mockCloser{err: errors.New("close failed: connection reset")}
		closeWithLog(closer, "snapshot rows")

		out := buf.String()
		for _, want := range []string{"Failed to close resource", "snapshot rows", "connection reset"} {
			if !strings.Contains(out, want) {
				t.Errorf("log output missing %q: %s", want, out)
			}
		}
	})
}

func TestCloseQuietly(t *testing.T) {
	closeQuietly(nil)

	closer := &mockCloser{err: errors.New("close failed")}
	closeQuietly(closer)
	if !closer.closed {
		t.Error("Expected closer to be closed even with error")
	}
}

func TestRollbackQuietly(t *testing.T) {
	tx := &mockTx{}
	rollbackQuietly(tx)
	if tx.rolledBack != 1 {
		t.Errorf("Rollback called %d times, want 1", tx.rolledBack)
	}
}

func TestQuoteLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/data/items.csv", "'/data/items.csv'"},
		{"/tmp/o'brien.csv", "'/tmp/o''brien.csv'"},
		{"", "''"},
	}
	for _, tt := range tests {
		if got := quoteLiteral(tt.in); got != tt.want {
			t.Errorf("quoteLiteral(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
