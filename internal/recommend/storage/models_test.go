// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package storage

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/cashpick/internal/recommend"
	"github.com/tomtom215/cashpick/internal/recommend/algorithms"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{InMemory: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// Compile-time check that Store satisfies the engine's store interface.
var _ recommend.ModelStore = (*Store)(nil)

func TestStore_PutGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		data, ok, err := s.Get(ctx, "absent")
		if err != nil || ok || data != nil {
			t.Errorf("Get(absent) = %v, %v, %v; want nil, false, nil", data, ok, err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		payload := bytes.Repeat([]byte("ease-state-"), 200)
		if err := s.Put(ctx, "abc123", payload); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, ok, err := s.Get(ctx, "abc123")
		if err != nil || !ok {
			t.Fatalf("Get() = _, %v, %v", ok, err)
		}
		if !bytes.Equal(got, payload) {
			t.Error("Get() returned different bytes")
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := s.Put(ctx, "k", []byte("one")); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if err := s.Put(ctx, "k", []byte("two")); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, _, err := s.Get(ctx, "k")
		if err != nil || string(got) != "two" {
			t.Errorf("Get() = %q, %v; want two", got, err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if err := s.Put(cctx, "x", []byte("y")); !errors.Is(err, context.Canceled) {
			t.Errorf("Put() error = %v, want context.Canceled", err)
		}
	})
}

func TestStore_ChecksumMismatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "k", []byte("original")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	// Rewrite the metadata with a bogus checksum.
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(metaKeyPrefix+"k"), []byte(`{"fingerprint":"k","checksum":"deadbeef"}`))
	})
	if err != nil {
		t.Fatalf("corrupt metadata: %v", err)
	}

	_, _, err = s.Get(ctx, "k")
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Get() error = %v, want ErrChecksumMismatch", err)
	}
}

func TestStore_ListDeletePrune(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		if err := s.Put(ctx, k, []byte(k)); err != nil {
			t.Fatalf("Put(%s) error = %v", k, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	models, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(models) != 3 {
		t.Fatalf("len(List()) = %d, want 3", len(models))
	}
	for _, m := range models {
		if m.RawSizeBytes != 1 || m.Checksum == "" || m.SavedAt.IsZero() {
			t.Errorf("metadata = %+v", m)
		}
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "a"); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Error("Get(a) found after Delete")
	}

	removed, err := s.Prune(ctx, 1)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune() removed = %d, want 1", removed)
	}
	if _, ok, _ := s.Get(ctx, "c"); !ok {
		t.Error("newest model pruned")
	}
	if _, ok, _ := s.Get(ctx, "b"); ok {
		t.Error("older model kept")
	}
}

func TestStore_EASEModel(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cfg := recommend.DefaultConfig()
	catalog, err := recommend.NewCatalogIndex(cfg.Catalog.FirstID, cfg.Catalog.Size)
	if err != nil {
		t.Fatalf("NewCatalogIndex() error = %v", err)
	}

	start := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	interactions := []recommend.Interaction{
		{UserID: 1, ItemID: 3, Feedback: recommend.FeedbackPositive, Timestamp: start},
		{UserID: 1, ItemID: 9, Feedback: recommend.FeedbackPositive, Timestamp: start.Add(time.Minute)},
		{UserID: 2, ItemID: 3, Feedback: recommend.FeedbackPositive, Timestamp: start.Add(2 * time.Minute)},
		{UserID: 2, ItemID: 50, Feedback: recommend.FeedbackNegative, Timestamp: start.Add(3 * time.Minute)},
	}

	model := algorithms.NewEASE(cfg.EASE, catalog)
	if err := model.Fit(ctx, interactions); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	data, err := model.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	key := recommend.Fingerprint(interactions, cfg.EASE.Lambda, catalog.FirstID(), catalog.Size(), cfg.EASE.Window)
	if err := s.Put(ctx, key, data); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	stored, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get() = _, %v, %v", ok, err)
	}

	restored := algorithms.NewEASE(cfg.EASE, catalog)
	if err := restored.UnmarshalBinary(stored); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}

	want, _ := model.Score(2, 5)
	got, err := restored.Score(2, 5)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if !slices.Equal(got, want) {
		t.Errorf("restored Score() = %v, want %v", got, want)
	}
}
