// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package services

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/cashpick/internal/database"
	"github.com/tomtom215/cashpick/internal/logging"
	"github.com/tomtom215/cashpick/internal/metrics"
)

type fakeExporter struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeExporter) ExportSnapshot(_ context.Context, baseDir, format string) (*database.ExportResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &database.ExportResult{
		Dir:    baseDir + "/20260501T000000Z",
		Format: format,
		Rows:   map[string]int64{"users": 2, "items": 100, "interactions": 7},
	}, nil
}

func (f *fakeExporter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestSnapshotService_ExportOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewTestLogger(&buf)

	t.Run("success", func(t *testing.T) {
		success := metrics.SnapshotExportsTotal.WithLabelValues("csv", "success")
		before := testutil.ToFloat64(success)

		exp := &fakeExporter{}
		svc := NewSnapshotService(exp, SnapshotServiceConfig{Interval: time.Minute, Dir: "/tmp/snap", Format: "csv"}, logger)
		if err := svc.ExportOnce(context.Background()); err != nil {
			t.Fatalf("ExportOnce() error = %v", err)
		}
		if got := testutil.ToFloat64(success) - before; got != 1 {
			t.Errorf("success count delta = %v, want 1", got)
		}
		if got := testutil.ToFloat64(metrics.SnapshotRows.WithLabelValues("items")); got != 100 {
			t.Errorf("items rows gauge = %v, want 100", got)
		}
	})

	t.Run("failure", func(t *testing.T) {
		failure := metrics.SnapshotExportsTotal.WithLabelValues("parquet", "failure")
		before := testutil.ToFloat64(failure)

		exp := &fakeExporter{err: errors.New("disk full")}
		svc := NewSnapshotService(exp, SnapshotServiceConfig{Interval: time.Minute, Dir: "/tmp/snap"}, logger)
		if err := svc.ExportOnce(context.Background()); err == nil {
			t.Fatal("ExportOnce() error = nil, want failure")
		}
		if got := testutil.ToFloat64(failure) - before; got != 1 {
			t.Errorf("failure count delta = %v, want 1", got)
		}
	})
}

func TestSnapshotService_ServeTicks(t *testing.T) {
	exp := &fakeExporter{err: errors.New("transient")}
	svc := NewSnapshotService(exp, SnapshotServiceConfig{Interval: 10 * time.Millisecond, Dir: "/tmp/snap"}, logging.NewTestLogger(&bytes.Buffer{}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for exp.Calls() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled (export errors must not stop the loop)", err)
	}
	if exp.Calls() < 2 {
		t.Errorf("exports = %d, want at least 2", exp.Calls())
	}
}

func TestSnapshotService_Defaults(t *testing.T) {
	svc := NewSnapshotService(&fakeExporter{}, SnapshotServiceConfig{}, logging.NewTestLogger(&bytes.Buffer{}))
	if svc.config.Interval != time.Hour || svc.config.ExportTimeout != time.Hour || svc.config.Format != database.ExportFormatParquet {
		t.Errorf("config = %+v", svc.config)
	}
}

type fakePruner struct {
	mu    sync.Mutex
	calls int
	keep  int
}

func (f *fakePruner) Prune(_ context.Context, keep int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.keep = keep
	return 1, nil
}

func TestModelPruneService(t *testing.T) {
	p := &fakePruner{}
	svc := NewModelPruneService(p, 3, time.Hour, logging.NewTestLogger(&bytes.Buffer{}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		calls := p.calls
		p.mu.Unlock()
		if calls > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.calls != 1 || p.keep != 3 {
		t.Errorf("calls = %d keep = %d, want one startup prune keeping 3", p.calls, p.keep)
	}
}
