// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/tomtom215/cashpick/internal/eventprocessor"
	"github.com/tomtom215/cashpick/internal/recommend"
)

// Recommender produces recommendation lists.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Result, error)
	Stats() recommend.Stats
}

// Store is the repository plus a liveness probe.
type Store interface {
	recommend.Repository
	Ping(ctx context.Context) error
}

// InteractionPublisher announces recorded interactions.
type InteractionPublisher interface {
	PublishInteraction(ctx context.Context, event *eventprocessor.InteractionEvent) error
}

// Options configures a Handler.
type Options struct {
	Version        string
	RequestTimeout time.Duration
	ItemCacheTTL   time.Duration
	ItemCacheSize  int64
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Version:        "dev",
		RequestTimeout: 10 * time.Second,
		ItemCacheTTL:   5 * time.Minute,
		ItemCacheSize:  1000,
	}
}

// eventSource identifies events published by the HTTP layer.
const eventSource = "api"

// Handler serves the HTTP API.
type Handler struct {
	store     Store
	engine    Recommender
	publisher InteractionPublisher // optional
	itemCache *ristretto.Cache[int, recommend.ItemCard]
	opts      Options
	startTime time.Time
}

// NewHandler creates a handler. publisher may be nil, in which case
// interactions are stored without publishing events.
func NewHandler(store Store, engine Recommender, publisher InteractionPublisher, opts Options) (*Handler, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("recommender is required")
	}
	defaults := DefaultOptions()
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaults.RequestTimeout
	}
	if opts.ItemCacheSize <= 0 {
		opts.ItemCacheSize = defaults.ItemCacheSize
	}
	if opts.Version == "" {
		opts.Version = defaults.Version
	}

	cache, err := ristretto.NewCache(&ristretto.Config[int, recommend.ItemCard]{
		NumCounters: opts.ItemCacheSize * 10,
		MaxCost:     opts.ItemCacheSize,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create item cache: %w", err)
	}

	return &Handler{
		store:     store,
		engine:    engine,
		publisher: publisher,
		itemCache: cache,
		opts:      opts,
		startTime: time.Now(),
	}, nil
}

// Close releases the item cache.
func (h *Handler) Close() {
	h.itemCache.Close()
}
