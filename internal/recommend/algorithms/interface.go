// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package algorithms

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/cashpick/internal/recommend"
)

// BaseAlgorithm provides common bookkeeping for fitted models.
type BaseAlgorithm struct {
	name      string
	fitted    bool
	version   int
	lastFitAt time.Time
	mu        sync.RWMutex
}

// NewBaseAlgorithm creates a new base algorithm with the given name.
func NewBaseAlgorithm(name string) BaseAlgorithm {
	return BaseAlgorithm{
		name: name,
	}
}

// Name returns the algorithm identifier.
func (b *BaseAlgorithm) Name() string {
	return b.name
}

// IsFitted returns whether the model has been fitted.
func (b *BaseAlgorithm) IsFitted() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fitted
}

// Version returns the number of successful fits.
func (b *BaseAlgorithm) Version() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// LastFitAt returns when the model was last fitted.
func (b *BaseAlgorithm) LastFitAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastFitAt
}

// markFitted updates the fitted state.
// Must be called while holding the fit lock.
func (b *BaseAlgorithm) markFitted() {
	b.fitted = true
	b.version++
	b.lastFitAt = time.Now()
}

func (b *BaseAlgorithm) acquireFitLock()   { b.mu.Lock() }
func (b *BaseAlgorithm) releaseFitLock()   { b.mu.Unlock() }
func (b *BaseAlgorithm) acquireScoreLock() { b.mu.RLock() }
func (b *BaseAlgorithm) releaseScoreLock() { b.mu.RUnlock() }

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Ensure strategies implement the engine interfaces.
var (
	_ recommend.SimilarityModel = (*EASE)(nil)
	_ recommend.ColdStarter     = (*ColdStart)(nil)
)
