// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package algorithms

import (
	"math/rand"
	"sync"
	"time"

	"github.com/tomtom215/cashpick/internal/recommend"
)

// ColdStart recommends by sampling the catalog with category weights.
// Items in a favorite category get FavoredWeight, everything else BaseWeight.
//
// A pool of PoolSize distinct items is drawn without replacement, items the
// user already interacted with are dropped, and the first k survivors are
// returned in draw order. No per-user state is kept between calls.
type ColdStart struct {
	config recommend.ColdStartConfig

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource returns a math/rand source for seed. A zero seed uses the clock.
func NewSource(seed int64) rand.Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.NewSource(seed)
}

// NewColdStart creates a sampler drawing from src.
func NewColdStart(cfg recommend.ColdStartConfig, src rand.Source) *ColdStart {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 10
	}
	if cfg.FavoredWeight <= 0 {
		cfg.FavoredWeight = 2
	}
	if cfg.BaseWeight <= 0 {
		cfg.BaseWeight = 1
	}
	if cfg.KidsCategory == "" {
		cfg.KidsCategory = recommend.DefaultKidsCategory
	}
	if cfg.PetsCategory == "" {
		cfg.PetsCategory = recommend.DefaultPetsCategory
	}
	if src == nil {
		src = NewSource(0)
	}

	return &ColdStart{
		config: cfg,
		rng:    rand.New(src), //nolint:gosec // math/rand is fine for offer sampling
	}
}

// Name returns the strategy identifier.
func (c *ColdStart) Name() string {
	return recommend.StrategyColdStart.String()
}

// Weights returns the sampling probability of each item, aligned with items.
// The result sums to 1 for a non-empty catalog.
//
//nolint:gocritic // hugeParam: User is passed by value to match ColdStarter
func (c *ColdStart) Weights(user recommend.User, items []recommend.Item) []float64 {
	favorites := user.FavoriteCategories(c.config.KidsCategory, c.config.PetsCategory)

	weights := make([]float64, len(items))
	var total float64
	for i := range items {
		w := c.config.BaseWeight
		if _, ok := favorites[items[i].Category]; ok {
			w = c.config.FavoredWeight
		}
		weights[i] = w
		total += w
	}

	if total == 0 {
		return weights
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// Sample returns up to k unseen item ids for user. A k of zero or less
// returns every unseen item in the pool.
//
//nolint:gocritic // hugeParam: User is passed by value to match ColdStarter
func (c *ColdStart) Sample(user recommend.User, items []recommend.Item, interactions []recommend.Interaction, k int) []int {
	if len(items) == 0 {
		return []int{}
	}

	pool := c.drawPool(c.Weights(user, items), items)

	seen := make(map[int]struct{})
	for i := range interactions {
		if interactions[i].UserID == user.ID {
			seen[interactions[i].ItemID] = struct{}{}
		}
	}

	result := make([]int, 0, len(pool))
	for _, id := range pool {
		if _, ok := seen[id]; ok {
			continue
		}
		result = append(result, id)
		if k > 0 && len(result) == k {
			break
		}
	}
	return result
}

// drawPool draws min(PoolSize, len(items)) distinct ids. Each draw walks the
// cumulative weights of the items still in play and renormalizes afterwards.
func (c *ColdStart) drawPool(weights []float64, items []recommend.Item) []int {
	size := c.config.PoolSize
	if size > len(items) {
		size = len(items)
	}

	remaining := make([]float64, len(weights))
	copy(remaining, weights)
	var total float64
	for _, w := range remaining {
		total += w
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	pool := make([]int, 0, size)
	for len(pool) < size && total > 0 {
		r := c.rng.Float64() * total

		pick := -1
		var cum float64
		for i, w := range remaining {
			if w == 0 {
				continue
			}
			pick = i
			cum += w
			if r < cum {
				break
			}
		}
		if pick < 0 {
			break
		}

		pool = append(pool, items[pick].ID)
		total -= remaining[pick]
		remaining[pick] = 0
	}
	return pool
}
