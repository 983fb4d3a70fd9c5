// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package recommend

import (
	"fmt"
)

// Default catalog categories implied by the household flags.
const (
	DefaultKidsCategory = "Товары для детей"
	DefaultPetsCategory = "Товары для животных"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Catalog declares the fixed item id range.
	Catalog CatalogConfig `json:"catalog"`

	// Routing decides between cold start and EASE.
	Routing RoutingConfig `json:"routing"`

	// ColdStart contains parameters for the weighted sampler.
	ColdStart ColdStartConfig `json:"cold_start"`

	// EASE contains parameters for the EASE algorithm.
	EASE EASEConfig `json:"ease"`

	// Limits contains request limits.
	Limits LimitsConfig `json:"limits"`

	// FitCache controls memoization of fitted models.
	FitCache FitCacheConfig `json:"fit_cache"`

	// Seed seeds the cold-start random source. Zero means a time-based seed.
	Seed int64 `json:"seed"`
}

// CatalogConfig declares the item id range first..first+size-1.
type CatalogConfig struct {
	FirstID int `json:"first_id"`
	// Default: 116.
	Size int `json:"size"`
}

// RoutingConfig holds the cold-start thresholds.
type RoutingConfig struct {
	// MinUsers is the user count below which every request is cold.
	// Default: 7.
	MinUsers int `json:"min_users"`

	// MinUserInteractions is the per-user interaction count below which
	// the user is cold. Duplicates count.
	// Default: 3.
	MinUserInteractions int `json:"min_user_interactions"`
}

// ColdStartConfig contains parameters for the category-weighted sampler.
type ColdStartConfig struct {
	// PoolSize is the number of items drawn before filtering seen items.
	// Default: 10.
	PoolSize int `json:"pool_size"`

	// FavoredWeight is the weight for items in a favorite category.
	// Default: 2.
	FavoredWeight float64 `json:"favored_weight"`

	// BaseWeight is the weight for every other item.
	// Default: 1.
	BaseWeight float64 `json:"base_weight"`

	KidsCategory string `json:"kids_category"`
	PetsCategory string `json:"pets_category"`
}

// EASEConfig contains parameters for the EASE algorithm.
type EASEConfig struct {
	// Lambda is the L2 regularization added to the Gram diagonal.
	// Default: 0.01.
	Lambda float64 `json:"lambda"`

	// Window is the number of most recent distinct items excluded from scoring.
	// Default: 80.
	Window int `json:"window"`
}

// LimitsConfig contains request limits.
type LimitsConfig struct {
	// Default: 1.
	DefaultK int `json:"default_k"`
	// Default: 10. Must not exceed the cold-start pool size.
	MaxK int `json:"max_k"`
}

// FitCacheConfig controls memoization of fitted models.
type FitCacheConfig struct {
	// Enabled keeps the last fitted model keyed by snapshot fingerprint.
	// When disabled every EASE request retrains.
	Enabled bool `json:"enabled"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			FirstID: 0,
			Size:    116,
		},
		Routing: RoutingConfig{
			MinUsers:            7,
			MinUserInteractions: 3,
		},
		ColdStart: ColdStartConfig{
			PoolSize:      10,
			FavoredWeight: 2,
			BaseWeight:    1,
			KidsCategory:  DefaultKidsCategory,
			PetsCategory:  DefaultPetsCategory,
		},
		EASE: EASEConfig{
			Lambda: 0.01,
			Window: 80,
		},
		Limits: LimitsConfig{
			DefaultK: 1,
			MaxK:     10,
		},
		FitCache: FitCacheConfig{
			Enabled: true,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.Catalog.Size < 1 {
		return fmt.Errorf("catalog.size must be positive, got %d", c.Catalog.Size)
	}
	if c.Catalog.FirstID < 0 {
		return fmt.Errorf("catalog.first_id must be non-negative, got %d", c.Catalog.FirstID)
	}

	if c.Routing.MinUsers < 0 {
		return fmt.Errorf("routing.min_users must be non-negative, got %d", c.Routing.MinUsers)
	}
	if c.Routing.MinUserInteractions < 0 {
		return fmt.Errorf("routing.min_user_interactions must be non-negative, got %d", c.Routing.MinUserInteractions)
	}

	if c.ColdStart.PoolSize < 1 {
		return fmt.Errorf("cold_start.pool_size must be positive, got %d", c.ColdStart.PoolSize)
	}
	if c.ColdStart.FavoredWeight <= 0 {
		return fmt.Errorf("cold_start.favored_weight must be positive, got %f", c.ColdStart.FavoredWeight)
	}
	if c.ColdStart.BaseWeight <= 0 {
		return fmt.Errorf("cold_start.base_weight must be positive, got %f", c.ColdStart.BaseWeight)
	}

	if c.EASE.Lambda < 0 {
		return fmt.Errorf("ease.lambda must be non-negative, got %f", c.EASE.Lambda)
	}
	if c.EASE.Window < 0 {
		return fmt.Errorf("ease.window must be non-negative, got %d", c.EASE.Window)
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Limits.MaxK > c.ColdStart.PoolSize {
		return fmt.Errorf("limits.max_k must be <= cold_start.pool_size, got %d > %d", c.Limits.MaxK, c.ColdStart.PoolSize)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	clone := *c
	return &clone
}
