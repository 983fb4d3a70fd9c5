// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package config

import (
	"time"

	"github.com/tomtom215/cashpick/internal/recommend"
)

// Config holds all application configuration
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Recommend RecommendConfig `koanf:"recommend"`
	Events    EventsConfig    `koanf:"events"`
	Snapshot  SnapshotConfig  `koanf:"snapshot"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // Number of DuckDB threads (0 = use NumCPU)

	// SeedCatalogCSV is an optional CSV file imported into the items table
	// on startup. Existing item ids are replaced.
	SeedCatalogCSV string `koanf:"seed_catalog_csv"`

	// SeedDemoData fills an empty database with synthetic users, items and
	// feedback on startup (local development and demos).
	SeedDemoData bool `koanf:"seed_demo_data"`
}

// RecommendConfig holds recommendation engine settings.
//
// Environment Variables:
//   - RECOMMEND_MIN_USERS: users required before EASE is used (default: 7)
//   - RECOMMEND_MIN_USER_INTERACTIONS: per-user rows required for EASE (default: 3)
//   - RECOMMEND_POOL_SIZE: cold-start pool size (default: 10)
//   - RECOMMEND_SEED: cold-start random seed, 0 = time based (default: 0)
//   - EASE_LAMBDA: L2 regularization (default: 0.01)
//   - EASE_WINDOW: recent items excluded from EASE results (default: 80)
//   - FIT_CACHE_ENABLED: reuse fits for unchanged snapshots (default: true)
//   - FIT_CACHE_PERSIST: keep fitted models in BadgerDB (default: false)
type RecommendConfig struct {
	CatalogFirstID      int     `koanf:"catalog_first_id"`
	CatalogSize         int     `koanf:"catalog_size"`
	MinUsers            int     `koanf:"min_users"`
	MinUserInteractions int     `koanf:"min_user_interactions"`
	PoolSize            int     `koanf:"pool_size"`
	FavoredWeight       float64 `koanf:"favored_weight"`
	BaseWeight          float64 `koanf:"base_weight"`
	KidsCategory        string  `koanf:"kids_category"`
	PetsCategory        string  `koanf:"pets_category"`
	Seed                int64   `koanf:"seed"`
	DefaultK            int     `koanf:"default_k"`
	MaxK                int     `koanf:"max_k"`

	EASE     EASEConfig     `koanf:"ease"`
	FitCache FitCacheConfig `koanf:"fit_cache"`
}

// EASEConfig holds EASE model settings.
type EASEConfig struct {
	Lambda float64 `koanf:"lambda"`
	Window int     `koanf:"window"`
}

// FitCacheConfig controls reuse of fitted models.
type FitCacheConfig struct {
	Enabled bool `koanf:"enabled"`

	// Persist stores fitted models in BadgerDB at Path so restarts reuse them.
	Persist bool          `koanf:"persist"`
	Path    string        `koanf:"path"`
	TTL     time.Duration `koanf:"ttl"`
	Keep    int           `koanf:"keep"` // Models kept after pruning
}

// EngineConfig converts the flat configuration into the engine's config.
func (r *RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Catalog: recommend.CatalogConfig{
			FirstID: r.CatalogFirstID,
			Size:    r.CatalogSize,
		},
		Routing: recommend.RoutingConfig{
			MinUsers:            r.MinUsers,
			MinUserInteractions: r.MinUserInteractions,
		},
		ColdStart: recommend.ColdStartConfig{
			PoolSize:      r.PoolSize,
			FavoredWeight: r.FavoredWeight,
			BaseWeight:    r.BaseWeight,
			KidsCategory:  r.KidsCategory,
			PetsCategory:  r.PetsCategory,
		},
		EASE: recommend.EASEConfig{
			Lambda: r.EASE.Lambda,
			Window: r.EASE.Window,
		},
		Limits: recommend.LimitsConfig{
			DefaultK: r.DefaultK,
			MaxK:     r.MaxK,
		},
		FitCache: recommend.FitCacheConfig{
			Enabled: r.FitCache.Enabled,
		},
		Seed: r.Seed,
	}
}

// EventsConfig holds event bus settings.
//
// Environment Variables:
//   - EVENTS_BACKEND: memory, nats or embedded (default: memory)
//   - NATS_URL: NATS server URL (required for nats backend)
//   - NATS_EMBEDDED_HOST, NATS_EMBEDDED_PORT: listener for the embedded backend
//   - EVENTS_TOPIC: topic for recorded interactions (default: interaction.recorded)
type EventsConfig struct {
	// Backend selects the pub/sub implementation: "memory" (watermill
	// gochannel), "nats", or "embedded" (nats against an in-process server).
	Backend string `koanf:"backend"`

	NATSURL string `koanf:"nats_url"`
	Topic   string `koanf:"topic"`

	EmbeddedHost string `koanf:"embedded_host"`
	EmbeddedPort int    `koanf:"embedded_port"` // -1 picks a random port

	// QueueGroup load balances consumers across replicas (nats only).
	// Leave empty so every replica sees every invalidation.
	QueueGroup string `koanf:"queue_group"`

	// BreakerMaxFailures is the consecutive publish failures that open the circuit.
	BreakerMaxFailures uint32        `koanf:"breaker_max_failures"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
}

// SnapshotConfig holds periodic table export settings.
type SnapshotConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
	Dir      string        `koanf:"dir"`
	Format   string        `koanf:"format"` // parquet or csv
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           int           `koanf:"port"`
	Host           string        `koanf:"host"`
	Timeout        time.Duration `koanf:"timeout"`
	RequestTimeout time.Duration `koanf:"request_timeout"` // Upper bound for a single recommend call
	ItemCacheTTL   time.Duration `koanf:"item_cache_ttl"`
	ItemCacheSize  int64         `koanf:"item_cache_size"` // Max cached item cards
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from all sources with the following precedence
// (highest to lowest):
//  1. Environment variables
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Built-in defaults
func Load() (*Config, error) {
	return LoadWithKoanf()
}
