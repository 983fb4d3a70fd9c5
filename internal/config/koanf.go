// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/cashpick/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cashpick/config.yaml",
	"/etc/cashpick/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	engine := recommend.DefaultConfig()

	return &Config{
		Database: DatabaseConfig{
			Path:      "/data/cashpick.duckdb",
			MaxMemory: "1GB",
			Threads:   0,
		},
		Recommend: RecommendConfig{
			CatalogFirstID:      engine.Catalog.FirstID,
			CatalogSize:         engine.Catalog.Size,
			MinUsers:            engine.Routing.MinUsers,
			MinUserInteractions: engine.Routing.MinUserInteractions,
			PoolSize:            engine.ColdStart.PoolSize,
			FavoredWeight:       engine.ColdStart.FavoredWeight,
			BaseWeight:          engine.ColdStart.BaseWeight,
			KidsCategory:        engine.ColdStart.KidsCategory,
			PetsCategory:        engine.ColdStart.PetsCategory,
			Seed:                0,
			DefaultK:            engine.Limits.DefaultK,
			MaxK:                engine.Limits.MaxK,
			EASE: EASEConfig{
				Lambda: engine.EASE.Lambda,
				Window: engine.EASE.Window,
			},
			FitCache: FitCacheConfig{
				Enabled: engine.FitCache.Enabled,
				Persist: false,
				Path:    "/data/models",
				TTL:     7 * 24 * time.Hour,
				Keep:    5,
			},
		},
		Events: EventsConfig{
			Backend:            "memory",
			NATSURL:            "nats://127.0.0.1:4222",
			EmbeddedHost:       "127.0.0.1",
			EmbeddedPort:       4222,
			Topic:              "interaction.recorded",
			QueueGroup:         "",
			BreakerMaxFailures: 5,
			BreakerTimeout:     30 * time.Second,
		},
		Snapshot: SnapshotConfig{
			Enabled:  false,
			Interval: time.Hour,
			Dir:      "/data/snapshots",
			Format:   "parquet",
		},
		Server: ServerConfig{
			Port:           3857,
			Host:           "0.0.0.0",
			Timeout:        30 * time.Second,
			RequestTimeout: 10 * time.Second,
			ItemCacheTTL:   5 * time.Minute,
			ItemCacheSize:  1000,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Built-in defaults (lowest priority)
//  2. Config file (optional, YAML)
//  3. Environment variables (highest priority)
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"seed_catalog_csv":  "database.seed_catalog_csv",

	// Recommendation engine
	"catalog_first_id":                "recommend.catalog_first_id",
	"catalog_size":                    "recommend.catalog_size",
	"recommend_min_users":             "recommend.min_users",
	"recommend_min_user_interactions": "recommend.min_user_interactions",
	"recommend_pool_size":             "recommend.pool_size",
	"recommend_favored_weight":        "recommend.favored_weight",
	"recommend_base_weight":           "recommend.base_weight",
	"recommend_kids_category":         "recommend.kids_category",
	"recommend_pets_category":         "recommend.pets_category",
	"recommend_seed":                  "recommend.seed",
	"recommend_default_k":             "recommend.default_k",
	"recommend_max_k":                 "recommend.max_k",
	"ease_lambda":                     "recommend.ease.lambda",
	"ease_window":                     "recommend.ease.window",
	"fit_cache_enabled":               "recommend.fit_cache.enabled",
	"fit_cache_persist":               "recommend.fit_cache.persist",
	"fit_cache_path":                  "recommend.fit_cache.path",
	"fit_cache_ttl":                   "recommend.fit_cache.ttl",
	"fit_cache_keep":                  "recommend.fit_cache.keep",

	// Event bus
	"events_backend":              "events.backend",
	"nats_url":                    "events.nats_url",
	"events_topic":                "events.topic",
	"nats_queue_group":            "events.queue_group",
	"events_breaker_max_failures": "events.breaker_max_failures",
	"events_breaker_timeout":      "events.breaker_timeout",

	// Snapshots
	"snapshot_enabled":  "snapshot.enabled",
	"snapshot_interval": "snapshot.interval",
	"snapshot_dir":      "snapshot.dir",
	"snapshot_format":   "snapshot.format",

	// Server
	"http_host":       "server.host",
	"http_port":       "server.port",
	"http_timeout":    "server.timeout",
	"request_timeout": "server.request_timeout",
	"item_cache_ttl":  "server.item_cache_ttl",
	"item_cache_size": "server.item_cache_size",

	// Security
	"cors_origins":       "security.cors_origins",
	"rate_limit_reqs":    "security.rate_limit_reqs",
	"rate_limit_window":  "security.rate_limit_window",
	"disable_rate_limit": "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - DUCKDB_PATH -> database.path
//   - EASE_LAMBDA -> recommend.ease.lambda
//   - HTTP_PORT -> server.port
//
// Unmapped keys return an empty string so koanf skips them.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
