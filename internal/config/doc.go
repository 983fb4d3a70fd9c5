// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

/*
Package config provides centralized configuration management for Cashpick.

Configuration is loaded with Koanf v2 in three layers, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/cashpick/config.yaml)
 3. Environment variables mapped through envMappings

# Configuration Structure

  - DatabaseConfig: DuckDB path, memory limit, threads, catalog seed CSV
  - RecommendConfig: routing thresholds, cold-start weights, EASE lambda and
    window, request limits, fit cache persistence
  - EventsConfig: event bus backend (memory or nats) and circuit breaker
  - SnapshotConfig: periodic table export
  - ServerConfig: HTTP listener, timeouts, item card cache
  - SecurityConfig: CORS and rate limiting
  - LoggingConfig: zerolog level, format, caller

# Environment Variables

Database:
  - DUCKDB_PATH: Database file path (default: /data/cashpick.duckdb)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
  - DUCKDB_THREADS: DuckDB threads, 0 = NumCPU (default: 0)
  - SEED_CATALOG_CSV: CSV file imported into the items table on startup

Recommendation engine:
  - CATALOG_FIRST_ID, CATALOG_SIZE: declared item id range (default: 0, 116)
  - RECOMMEND_MIN_USERS, RECOMMEND_MIN_USER_INTERACTIONS (default: 7, 3)
  - RECOMMEND_POOL_SIZE, RECOMMEND_FAVORED_WEIGHT, RECOMMEND_BASE_WEIGHT
  - RECOMMEND_KIDS_CATEGORY, RECOMMEND_PETS_CATEGORY
  - RECOMMEND_SEED, RECOMMEND_DEFAULT_K, RECOMMEND_MAX_K
  - EASE_LAMBDA, EASE_WINDOW (default: 0.01, 80)
  - FIT_CACHE_ENABLED, FIT_CACHE_PERSIST, FIT_CACHE_PATH, FIT_CACHE_TTL, FIT_CACHE_KEEP

Events:
  - EVENTS_BACKEND: memory, nats or embedded (default: memory)
  - NATS_URL, NATS_QUEUE_GROUP, EVENTS_TOPIC
  - NATS_EMBEDDED_HOST, NATS_EMBEDDED_PORT (default: 127.0.0.1, 4222)
  - EVENTS_BREAKER_MAX_FAILURES, EVENTS_BREAKER_TIMEOUT

Snapshots:
  - SNAPSHOT_ENABLED, SNAPSHOT_INTERVAL, SNAPSHOT_DIR, SNAPSHOT_FORMAT

Server and security:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, REQUEST_TIMEOUT
  - ITEM_CACHE_TTL, ITEM_CACHE_SIZE
  - CORS_ORIGINS (comma-separated), RATE_LIMIT_REQS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), logger)
*/
package config
