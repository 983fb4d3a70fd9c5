// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

/*
Package main is the entry point for the Cashpick server.

Cashpick picks cashback offers to show chat-assistant users. New users get a
weighted random draw biased toward the categories they asked for; once enough
feedback exists the engine switches to an EASE item-item model fitted on the
whole interaction log.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("cashpick")
	├── DataSupervisor ("data-layer")
	│   ├── Snapshot exporter (optional, SNAPSHOT_ENABLED=true)
	│   └── Model pruner (optional, FIT_CACHE_PERSIST=true)
	├── MessagingSupervisor ("messaging-layer")
	│   └── Interaction event consumer (fit cache invalidation)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional YAML file and environment variables
 2. Logging: zerolog, JSON or console output
 3. Database: DuckDB with versioned migrations, optional catalog CSV import
 4. Recommendation engine: cold-start sampler, EASE factory, optional BadgerDB model store
 5. Event bus: Watermill over an in-process channel or NATS
 6. HTTP API: Chi router with CORS, rate limiting and Prometheus metrics
 7. Supervisor tree start and signal handling

# Demo Data

SEED_DEMO_DATA=true fills an empty database with a synthetic catalog, users
and feedback. A database that already holds users is left alone.

# Graceful Shutdown

SIGINT or SIGTERM cancels the root context. Suture stops every layer, the
HTTP server drains within its shutdown timeout, then the publisher, model
store and database are closed in that order.
*/
package main
