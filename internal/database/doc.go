// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

// Package database is the DuckDB-backed repository for users, items and
// interactions.
//
// # Overview
//
// DB implements recommend.Repository. The engine reads through Snapshot,
// which loads all three tables inside a single transaction so a fit never
// sees a half-applied write. The HTTP layer uses the point lookups and the
// write operations.
//
// Files:
//   - database.go: connection lifecycle, pool settings, checkpointing
//   - schema.go: table creation and versioned migrations
//   - users.go: profile reads, upserts and single-field updates
//   - items.go: catalog reads, upserts and CSV import
//   - interactions.go: the append-only feedback log
//   - snapshot.go: consistent reads for the engine
//   - export.go: Parquet/CSV table exports via COPY
//   - seed.go: synthetic demo data
//
// # Schema
//
// The interactions table has no foreign keys. AppendInteraction checks that
// the user and item exist inside its transaction instead.
//
// DuckDB rejects ON CONFLICT updates that touch indexed columns, so only the
// append-only interactions table carries secondary indexes.
//
// # Thread Safety
//
// DB is safe for concurrent use. database/sql manages the connection pool.
package database
