// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/cashpick/internal/logging"
)

// Timestamps are plain TIMESTAMP (UTC) set by the application. DuckDB can
// fail WAL replay of TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP columns.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id BIGINT PRIMARY KEY,
		age INTEGER NOT NULL DEFAULT 0,
		sex VARCHAR NOT NULL DEFAULT '',
		categories VARCHAR NOT NULL DEFAULT '',
		kids_flag BOOLEAN NOT NULL DEFAULT FALSE,
		pets_flag BOOLEAN NOT NULL DEFAULT FALSE,
		last_item_id INTEGER NOT NULL DEFAULT -1,
		last_item_acknowledged BOOLEAN NOT NULL DEFAULT FALSE,
		last_message_id BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		item_id INTEGER PRIMARY KEY,
		category VARCHAR NOT NULL DEFAULT '',
		brand VARCHAR NOT NULL DEFAULT '',
		cashback_percent DOUBLE NOT NULL DEFAULT 0,
		first_time BOOLEAN NOT NULL DEFAULT FALSE,
		text_info VARCHAR NOT NULL DEFAULT '',
		days_left INTEGER NOT NULL DEFAULT 0,
		img_url VARCHAR NOT NULL DEFAULT ''
	)`,
	`CREATE SEQUENCE IF NOT EXISTS interactions_seq START 1`,
	`CREATE TABLE IF NOT EXISTS interactions (
		id BIGINT PRIMARY KEY DEFAULT nextval('interactions_seq'),
		user_id BIGINT NOT NULL,
		item_id INTEGER NOT NULL,
		feedback TINYINT NOT NULL CHECK (feedback IN (0, 1)),
		created_at TIMESTAMP NOT NULL
	)`,
}

// createTables creates the base schema.
func (db *DB) createTables(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Migration represents a versioned database migration.
type Migration struct {
	Version     int
	Name        string
	Description string
	SQL         string
	AppliedAt   time.Time
}

const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name VARCHAR NOT NULL,
	description VARCHAR,
	applied_at TIMESTAMP NOT NULL
)`

// migrations returns all versioned migrations in order. Append new
// migrations with the next version number; never edit applied ones.
// Only index append-only tables: DuckDB rejects upserts that touch
// indexed columns.
func migrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Name:        "interactions_user_index",
			Description: "Index interactions by user for history lookups",
			SQL:         `CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions (user_id)`,
		},
		{
			Version:     2,
			Name:        "interactions_created_index",
			Description: "Index interactions by time for ordered snapshot reads",
			SQL:         `CREATE INDEX IF NOT EXISTS idx_interactions_created ON interactions (created_at)`,
		},
	}
}

// runVersionedMigrations executes migrations that have not been applied yet.
func (db *DB) runVersionedMigrations(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, schemaMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := db.appliedVersions(ctx)
	if err != nil {
		return err
	}

	newMigrations := 0
	for _, m := range migrations() {
		if applied[m.Version] {
			continue
		}
		if _, err := db.conn.ExecContext(ctx, m.SQL); err != nil {
			return fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
		}
		_, err := db.conn.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name, description, applied_at) VALUES (?, ?, ?, ?)`,
			m.Version, m.Name, m.Description, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
		}
		newMigrations++
	}

	if newMigrations > 0 {
		logging.Info().Int("count", newMigrations).Msg("Applied database migrations")
	}
	return nil
}

func (db *DB) appliedVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer closeWithLog(rows, "migration rows")

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// MigrationHistory returns all applied migrations in order.
func (db *DB) MigrationHistory(ctx context.Context) ([]Migration, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT version, name, COALESCE(description, ''), applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query migration history: %w", err)
	}
	defer closeWithLog(rows, "migration rows")

	var history []Migration
	for rows.Next() {
		var m Migration
		if err := rows.Scan(&m.Version, &m.Name, &m.Description, &m.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration: %w", err)
		}
		history = append(history, m)
	}
	return history, rows.Err()
}
