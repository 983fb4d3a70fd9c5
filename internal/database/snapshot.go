// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/cashpick/internal/metrics"
	"github.com/tomtom215/cashpick/internal/recommend"
)

// Snapshot reads users, items and interactions inside one transaction so the
// three slices describe the same point in time. Interactions are returned in
// log order.
func (db *DB) Snapshot(ctx context.Context) (snap *recommend.Snapshot, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("snapshot", time.Since(start), err) }()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	// Read-only: the transaction is always rolled back.
	defer rollbackQuietly(tx)

	snap = &recommend.Snapshot{}

	if snap.Users, err = readUsers(ctx, tx); err != nil {
		return nil, err
	}
	if snap.Items, err = readItems(ctx, tx); err != nil {
		return nil, err
	}
	if snap.Interactions, err = readInteractions(ctx, tx); err != nil {
		return nil, err
	}
	return snap, nil
}

func readUsers(ctx context.Context, tx *sql.Tx) ([]recommend.User, error) {
	rows, err := tx.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("snapshot users: %w", err)
	}
	defer closeQuietly(rows)

	users := []recommend.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func readItems(ctx context.Context, tx *sql.Tx) ([]recommend.Item, error) {
	rows, err := tx.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("snapshot items: %w", err)
	}
	defer closeQuietly(rows)

	items := []recommend.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func readInteractions(ctx context.Context, tx *sql.Tx) ([]recommend.Interaction, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT user_id, item_id, feedback, created_at
		FROM interactions
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("snapshot interactions: %w", err)
	}
	defer closeQuietly(rows)

	out := []recommend.Interaction{}
	for rows.Next() {
		var in recommend.Interaction
		var feedback int8
		if err := rows.Scan(&in.UserID, &in.ItemID, &feedback, &in.Timestamp); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		in.Feedback = recommend.Feedback(feedback)
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return out, nil
}
