// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/cashpick/internal/recommend"
)

// ErrInvalidFeedback indicates a feedback value other than 0 or 1.
var ErrInvalidFeedback = errors.New("feedback must be 0 or 1")

// AppendInteraction records one feedback event. The user and the item must
// both exist. A zero Timestamp is set to the current time.
func (db *DB) AppendInteraction(ctx context.Context, in *recommend.Interaction) error {
	if !in.Feedback.Valid() {
		return fmt.Errorf("%w: got %d", ErrInvalidFeedback, in.Feedback)
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	var userExists, itemExists bool
	err = tx.QueryRowContext(ctx, `
		SELECT
			EXISTS (SELECT 1 FROM users WHERE user_id = ?),
			EXISTS (SELECT 1 FROM items WHERE item_id = ?)`,
		in.UserID, in.ItemID).Scan(&userExists, &itemExists)
	if err != nil {
		return fmt.Errorf("check interaction references: %w", err)
	}
	if !userExists {
		return fmt.Errorf("%w: %d", recommend.ErrUserNotFound, in.UserID)
	}
	if !itemExists {
		return fmt.Errorf("%w: %d", recommend.ErrItemNotFound, in.ItemID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO interactions (user_id, item_id, feedback, created_at)
		VALUES (?, ?, ?, ?)`,
		in.UserID, in.ItemID, int8(in.Feedback), in.Timestamp)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit interaction: %w", err)
	}
	return nil
}

// CountInteractions returns the total number of logged interactions.
func (db *DB) CountInteractions(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM interactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count interactions: %w", err)
	}
	return n, nil
}
