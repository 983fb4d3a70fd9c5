// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/cashpick/internal/recommend"
)

const userColumns = `user_id, age, sex, categories, kids_flag, pets_flag,
	last_item_id, last_item_acknowledged, last_message_id, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (recommend.User, error) {
	var u recommend.User
	err := s.Scan(&u.ID, &u.Age, &u.Sex, &u.Categories, &u.KidsFlag, &u.PetsFlag,
		&u.LastItemID, &u.LastItemAcknowledged, &u.LastMessageID, &u.CreatedAt)
	return u, err
}

// GetUser returns the profile for userID or recommend.ErrUserNotFound.
func (db *DB) GetUser(ctx context.Context, userID int64) (*recommend.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", recommend.ErrUserNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	return &u, nil
}

// UpsertUser inserts a user or updates the profile fields of an existing one.
// Bookkeeping fields (last item, acknowledgement, last message) and
// created_at are only written on insert.
func (db *DB) UpsertUser(ctx context.Context, u *recommend.User) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			age = EXCLUDED.age,
			sex = EXCLUDED.sex,
			categories = EXCLUDED.categories,
			kids_flag = EXCLUDED.kids_flag,
			pets_flag = EXCLUDED.pets_flag`,
		u.ID, u.Age, u.Sex, u.Categories, u.KidsFlag, u.PetsFlag,
		u.LastItemID, u.LastItemAcknowledged, u.LastMessageID, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert user %d: %w", u.ID, err)
	}
	return nil
}

// userFieldColumns whitelists the columns UpdateUserField may write.
var userFieldColumns = map[recommend.UserField]string{
	recommend.FieldAge:                  "age",
	recommend.FieldSex:                  "sex",
	recommend.FieldCategories:           "categories",
	recommend.FieldKidsFlag:             "kids_flag",
	recommend.FieldPetsFlag:             "pets_flag",
	recommend.FieldLastItemID:           "last_item_id",
	recommend.FieldLastItemAcknowledged: "last_item_acknowledged",
	recommend.FieldLastMessageID:        "last_message_id",
}

// UpdateUserField sets a single named profile field.
func (db *DB) UpdateUserField(ctx context.Context, userID int64, field recommend.UserField, value any) error {
	column, ok := userFieldColumns[field]
	if !ok {
		return fmt.Errorf("%w: unknown field %q", recommend.ErrInvalidField, field)
	}
	v, err := coerceUserField(field, value)
	if err != nil {
		return err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	// column comes from the whitelist above.
	res, err := db.conn.ExecContext(ctx, `UPDATE users SET `+column+` = ? WHERE user_id = ?`, v, userID)
	if err != nil {
		return fmt.Errorf("update user %d %s: %w", userID, field, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user %d %s: %w", userID, field, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", recommend.ErrUserNotFound, userID)
	}
	return nil
}

// coerceUserField converts a loosely typed value (JSON numbers arrive as
// float64, chat input as strings) into the column's Go type.
func coerceUserField(field recommend.UserField, value any) (any, error) {
	invalid := func() error {
		return fmt.Errorf("%w: %s cannot be set to %v (%T)", recommend.ErrInvalidField, field, value, value)
	}

	switch field {
	case recommend.FieldSex, recommend.FieldCategories:
		s, ok := value.(string)
		if !ok {
			return nil, invalid()
		}
		return strings.TrimSpace(s), nil

	case recommend.FieldKidsFlag, recommend.FieldPetsFlag, recommend.FieldLastItemAcknowledged:
		b, ok := toBool(value)
		if !ok {
			return nil, invalid()
		}
		return b, nil

	case recommend.FieldAge:
		n, ok := toInt64(value)
		if !ok || n < 0 || n > math.MaxInt32 {
			return nil, invalid()
		}
		return int32(n), nil

	case recommend.FieldLastItemID:
		n, ok := toInt64(value)
		if !ok || n < int64(recommend.NoRecommendation) || n > math.MaxInt32 {
			return nil, invalid()
		}
		return int32(n), nil

	case recommend.FieldLastMessageID:
		n, ok := toInt64(value)
		if !ok {
			return nil, invalid()
		}
		return n, nil
	}
	return nil, invalid()
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.Abs(n) > 1<<53 {
			return 0, false
		}
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	}
	return 0, false
}

// toBool accepts booleans, 0/1, and yes/no strings in English or Russian.
func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "да", "yes", "y":
			return true, true
		case "нет", "no", "n":
			return false, true
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return parsed, err == nil
	}
	if n, ok := toInt64(v); ok && (n == 0 || n == 1) {
		return n == 1, true
	}
	return false, false
}

// CountUsers returns the number of registered users.
func (db *DB) CountUsers(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
