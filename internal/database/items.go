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
	"os"
	"strings"

	"github.com/tomtom215/cashpick/internal/logging"
	"github.com/tomtom215/cashpick/internal/recommend"
)

const itemColumns = `item_id, category, brand, cashback_percent, first_time, text_info, days_left, img_url`

func scanItem(s rowScanner) (recommend.Item, error) {
	var it recommend.Item
	err := s.Scan(&it.ID, &it.Category, &it.Brand, &it.CashbackPercent, &it.FirstTime,
		&it.Text, &it.DaysLeft, &it.ImageURL)
	return it, err
}

// GetItem returns the catalog entry for itemID or recommend.ErrItemNotFound.
func (db *DB) GetItem(ctx context.Context, itemID int) (*recommend.Item, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE item_id = ?`, itemID)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", recommend.ErrItemNotFound, itemID)
	}
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", itemID, err)
	}
	return &it, nil
}

// UpsertItem inserts or replaces a catalog entry.
func (db *DB) UpsertItem(ctx context.Context, it *recommend.Item) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx, `INSERT OR REPLACE INTO items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.Category, it.Brand, it.CashbackPercent, it.FirstTime, it.Text, it.DaysLeft, it.ImageURL)
	if err != nil {
		return fmt.Errorf("upsert item %d: %w", it.ID, err)
	}
	return nil
}

// CountItems returns the number of catalog entries.
func (db *DB) CountItems(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// ImportCatalogCSV loads items from a CSV file whose header names every item
// column. Empty optional fields take zero values. Rows with an existing
// item_id replace the old entry.
func (db *DB) ImportCatalogCSV(ctx context.Context, path string) (int64, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("catalog csv: %w", err)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	// all_varchar keeps DuckDB's sniffer from guessing types per file;
	// the casts below are the single source of truth.
	query := `
		INSERT OR REPLACE INTO items (` + itemColumns + `)
		SELECT
			CAST(item_id AS INTEGER),
			COALESCE(category, ''),
			COALESCE(brand, ''),
			CAST(COALESCE(NULLIF(cashback_percent, ''), '0') AS DOUBLE),
			CAST(COALESCE(NULLIF(first_time, ''), 'false') AS BOOLEAN),
			COALESCE(text_info, ''),
			CAST(COALESCE(NULLIF(days_left, ''), '0') AS INTEGER),
			COALESCE(img_url, '')
		FROM read_csv(` + quoteLiteral(path) + `, header = true, all_varchar = true)`

	res, err := db.conn.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("import catalog %s: %w", path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("import catalog %s: %w", path, err)
	}

	logging.Info().Str("path", path).Int64("rows", n).Msg("Imported catalog")
	return n, nil
}

// quoteLiteral renders s as a SQL string literal. DuckDB does not accept
// bound parameters for file paths in COPY or table functions.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
