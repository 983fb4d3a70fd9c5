// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tomtom215/cashpick/internal/logging"
)

// Export formats.
const (
	ExportFormatParquet = "parquet"
	ExportFormatCSV     = "csv"
)

// exportTables lists the tables written by ExportSnapshot and their ordering.
var exportTables = []struct {
	name    string
	orderBy string
}{
	{"users", "user_id"},
	{"items", "item_id"},
	{"interactions", "created_at, id"},
}

// ExportResult describes a completed export.
type ExportResult struct {
	Dir       string            `json:"dir"`
	Format    string            `json:"format"`
	Files     map[string]string `json:"files"`
	Rows      map[string]int64  `json:"rows"`
	CreatedAt time.Time         `json:"created_at"`
}

// ExportSnapshot writes every table to a new timestamped directory under
// baseDir. All tables are copied inside one transaction.
func (db *DB) ExportSnapshot(ctx context.Context, baseDir, format string) (*ExportResult, error) {
	var options, ext string
	switch format {
	case ExportFormatParquet:
		options, ext = "(FORMAT PARQUET, COMPRESSION 'ZSTD')", ".parquet"
	case ExportFormatCSV:
		options, ext = "(FORMAT CSV, HEADER)", ".csv"
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	now := time.Now().UTC()
	dir := filepath.Join(baseDir, now.Format("20060102T150405.000000000Z"))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin export: %w", err)
	}
	defer rollbackQuietly(tx)

	result := &ExportResult{
		Dir:       dir,
		Format:    format,
		Files:     make(map[string]string, len(exportTables)),
		Rows:      make(map[string]int64, len(exportTables)),
		CreatedAt: now,
	}

	for _, t := range exportTables {
		path := filepath.Join(dir, t.name+ext)
		query := fmt.Sprintf("COPY (SELECT * FROM %s ORDER BY %s) TO %s %s",
			t.name, t.orderBy, quoteLiteral(path), options)
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return nil, fmt.Errorf("export %s: %w", t.name, err)
		}

		var n int64
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.name).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", t.name, err)
		}
		result.Files[t.name] = path
		result.Rows[t.name] = n
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit export: %w", err)
	}

	logging.Info().
		Str("dir", dir).
		Str("format", format).
		Int64("interactions", result.Rows["interactions"]).
		Msg("Exported snapshot")
	return result, nil
}
