// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cashpick/internal/database"
	"github.com/tomtom215/cashpick/internal/metrics"
)

// SnapshotExporter writes the tables to files. Satisfied by *database.DB.
type SnapshotExporter interface {
	ExportSnapshot(ctx context.Context, baseDir, format string) (*database.ExportResult, error)
}

// SnapshotServiceConfig configures periodic exports.
type SnapshotServiceConfig struct {
	Interval time.Duration
	Dir      string
	Format   string // parquet or csv

	// ExportTimeout bounds a single export. Zero means Interval.
	ExportTimeout time.Duration
}

// SnapshotService exports the users, items and interactions tables on a
// fixed interval.
type SnapshotService struct {
	exporter SnapshotExporter
	config   SnapshotServiceConfig
	logger   zerolog.Logger
}

// NewSnapshotService creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSnapshotService(exporter SnapshotExporter, cfg SnapshotServiceConfig, logger zerolog.Logger) *SnapshotService {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.ExportTimeout <= 0 {
		cfg.ExportTimeout = cfg.Interval
	}
	if cfg.Format == "" {
		cfg.Format = database.ExportFormatParquet
	}
	return &SnapshotService{
		exporter: exporter,
		config:   cfg,
		logger:   logger.With().Str("service", "snapshot").Logger(),
	}
}

// Serve implements suture.Service. The first export runs one interval
// after start.
func (s *SnapshotService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Str("dir", s.config.Dir).
		Str("format", s.config.Format).
		Msg("snapshot service starting")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_ = s.ExportOnce(ctx) //nolint:errcheck // logged and counted in ExportOnce
		}
	}
}

// ExportOnce runs a single export and records its outcome.
func (s *SnapshotService) ExportOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ExportTimeout)
	defer cancel()

	start := time.Now()
	res, err := s.exporter.ExportSnapshot(ctx, s.config.Dir, s.config.Format)
	dur := time.Since(start)

	var rows map[string]int64
	if res != nil {
		rows = res.Rows
	}
	metrics.RecordSnapshotExport(s.config.Format, dur, rows, err)

	if err != nil {
		s.logger.Error().Err(err).Dur("duration", dur).Msg("snapshot export failed")
		return err
	}
	s.logger.Info().
		Str("dir", res.Dir).
		Interface("rows", res.Rows).
		Dur("duration", dur).
		Msg("snapshot exported")
	return nil
}

// String implements fmt.Stringer for suture logging.
func (s *SnapshotService) String() string {
	return "snapshot-service"
}
