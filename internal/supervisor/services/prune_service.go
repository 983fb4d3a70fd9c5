// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ModelPruner drops old fitted models. Satisfied by *storage.Store.
type ModelPruner interface {
	Prune(ctx context.Context, keep int) (int, error)
}

// ModelPruneService keeps the persisted model store bounded. Every
// snapshot change produces a new fingerprint, so without pruning the store
// grows with the interaction log.
type ModelPruneService struct {
	pruner   ModelPruner
	keep     int
	interval time.Duration
	logger   zerolog.Logger
}

// NewModelPruneService creates the service. A non-positive interval means
// one hour.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewModelPruneService(pruner ModelPruner, keep int, interval time.Duration, logger zerolog.Logger) *ModelPruneService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ModelPruneService{
		pruner:   pruner,
		keep:     keep,
		interval: interval,
		logger:   logger.With().Str("service", "model-prune").Logger(),
	}
}

// Serve implements suture.Service. It prunes once at start and then on
// every tick.
func (s *ModelPruneService) Serve(ctx context.Context) error {
	s.pruneOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.pruneOnce(ctx)
		}
	}
}

func (s *ModelPruneService) pruneOnce(ctx context.Context) {
	removed, err := s.pruner.Prune(ctx, s.keep)
	if err != nil {
		s.logger.Warn().Err(err).Msg("model prune failed")
		return
	}
	if removed > 0 {
		s.logger.Info().Int("removed", removed).Int("kept", s.keep).Msg("pruned stored models")
	}
}

// String implements fmt.Stringer for suture logging.
func (s *ModelPruneService) String() string {
	return "model-prune"
}
