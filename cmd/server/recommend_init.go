// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package main

import (
	"fmt"
	"time"

	"github.com/tomtom215/cashpick/internal/config"
	"github.com/tomtom215/cashpick/internal/logging"
	"github.com/tomtom215/cashpick/internal/recommend"
	"github.com/tomtom215/cashpick/internal/recommend/algorithms"
	"github.com/tomtom215/cashpick/internal/recommend/storage"
	"github.com/tomtom215/cashpick/internal/supervisor"
	"github.com/tomtom215/cashpick/internal/supervisor/services"
)

// modelPruneInterval is how often the persisted model store is trimmed.
const modelPruneInterval = time.Hour

// RecommendComponents holds the engine and its optional model store.
type RecommendComponents struct {
	Engine *recommend.Engine
	Store  *storage.Store // nil unless FIT_CACHE_PERSIST=true
}

// Close releases the model store.
func (rc *RecommendComponents) Close() {
	if rc.Store == nil {
		return
	}
	if err := rc.Store.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing model store")
	}
}

// initRecommend builds the engine: snapshots come from src, new users go
// through the weighted sampler and everyone else through EASE.
func initRecommend(cfg *config.Config, src recommend.SnapshotSource, tree *supervisor.SupervisorTree) (*RecommendComponents, error) {
	logger := logging.WithComponent("recommend")
	engineCfg := cfg.Recommend.EngineConfig()

	engine, err := recommend.NewEngine(engineCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	engine.SetSnapshotSource(src)
	engine.SetColdStart(algorithms.NewColdStart(engineCfg.ColdStart, algorithms.NewSource(engineCfg.Seed)))
	engine.SetModelFactory(func() recommend.SimilarityModel {
		return algorithms.NewEASE(engineCfg.EASE, engine.Catalog())
	})

	rc := &RecommendComponents{Engine: engine}

	fc := cfg.Recommend.FitCache
	if fc.Enabled && fc.Persist {
		store, err := storage.Open(storage.Options{Path: fc.Path, TTL: fc.TTL})
		if err != nil {
			return nil, err
		}
		engine.SetModelStore(store)
		rc.Store = store
		tree.AddDataService(services.NewModelPruneService(store, fc.Keep, modelPruneInterval, logger))
		logger.Info().Str("path", fc.Path).Int("keep", fc.Keep).Msg("Persistent model store enabled")
	}

	logger.Info().
		Int("catalog_first_id", engineCfg.Catalog.FirstID).
		Int("catalog_size", engineCfg.Catalog.Size).
		Int("min_users", engineCfg.Routing.MinUsers).
		Int("min_user_interactions", engineCfg.Routing.MinUserInteractions).
		Float64("ease_lambda", engineCfg.EASE.Lambda).
		Bool("fit_cache", engineCfg.FitCache.Enabled).
		Msg("Recommendation engine initialized")

	return rc, nil
}
