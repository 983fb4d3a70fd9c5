// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Note: This package has no dependencies on other internal packages.
// Strategies and persistence are injected through the interfaces in types.go.

// Engine routes each request to the cold-start sampler or the fitted
// similarity model. It is safe for concurrent use.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	catalog *CatalogIndex

	// Collaborators
	source    SnapshotSource
	coldStart ColdStarter
	factory   ModelFactory
	store     ModelStore
	depMu     sync.RWMutex

	// cycleMu serializes snapshot + fit + score cycles.
	cycleMu sync.Mutex

	// Fit memo, a single entry keyed by snapshot fingerprint.
	memoMu  sync.Mutex
	memo    SimilarityModel
	memoKey string

	// Fit status
	statusMu sync.RWMutex
	status   FitStatus

	// Counters
	requestCount   atomic.Int64
	coldStartCount atomic.Int64
	easeCount      atomic.Int64
	fitCacheHits   atomic.Int64
	fitCacheMisses atomic.Int64
	errorCount     atomic.Int64
}

// FitStatus describes the most recent model fit.
type FitStatus struct {
	LastFitAt         time.Time `json:"last_fit_at"`
	LastFitDurationMS int64     `json:"last_fit_duration_ms"`
	Fingerprint       string    `json:"fingerprint"`
	Interactions      int       `json:"interactions"`
	FitCount          int64     `json:"fit_count"`
	LastError         string    `json:"last_error,omitempty"`
}

// Stats contains engine counters.
type Stats struct {
	RequestCount   int64     `json:"request_count"`
	ColdStartCount int64     `json:"cold_start_count"`
	EASECount      int64     `json:"ease_count"`
	FitCacheHits   int64     `json:"fit_cache_hits"`
	FitCacheMisses int64     `json:"fit_cache_misses"`
	ErrorCount     int64     `json:"error_count"`
	Fit            FitStatus `json:"fit"`
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	catalog, err := NewCatalogIndex(cfg.Catalog.FirstID, cfg.Catalog.Size)
	if err != nil {
		return nil, fmt.Errorf("build catalog index: %w", err)
	}

	return &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		catalog: catalog,
	}, nil
}

// SetSnapshotSource sets the source of users, items and interactions.
func (e *Engine) SetSnapshotSource(src SnapshotSource) {
	e.depMu.Lock()
	defer e.depMu.Unlock()
	e.source = src
}

// SetColdStart sets the cold-start strategy.
func (e *Engine) SetColdStart(cs ColdStarter) {
	e.depMu.Lock()
	defer e.depMu.Unlock()
	e.coldStart = cs
}

// SetModelFactory sets the constructor for fresh similarity models.
func (e *Engine) SetModelFactory(f ModelFactory) {
	e.depMu.Lock()
	defer e.depMu.Unlock()
	e.factory = f
	if f != nil {
		e.logger.Info().Str("model", f().Name()).Msg("registered similarity model")
	}
}

// SetModelStore sets an optional persistent store for fitted models.
func (e *Engine) SetModelStore(s ModelStore) {
	e.depMu.Lock()
	defer e.depMu.Unlock()
	e.store = s
}

// Catalog returns the fixed catalog index.
func (e *Engine) Catalog() *CatalogIndex {
	return e.catalog
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

type deps struct {
	source    SnapshotSource
	coldStart ColdStarter
	factory   ModelFactory
	store     ModelStore
}

func (e *Engine) deps() deps {
	e.depMu.RLock()
	defer e.depMu.RUnlock()
	return deps{source: e.source, coldStart: e.coldStart, factory: e.factory, store: e.store}
}

// Recommend returns up to K item ids for the user.
// An empty Items list is a valid result meaning "nothing to recommend".
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req, err := e.prepareRequest(req)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Int64("user_id", req.UserID).
		Int("k", req.K).
		Logger()

	d := e.deps()
	if d.source == nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("snapshot source not set")
	}
	if d.coldStart == nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("cold start strategy not set")
	}

	e.cycleMu.Lock()
	defer e.cycleMu.Unlock()

	snap, err := d.source.Snapshot(ctx)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	user, ok := snap.User(req.UserID)
	if !ok {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("user %d: %w", req.UserID, ErrUserNotFound)
	}

	res := &Result{
		UserID:    req.UserID,
		RequestID: req.RequestID,
	}

	if e.isCold(snap, req.UserID) {
		res.Strategy = StrategyColdStart
		res.Items = d.coldStart.Sample(user, snap.Items, snap.Interactions, req.K)
		e.coldStartCount.Add(1)
	} else {
		if err := e.recommendSimilar(ctx, d, snap, user, req, res, logger); err != nil {
			e.errorCount.Add(1)
			return nil, err
		}
	}

	if res.Items == nil {
		res.Items = []int{}
	}
	res.Timestamp = time.Now()
	res.LatencyMS = time.Since(start).Milliseconds()

	logger.Debug().
		Str("strategy", res.Strategy.String()).
		Int("returned", len(res.Items)).
		Bool("fit_cache_hit", res.FitCacheHit).
		Int64("latency_ms", res.LatencyMS).
		Msg("recommendation complete")

	return res, nil
}

// prepareRequest applies defaults, validates K and assigns a request ID.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.K == 0 {
		req.K = e.config.Limits.DefaultK
	}
	if req.K < 0 || req.K > e.config.Limits.MaxK {
		return req, fmt.Errorf("k=%d not in [1, %d]: %w", req.K, e.config.Limits.MaxK, ErrInvalidK)
	}
	return req, nil
}

// isCold applies the routing rule. Interaction counts are raw log rows.
func (e *Engine) isCold(snap *Snapshot, userID int64) bool {
	if len(snap.Users) < e.config.Routing.MinUsers {
		return true
	}
	return snap.InteractionCount(userID) < e.config.Routing.MinUserInteractions
}

// recommendSimilar fills res from the fitted similarity model.
//
//nolint:gocritic // hugeParam: user and req passed by value for immutability
func (e *Engine) recommendSimilar(ctx context.Context, d deps, snap *Snapshot, user User, req Request, res *Result, logger zerolog.Logger) error {
	if d.factory == nil {
		return fmt.Errorf("model factory not set")
	}
	if !e.catalog.Matches(snap.Items) {
		return fmt.Errorf("%d items for range [%d, %d]: %w",
			len(snap.Items), e.catalog.FirstID(), e.catalog.FirstID()+e.catalog.Size()-1, ErrCatalogMismatch)
	}

	model, hit, fitDur, err := e.fittedModel(ctx, d, snap.Interactions, logger)
	if err != nil {
		return err
	}

	items, err := model.Score(req.UserID, req.K)
	if errors.Is(err, ErrUnknownUser) {
		// Only reachable when the per-user threshold is zero.
		logger.Debug().Msg("user absent from fitted model, using cold start")
		res.Strategy = StrategyColdStart
		res.Items = d.coldStart.Sample(user, snap.Items, snap.Interactions, req.K)
		e.coldStartCount.Add(1)
		return nil
	}
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}

	res.Strategy = StrategyEASE
	res.Items = items
	res.FitCacheHit = hit
	res.FitDuration = fitDur
	e.easeCount.Add(1)
	return nil
}

// fittedModel returns a model fitted on interactions, reusing the memo or
// the model store when the fingerprint matches.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) fittedModel(ctx context.Context, d deps, interactions []Interaction, logger zerolog.Logger) (SimilarityModel, bool, time.Duration, error) {
	cacheOn := e.config.FitCache.Enabled
	key := Fingerprint(interactions, e.config.EASE.Lambda, e.catalog.FirstID(), e.catalog.Size(), e.config.EASE.Window)

	if cacheOn {
		if m := e.lookupMemo(key); m != nil {
			e.fitCacheHits.Add(1)
			return m, true, 0, nil
		}
		if m := e.loadStored(ctx, d, key, logger); m != nil {
			e.storeMemo(key, m)
			e.fitCacheHits.Add(1)
			return m, true, 0, nil
		}
	}
	e.fitCacheMisses.Add(1)

	model := d.factory()
	fitStart := time.Now()
	err := model.Fit(ctx, interactions)
	fitDur := time.Since(fitStart)
	e.recordFit(key, len(interactions), fitDur, err)
	if err != nil {
		return nil, false, fitDur, fmt.Errorf("fit %s: %w", model.Name(), err)
	}

	logger.Debug().
		Str("fingerprint", key).
		Int("interactions", len(interactions)).
		Dur("fit_duration", fitDur).
		Msg("model fitted")

	if cacheOn {
		e.storeMemo(key, model)
		e.persist(ctx, d, key, model, logger)
	}
	return model, false, fitDur, nil
}

func (e *Engine) lookupMemo(key string) SimilarityModel {
	e.memoMu.Lock()
	defer e.memoMu.Unlock()
	if e.memo != nil && e.memoKey == key {
		return e.memo
	}
	return nil
}

func (e *Engine) storeMemo(key string, m SimilarityModel) {
	e.memoMu.Lock()
	defer e.memoMu.Unlock()
	e.memo = m
	e.memoKey = key
}

// loadStored restores a fitted model from the store. Store failures are
// logged and treated as a miss.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) loadStored(ctx context.Context, d deps, key string, logger zerolog.Logger) SimilarityModel {
	if d.store == nil {
		return nil
	}
	data, ok, err := d.store.Get(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Str("fingerprint", key).Msg("model store read failed")
		return nil
	}
	if !ok {
		return nil
	}
	m := d.factory()
	if err := m.UnmarshalBinary(data); err != nil {
		logger.Warn().Err(err).Str("fingerprint", key).Msg("stored model unusable, refitting")
		return nil
	}
	logger.Debug().Str("fingerprint", key).Msg("model restored from store")
	return m
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) persist(ctx context.Context, d deps, key string, m SimilarityModel, logger zerolog.Logger) {
	if d.store == nil {
		return
	}
	data, err := m.MarshalBinary()
	if err != nil {
		logger.Warn().Err(err).Msg("model serialization failed")
		return
	}
	if err := d.store.Put(ctx, key, data); err != nil {
		logger.Warn().Err(err).Str("fingerprint", key).Msg("model store write failed")
	}
}

func (e *Engine) recordFit(key string, interactions int, dur time.Duration, err error) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()

	e.status.LastFitAt = time.Now()
	e.status.LastFitDurationMS = dur.Milliseconds()
	e.status.Fingerprint = key
	e.status.Interactions = interactions
	e.status.FitCount++
	e.status.LastError = ""
	if err != nil {
		e.status.LastError = err.Error()
	}
}

// Invalidate drops the memoized model so the next EASE request refits.
func (e *Engine) Invalidate() {
	e.memoMu.Lock()
	defer e.memoMu.Unlock()

	if e.memo != nil {
		e.logger.Debug().Str("fingerprint", e.memoKey).Msg("fit cache invalidated")
	}
	e.memo = nil
	e.memoKey = ""
}

// Stats returns the current engine counters.
func (e *Engine) Stats() Stats {
	e.statusMu.RLock()
	fit := e.status
	e.statusMu.RUnlock()

	return Stats{
		RequestCount:   e.requestCount.Load(),
		ColdStartCount: e.coldStartCount.Load(),
		EASECount:      e.easeCount.Load(),
		FitCacheHits:   e.fitCacheHits.Load(),
		FitCacheMisses: e.fitCacheMisses.Load(),
		ErrorCount:     e.errorCount.Load(),
		Fit:            fit,
	}
}
