// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

// Package recommend picks cashback offers for chat assistant users.
//
// # Architecture
//
// Two strategies sit behind a single router (Engine):
//
//   - Cold start: category-weighted random sampling over the whole catalog,
//     used while the user base or the user's own history is too small.
//   - EASE: a closed-form item-item model fitted on the signed interaction
//     matrix (positive feedback +1, negative feedback -1).
//
// The Engine re-evaluates the routing rule on every call. Nothing about
// "which regime a user is in" is remembered between calls.
//
// # Catalog Space
//
// Item ids come from a fixed, pre-declared range of size N. The EASE column
// space is always N wide, whether or not every item has been interacted with.
// The catalog index is built once from the configured range.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	engine.SetSnapshotSource(db)
//	engine.SetColdStart(algorithms.NewColdStart(coldCfg, rand.NewSource(seed)))
//	engine.SetModelFactory(func() recommend.SimilarityModel {
//	    return algorithms.NewEASE(easeCfg, engine.Catalog())
//	})
//
//	res, err := engine.Recommend(ctx, recommend.Request{UserID: userID, K: 1})
//	if err != nil {
//	    return err
//	}
//	itemID := res.First() // NoRecommendation when nothing is left
//
// # Thread Safety
//
// The Engine is safe for concurrent use. Fit and score run under one mutex
// so each cycle sees a single snapshot.
package recommend
