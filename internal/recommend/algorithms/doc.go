// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

// Package algorithms implements the recommendation strategies used by the
// recommend.Engine.
//
// # Strategies
//
//   - ColdStart: draws a small pool of items at random, weighting items in
//     the user's favorite categories more heavily, then drops seen items.
//   - EASE: Embarrassingly Shallow Autoencoders (Steck, 2019). A linear
//     item-item model with a closed-form solution over the signed
//     interaction matrix.
//
// # EASE Fit
//
//	G = XᵀX + λI
//	P = G⁻¹            (Cholesky)
//	B[i][j] = -P[i][j] / P[j][j],  B[i][i] = 0
//
// Scores for user u are X[u]·B. The W most recent distinct items in the
// user's history are excluded before taking the top k.
//
// Dense linear algebra uses gonum.org/v1/gonum/mat.
//
// # Thread Safety
//
// Both strategies are safe for concurrent use. EASE fitting acquires an
// exclusive lock while scoring uses a shared lock. ColdStart serializes
// access to its random source.
package algorithms
