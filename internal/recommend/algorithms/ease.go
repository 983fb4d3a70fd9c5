// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package algorithms

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/cashpick/internal/recommend"
)

// EASE implements the Embarrassingly Shallow Autoencoders algorithm.
// Reference: "Embarrassingly Shallow Autoencoders for Sparse Data" (Steck, 2019)
//
// The column space is the fixed catalog range, so B is always N x N.
// Rows are the distinct users of the fitted interaction log.
type EASE struct {
	BaseAlgorithm
	config  recommend.EASEConfig
	catalog *recommend.CatalogIndex

	users *recommend.UserIndex

	// x is the signed users x N interaction matrix. Nil when no users.
	x *mat.Dense

	// b is the N x N item-item weight matrix with a zero diagonal.
	b *mat.Dense

	// history holds each user's distinct item ids, most recent first.
	history map[int64][]int
}

// NewEASE creates an unfitted EASE model over catalog.
func NewEASE(cfg recommend.EASEConfig, catalog *recommend.CatalogIndex) *EASE {
	return &EASE{
		BaseAlgorithm: NewBaseAlgorithm(recommend.StrategyEASE.String()),
		config:        cfg,
		catalog:       catalog,
		history:       make(map[int64][]int),
	}
}

// Dedupe keeps the most recent interaction per (user, item) pair. Input is
// ordered by timestamp with ties kept in log order. The result is in the
// same chronological order.
func Dedupe(interactions []recommend.Interaction) []recommend.Interaction {
	sorted := make([]recommend.Interaction, len(interactions))
	copy(sorted, interactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	type pair struct {
		user int64
		item int
	}
	lastPos := make(map[pair]int, len(sorted))
	for i := range sorted {
		lastPos[pair{sorted[i].UserID, sorted[i].ItemID}] = i
	}

	out := make([]recommend.Interaction, 0, len(lastPos))
	for i := range sorted {
		if lastPos[pair{sorted[i].UserID, sorted[i].ItemID}] == i {
			out = append(out, sorted[i])
		}
	}
	return out
}

// Fit computes B from the full interaction log. On error the previous
// fitted state is left untouched.
//
//nolint:gocyclo // closed-form fit has several sequential stages
func (e *EASE) Fit(ctx context.Context, interactions []recommend.Interaction) error {
	e.acquireFitLock()
	defer e.releaseFitLock()

	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	n := e.catalog.Size()
	for i := range interactions {
		if _, err := e.catalog.Index(interactions[i].ItemID); err != nil {
			return fmt.Errorf("ease fit: %w", err)
		}
	}

	deduped := Dedupe(interactions)
	users := recommend.NewUserIndex(deduped)

	// Signed interaction matrix
	var x *mat.Dense
	if users.Len() > 0 {
		x = mat.NewDense(users.Len(), n, nil)
		for i := range deduped {
			row, _ := users.Row(deduped[i].UserID)
			col, _ := e.catalog.Index(deduped[i].ItemID)
			x.Set(row, col, deduped[i].Feedback.Weight())
		}
	}

	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	// Gram matrix G = XᵀX + λI
	g := mat.NewSymDense(n, nil)
	if x != nil {
		g.SymOuterK(1, x.T())
	}
	for i := 0; i < n; i++ {
		g.SetSym(i, i, g.At(i, i)+e.config.Lambda)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(g); !ok {
		return fmt.Errorf("ease fit: cholesky factorization failed (lambda=%g): %w", e.config.Lambda, recommend.ErrIllConditioned)
	}
	var p mat.SymDense
	if err := chol.InverseTo(&p); err != nil {
		return fmt.Errorf("ease fit: %v: %w", err, recommend.ErrIllConditioned)
	}

	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	// B[i][j] = -P[i][j] / P[j][j], zero diagonal
	b := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		pjj := p.At(j, j)
		for i := 0; i < n; i++ {
			if i == j {
				continue
			}
			b.Set(i, j, -p.At(i, j)/pjj)
		}
	}

	// Recency-ordered distinct history, most recent first
	history := make(map[int64][]int, users.Len())
	for i := len(deduped) - 1; i >= 0; i-- {
		uid := deduped[i].UserID
		history[uid] = append(history[uid], deduped[i].ItemID)
	}

	e.users = users
	e.x = x
	e.b = b
	e.history = history
	e.markFitted()

	return nil
}

// Score returns up to k item ids for userID by descending X[u]·B, ties
// broken by ascending item id. The W most recent distinct items in the
// user's history are excluded. A k of zero or less returns the full ranking.
func (e *EASE) Score(userID int64, k int) ([]int, error) {
	e.acquireScoreLock()
	defer e.releaseScoreLock()

	if !e.fitted {
		return nil, recommend.ErrNotFitted
	}

	row, ok := e.users.Row(userID)
	if !ok {
		return nil, fmt.Errorf("ease score user %d: %w", userID, recommend.ErrUnknownUser)
	}

	var scores mat.VecDense
	scores.MulVec(e.b.T(), e.x.RowView(row))

	n := e.catalog.Size()
	ranked := make([]int, n)
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return scores.AtVec(ranked[a]) > scores.AtVec(ranked[b])
	})

	excluded := e.recentItems(userID)

	out := make([]int, 0, n)
	for _, col := range ranked {
		itemID := e.catalog.ItemID(col)
		if _, skip := excluded[itemID]; skip {
			continue
		}
		out = append(out, itemID)
		if k > 0 && len(out) == k {
			break
		}
	}
	return out, nil
}

// recentItems returns the W most recent distinct items for userID.
func (e *EASE) recentItems(userID int64) map[int]struct{} {
	hist := e.history[userID]
	w := e.config.Window
	if w > len(hist) {
		w = len(hist)
	}
	excluded := make(map[int]struct{}, w)
	for _, id := range hist[:w] {
		excluded[id] = struct{}{}
	}
	return excluded
}

// Weights returns a copy of B. Nil before the first fit.
func (e *EASE) Weights() *mat.Dense {
	e.acquireScoreLock()
	defer e.releaseScoreLock()

	if e.b == nil {
		return nil
	}
	return mat.DenseCopyOf(e.b)
}

// Users returns the fitted user ids in row order.
func (e *EASE) Users() []int64 {
	e.acquireScoreLock()
	defer e.releaseScoreLock()

	if e.users == nil {
		return nil
	}
	return e.users.IDs()
}

// easeState is the serialized form of a fitted model.
type easeState struct {
	Lambda       float64
	Window       int
	CatalogFirst int
	CatalogSize  int
	Users        []int64
	X            []byte
	B            []byte
	History      map[int64][]int
}

// MarshalBinary encodes the fitted model.
func (e *EASE) MarshalBinary() ([]byte, error) {
	e.acquireScoreLock()
	defer e.releaseScoreLock()

	if !e.fitted {
		return nil, recommend.ErrNotFitted
	}

	state := easeState{
		Lambda:       e.config.Lambda,
		Window:       e.config.Window,
		CatalogFirst: e.catalog.FirstID(),
		CatalogSize:  e.catalog.Size(),
		Users:        e.users.IDs(),
		History:      e.history,
	}

	var err error
	if e.x != nil {
		if state.X, err = e.x.MarshalBinary(); err != nil {
			return nil, fmt.Errorf("marshal X: %w", err)
		}
	}
	if state.B, err = e.b.MarshalBinary(); err != nil {
		return nil, fmt.Errorf("marshal B: %w", err)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&state); err != nil {
		return nil, fmt.Errorf("encode ease state: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary restores a model encoded by MarshalBinary. The encoded
// parameters must match this model's configuration and catalog.
func (e *EASE) UnmarshalBinary(data []byte) error {
	var state easeState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return fmt.Errorf("decode ease state: %w", err)
	}

	if state.Lambda != e.config.Lambda || state.Window != e.config.Window ||
		state.CatalogFirst != e.catalog.FirstID() || state.CatalogSize != e.catalog.Size() {
		return fmt.Errorf("ease state parameters do not match model configuration")
	}

	var b mat.Dense
	if err := b.UnmarshalBinary(state.B); err != nil {
		return fmt.Errorf("unmarshal B: %w", err)
	}

	var x *mat.Dense
	if len(state.X) > 0 {
		x = &mat.Dense{}
		if err := x.UnmarshalBinary(state.X); err != nil {
			return fmt.Errorf("unmarshal X: %w", err)
		}
	}

	history := state.History
	if history == nil {
		history = make(map[int64][]int)
	}

	e.acquireFitLock()
	defer e.releaseFitLock()

	e.users = recommend.NewUserIndexFromIDs(state.Users)
	e.x = x
	e.b = &b
	e.history = history
	e.markFitted()

	return nil
}
