// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package database

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/tomtom215/cashpick/internal/logging"
	"github.com/tomtom215/cashpick/internal/recommend"
)

// demoCategories are the catalog categories used by SeedDemoData.
var demoCategories = []string{
	"Продукты",
	"Одежда и обувь",
	"Электроника",
	"Красота и здоровье",
	"Дом и сад",
	"Рестораны",
	"Путешествия",
	recommend.DefaultKidsCategory,
	recommend.DefaultPetsCategory,
}

var demoBrands = []string{
	"Acme", "Northwind", "Globex", "Initech", "Umbrella", "Stark", "Wayne", "Hooli",
}

// DemoOptions controls SeedDemoData.
type DemoOptions struct {
	CatalogFirstID      int
	CatalogSize         int
	Users               int
	InteractionsPerUser int
	Seed                uint64
}

// DemoCounts reports what SeedDemoData wrote.
type DemoCounts struct {
	Items        int
	Users        int
	Interactions int
}

// SeedDemoData fills the database with a synthetic catalog, users and
// feedback. It is intended for local development and demos only.
func (db *DB) SeedDemoData(ctx context.Context, opts DemoOptions) (*DemoCounts, error) {
	logging.Info().
		Int("catalog_size", opts.CatalogSize).
		Int("users", opts.Users).
		Msg("Seeding database with demo data...")

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	counts := &DemoCounts{}

	for i := 0; i < opts.CatalogSize; i++ {
		it := &recommend.Item{
			ID:              opts.CatalogFirstID + i,
			Category:        demoCategories[i%len(demoCategories)],
			Brand:           demoBrands[rng.IntN(len(demoBrands))],
			CashbackPercent: float64(1+rng.IntN(30)) / 2,
			FirstTime:       rng.IntN(4) == 0,
			DaysLeft:        rng.IntN(45),
		}
		it.Text = fmt.Sprintf("%s: %.1f%% cashback", it.Brand, it.CashbackPercent)
		if err := db.UpsertItem(ctx, it); err != nil {
			return counts, err
		}
		counts.Items++
	}

	start := time.Now().UTC().Add(-30 * 24 * time.Hour)
	for u := 1; u <= opts.Users; u++ {
		cats := make([]string, 0, 2)
		for _, c := range demoCategories[:7] {
			if rng.IntN(4) == 0 {
				cats = append(cats, c)
			}
		}
		user := &recommend.User{
			ID:         int64(u),
			Age:        18 + rng.IntN(50),
			Sex:        []string{"м", "ж"}[rng.IntN(2)],
			Categories: strings.Join(cats, ";"),
			KidsFlag:   rng.IntN(3) == 0,
			PetsFlag:   rng.IntN(3) == 0,
			LastItemID: recommend.NoRecommendation,
			CreatedAt:  start,
		}
		if err := db.UpsertUser(ctx, user); err != nil {
			return counts, err
		}
		counts.Users++

		if opts.CatalogSize == 0 {
			continue
		}
		for j := 0; j < opts.InteractionsPerUser; j++ {
			in := &recommend.Interaction{
				UserID:    user.ID,
				ItemID:    opts.CatalogFirstID + rng.IntN(opts.CatalogSize),
				Feedback:  recommend.Feedback(rng.IntN(2)),
				Timestamp: start.Add(time.Duration(u*opts.InteractionsPerUser+j) * time.Minute),
			}
			if err := db.AppendInteraction(ctx, in); err != nil {
				return counts, err
			}
			counts.Interactions++
		}
	}

	logging.Info().
		Int("items", counts.Items).
		Int("users", counts.Users).
		Int("interactions", counts.Interactions).
		Msg("Demo data seeded")
	return counts, nil
}
