// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package algorithms

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/tomtom215/cashpick/internal/recommend"
)

// firstSource makes every draw pick the first remaining item, so the pool
// is the catalog in order.
type firstSource struct{}

func (firstSource) Int63() int64 { return 0 }
func (firstSource) Seed(int64)   {}

func testCatalog(categories ...string) []recommend.Item {
	items := make([]recommend.Item, len(categories))
	for i, c := range categories {
		items[i] = recommend.Item{ID: i, Category: c}
	}
	return items
}

func uniformCatalog(n int) []recommend.Item {
	cats := make([]string, n)
	for i := range cats {
		cats[i] = "Other"
	}
	return testCatalog(cats...)
}

func defaultColdConfig() recommend.ColdStartConfig {
	return recommend.DefaultConfig().ColdStart
}

func TestColdStart_Weights(t *testing.T) {
	cs := NewColdStart(defaultColdConfig(), firstSource{})

	tests := []struct {
		name  string
		user  recommend.User
		items []recommend.Item
		want  []float64
	}{
		{
			name:  "one favorite among four",
			user:  recommend.User{ID: 1, Categories: "A"},
			items: testCatalog("A", "B", "C", "D"),
			want:  []float64{0.4, 0.2, 0.2, 0.2},
		},
		{
			name:  "no favorites is uniform",
			user:  recommend.User{ID: 1},
			items: testCatalog("A", "B", "C", "D"),
			want:  []float64{0.25, 0.25, 0.25, 0.25},
		},
		{
			name:  "categories are trimmed",
			user:  recommend.User{ID: 1, Categories: " A ; C "},
			items: testCatalog("A", "B", "C", "D"),
			want:  []float64{1.0 / 3, 1.0 / 6, 1.0 / 3, 1.0 / 6},
		},
		{
			name:  "kids flag adds kids category",
			user:  recommend.User{ID: 1, KidsFlag: true},
			items: testCatalog(recommend.DefaultKidsCategory, "B", "C", "D"),
			want:  []float64{0.4, 0.2, 0.2, 0.2},
		},
		{
			name:  "pets flag adds pets category",
			user:  recommend.User{ID: 1, Categories: "B", PetsFlag: true},
			items: testCatalog(recommend.DefaultPetsCategory, "B", "C"),
			want:  []float64{0.4, 0.4, 0.2},
		},
		{
			name:  "kids flag off leaves kids category unweighted",
			user:  recommend.User{ID: 1, PetsFlag: true},
			items: testCatalog(recommend.DefaultKidsCategory, recommend.DefaultPetsCategory),
			want:  []float64{1.0 / 3, 2.0 / 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cs.Weights(tt.user, tt.items)
			if len(got) != len(tt.want) {
				t.Fatalf("len(Weights()) = %d, want %d", len(got), len(tt.want))
			}
			var sum float64
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("Weights()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
				if got[i] <= 0 {
					t.Errorf("Weights()[%d] = %v, want > 0", i, got[i])
				}
				sum += got[i]
			}
			if math.Abs(sum-1) > 1e-12 {
				t.Errorf("sum(Weights()) = %v, want 1", sum)
			}
		})
	}
}

func TestColdStart_Sample(t *testing.T) {
	user := recommend.User{ID: 7}

	tests := []struct {
		name         string
		items        []recommend.Item
		interactions []recommend.Interaction
		k            int
		want         []int
	}{
		{
			name:  "first of pool",
			items: uniformCatalog(20),
			k:     1,
			want:  []int{0},
		},
		{
			name:         "seen items skipped",
			items:        uniformCatalog(20),
			interactions: []recommend.Interaction{pos(7, 0, 0), neg(7, 1, 1)},
			k:            1,
			want:         []int{2},
		},
		{
			name:         "other users history ignored",
			items:        uniformCatalog(20),
			interactions: []recommend.Interaction{pos(8, 0, 0)},
			k:            2,
			want:         []int{0, 1},
		},
		{
			name:  "pool capped at ten",
			items: uniformCatalog(20),
			k:     0,
			want:  []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		},
		{
			name:  "pool capped at catalog size",
			items: uniformCatalog(3),
			k:     5,
			want:  []int{0, 1, 2},
		},
		{
			name:         "whole pool seen",
			items:        uniformCatalog(2),
			interactions: []recommend.Interaction{pos(7, 0, 0), pos(7, 1, 1)},
			k:            1,
			want:         []int{},
		},
		{
			name:  "empty catalog",
			items: nil,
			k:     1,
			want:  []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := NewColdStart(defaultColdConfig(), firstSource{})
			got := cs.Sample(user, tt.items, tt.interactions, tt.k)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Sample() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColdStart_SampleNeverReturnsSeen(t *testing.T) {
	cs := NewColdStart(defaultColdConfig(), rand.NewSource(42))
	items := testCatalog("A", "B", "A", "C", "D", "A", "B", "E", "F", "A", "G", "H")
	user := recommend.User{ID: 3, Categories: "A"}
	interactions := []recommend.Interaction{
		pos(3, 0, 0), neg(3, 2, 1), pos(3, 5, 2), neg(3, 11, 3),
	}
	seen := map[int]bool{0: true, 2: true, 5: true, 11: true}

	for run := 0; run < 200; run++ {
		got := cs.Sample(user, items, interactions, 10)
		distinct := make(map[int]bool, len(got))
		for _, id := range got {
			if seen[id] {
				t.Fatalf("run %d: Sample() = %v contains seen item %d", run, got, id)
			}
			if distinct[id] {
				t.Fatalf("run %d: Sample() = %v repeats item %d", run, got, id)
			}
			distinct[id] = true
		}
		if len(got) > 10 {
			t.Fatalf("run %d: len(Sample()) = %d, want <= 10", run, len(got))
		}
	}
}

func TestColdStart_FavoredDrawnMoreOften(t *testing.T) {
	cfg := defaultColdConfig()
	cfg.PoolSize = 1
	cs := NewColdStart(cfg, rand.NewSource(1))
	items := testCatalog("A", "B")
	user := recommend.User{ID: 1, Categories: "A"}

	counts := make(map[int]int)
	for i := 0; i < 3000; i++ {
		got := cs.Sample(user, items, nil, 1)
		counts[got[0]]++
	}

	// Expected share for A is 2/3.
	share := float64(counts[0]) / 3000
	if share < 0.6 || share > 0.73 {
		t.Errorf("favored share = %.3f, want about 0.667", share)
	}
}

func TestColdStart_SameSeedSameDraws(t *testing.T) {
	items := uniformCatalog(30)
	user := recommend.User{ID: 1}

	a := NewColdStart(defaultColdConfig(), rand.NewSource(99))
	b := NewColdStart(defaultColdConfig(), rand.NewSource(99))
	for i := 0; i < 5; i++ {
		ga := a.Sample(user, items, nil, 0)
		gb := b.Sample(user, items, nil, 0)
		if !slices.Equal(ga, gb) {
			t.Fatalf("draw %d: %v != %v", i, ga, gb)
		}
	}
}

func TestNewSource(t *testing.T) {
	a := rand.New(NewSource(5)).Int63()
	b := rand.New(NewSource(5)).Int63()
	if a != b {
		t.Errorf("seeded sources differ: %d != %d", a, b)
	}
	if NewSource(0) == nil {
		t.Error("NewSource(0) = nil")
	}
}
