// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package recommend

import (
	"fmt"
	"slices"
)

// CatalogIndex maps item ids in a fixed contiguous range to dense columns.
// It is immutable once built.
type CatalogIndex struct {
	first int
	size  int
}

// NewCatalogIndex builds the index for ids first..first+size-1.
func NewCatalogIndex(first, size int) (*CatalogIndex, error) {
	if size < 1 {
		return nil, fmt.Errorf("catalog size must be positive, got %d", size)
	}
	return &CatalogIndex{first: first, size: size}, nil
}

// Size returns N, the number of columns.
func (c *CatalogIndex) Size() int { return c.size }

// FirstID returns the lowest item id in the range.
func (c *CatalogIndex) FirstID() int { return c.first }

// Index returns the column for itemID.
func (c *CatalogIndex) Index(itemID int) (int, error) {
	col := itemID - c.first
	if col < 0 || col >= c.size {
		return 0, fmt.Errorf("item %d not in [%d, %d]: %w", itemID, c.first, c.first+c.size-1, ErrItemOutOfRange)
	}
	return col, nil
}

// ItemID returns the item id for column col.
func (c *CatalogIndex) ItemID(col int) int {
	return c.first + col
}

// Contains reports whether itemID lies in the declared range.
func (c *CatalogIndex) Contains(itemID int) bool {
	col := itemID - c.first
	return col >= 0 && col < c.size
}

// Matches reports whether items covers the declared range exactly,
// one item per id and nothing outside.
func (c *CatalogIndex) Matches(items []Item) bool {
	if len(items) != c.size {
		return false
	}
	seen := make([]bool, c.size)
	for i := range items {
		col := items[i].ID - c.first
		if col < 0 || col >= c.size || seen[col] {
			return false
		}
		seen[col] = true
	}
	return true
}

// UserIndex maps user ids to dense rows, ordered by ascending id.
type UserIndex struct {
	ids  []int64
	rows map[int64]int
}

// NewUserIndex builds a UserIndex from the distinct users in interactions.
func NewUserIndex(interactions []Interaction) *UserIndex {
	rows := make(map[int64]int)
	ids := make([]int64, 0)
	for i := range interactions {
		uid := interactions[i].UserID
		if _, ok := rows[uid]; !ok {
			rows[uid] = 0
			ids = append(ids, uid)
		}
	}
	slices.Sort(ids)
	for row, uid := range ids {
		rows[uid] = row
	}
	return &UserIndex{ids: ids, rows: rows}
}

// NewUserIndexFromIDs rebuilds an index from an already sorted id list.
func NewUserIndexFromIDs(ids []int64) *UserIndex {
	rows := make(map[int64]int, len(ids))
	for row, uid := range ids {
		rows[uid] = row
	}
	return &UserIndex{ids: slices.Clone(ids), rows: rows}
}

// Len returns the number of users.
func (u *UserIndex) Len() int { return len(u.ids) }

// Row returns the row for userID.
func (u *UserIndex) Row(userID int64) (int, bool) {
	row, ok := u.rows[userID]
	return row, ok
}

// UserID returns the user id at row.
func (u *UserIndex) UserID(row int) int64 { return u.ids[row] }

// IDs returns a copy of the ordered user ids.
func (u *UserIndex) IDs() []int64 { return slices.Clone(u.ids) }
