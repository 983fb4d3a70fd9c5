// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package recommend

import (
	"context"
	"fmt"
)

// UserField names a mutable user profile column.
type UserField string

// Mutable user fields. The household flags are separate fields.
const (
	FieldAge                  UserField = "age"
	FieldSex                  UserField = "sex"
	FieldCategories           UserField = "categories"
	FieldKidsFlag             UserField = "kids_flag"
	FieldPetsFlag             UserField = "pets_flag"
	FieldLastItemID           UserField = "last_item_id"
	FieldLastItemAcknowledged UserField = "last_item_acknowledged"
	FieldLastMessageID        UserField = "last_message_id"
)

// UserFields lists every mutable field.
var UserFields = []UserField{
	FieldAge, FieldSex, FieldCategories, FieldKidsFlag, FieldPetsFlag,
	FieldLastItemID, FieldLastItemAcknowledged, FieldLastMessageID,
}

// ParseUserField validates a field name.
func ParseUserField(s string) (UserField, error) {
	for _, f := range UserFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown field %q", ErrInvalidField, s)
}

// Repository owns the users, items and interactions tables.
// Writes never mutate a snapshot that was already returned.
type Repository interface {
	SnapshotSource

	GetUser(ctx context.Context, userID int64) (*User, error)
	GetItem(ctx context.Context, itemID int) (*Item, error)
	UpsertUser(ctx context.Context, user *User) error
	UpdateUserField(ctx context.Context, userID int64, field UserField, value any) error
	AppendInteraction(ctx context.Context, in *Interaction) error
}
