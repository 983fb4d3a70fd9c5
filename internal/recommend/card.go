// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package recommend

import "fmt"

// ItemCard is the display payload for an offer.
type ItemCard struct {
	ItemID          int     `json:"item_id"`
	ImageURL        string  `json:"image_url"`
	Category        string  `json:"category"`
	Text            string  `json:"text"`
	CashbackPercent float64 `json:"cashback_percent"`
	FirstTime       bool    `json:"first_time"`
	ExpiryText      string  `json:"expiry_text"`
	Brand           string  `json:"brand"`
}

// NewItemCard builds the card for item.
func NewItemCard(item *Item) ItemCard {
	return ItemCard{
		ItemID:          item.ID,
		ImageURL:        item.ImageURL,
		Category:        item.Category,
		Text:            item.Text,
		CashbackPercent: item.CashbackPercent,
		FirstTime:       item.FirstTime,
		ExpiryText:      ExpiryText(item.DaysLeft),
		Brand:           item.Brand,
	}
}

// ExpiryText renders days remaining on an offer.
func ExpiryText(daysLeft int) string {
	switch {
	case daysLeft < 0:
		return "expired"
	case daysLeft == 0:
		return "expires today"
	case daysLeft == 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", daysLeft)
	}
}
