// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

// Package models defines the HTTP request and response shapes.
//
// Domain types (User, Item, Interaction) live in package recommend; this
// package holds the envelope every endpoint returns (APIResponse) and the
// request structs with their validation tags.
package models
