// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

// Package services adapts server components to suture.Service.
//
// Each wrapper implements Serve(ctx) error and String() string. Serve
// blocks until ctx is canceled and returns ctx.Err() on a clean stop, so
// the supervisor does not treat shutdown as a failure. Periodic jobs log
// and count failed runs instead of returning them; returning would make
// suture restart the loop, which only resets the ticker.
package services
