// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

// Package storage persists fitted similarity models in BadgerDB.
//
// Each entry is keyed by the snapshot fingerprint the model was fitted on,
// so a restarted process can reuse a fit for an unchanged interaction log
// instead of inverting the Gram matrix again.
//
// # Storage Format
//
//	model:{fingerprint}  gzip-compressed model bytes
//	meta:{fingerprint}   JSON ModelMetadata (size, SHA-256 checksum, saved_at)
//
// Both keys are written in one transaction and expire together after the
// configured TTL. Reads verify the checksum of the decompressed bytes.
//
// # Usage Example
//
//	store, err := storage.Open(storage.Options{Path: "/data/models", TTL: 7 * 24 * time.Hour})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	engine.SetModelStore(store)
//
// # Thread Safety
//
// All operations are safe for concurrent use. BadgerDB provides
// serializable transactions.
package storage
