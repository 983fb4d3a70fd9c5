// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const (
	modelKeyPrefix = "model:"
	metaKeyPrefix  = "meta:"
)

// ErrChecksumMismatch indicates stored model bytes were corrupted.
var ErrChecksumMismatch = errors.New("model checksum mismatch")

// ModelMetadata contains information about a stored model.
type ModelMetadata struct {
	// Fingerprint is the snapshot fingerprint the model was fitted on.
	Fingerprint string `json:"fingerprint"`

	// SavedAt is when the model was saved.
	SavedAt time.Time `json:"saved_at"`

	// Checksum is the SHA-256 checksum of the uncompressed model bytes.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed model size in bytes.
	SizeBytes int64 `json:"size_bytes"`

	// RawSizeBytes is the uncompressed model size in bytes.
	RawSizeBytes int64 `json:"raw_size_bytes"`
}

// Options configures a Store.
type Options struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps everything in RAM (tests, ephemeral deployments).
	InMemory bool

	// TTL expires entries after this long. Zero keeps them forever.
	TTL time.Duration
}

// Store persists fitted models in BadgerDB.
type Store struct {
	db     *badger.DB
	ownsDB bool
	ttl    time.Duration
}

// Open opens (or creates) a BadgerDB at opts.Path and wraps it.
func Open(opts Options) (*Store, error) {
	bopts := badger.DefaultOptions(opts.Path).WithLogger(nil)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open model store: %w", err)
	}
	return &Store{db: db, ownsDB: true, ttl: opts.TTL}, nil
}

// NewStore wraps an already open BadgerDB. The caller keeps ownership.
func NewStore(db *badger.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl}
}

// Close closes the database if the Store opened it.
func (s *Store) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}

// Put compresses and stores data under key.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	hash := sha256.Sum256(data)

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(data); err != nil {
		return fmt.Errorf("compress model: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	meta := ModelMetadata{
		Fingerprint:  key,
		SavedAt:      time.Now().UTC(),
		Checksum:     hex.EncodeToString(hash[:]),
		SizeBytes:    int64(compressed.Len()),
		RawSizeBytes: int64(len(data)),
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.SetEntry(s.entry(modelKeyPrefix+key, compressed.Bytes())); err != nil {
			return fmt.Errorf("set model: %w", err)
		}
		if err := txn.SetEntry(s.entry(metaKeyPrefix+key, metaJSON)); err != nil {
			return fmt.Errorf("set metadata: %w", err)
		}
		return nil
	})
}

func (s *Store) entry(key string, value []byte) *badger.Entry {
	e := badger.NewEntry([]byte(key), value)
	if s.ttl > 0 {
		e = e.WithTTL(s.ttl)
	}
	return e
}

// Get returns the model bytes stored under key. The bool is false when
// nothing is stored.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var compressed []byte
	var meta ModelMetadata
	found := true

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(modelKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			found = false
			return nil
		}
		if err != nil {
			return fmt.Errorf("get model: %w", err)
		}
		if compressed, err = item.ValueCopy(nil); err != nil {
			return fmt.Errorf("read model: %w", err)
		}

		metaItem, err := txn.Get([]byte(metaKeyPrefix + key))
		if err != nil {
			return fmt.Errorf("get metadata: %w", err)
		}
		return metaItem.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		})
	})
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	gzr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, false, fmt.Errorf("decompress model: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, false, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != meta.Checksum {
		return nil, false, fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, meta.Checksum, checksum)
	}

	return raw, true, nil
}

// List returns metadata for every stored model.
func (s *Store) List(ctx context.Context) ([]ModelMetadata, error) {
	var out []ModelMetadata

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(metaKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var meta ModelMetadata
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &meta)
			})
			if err != nil {
				return fmt.Errorf("decode metadata %s: %w", strings.TrimPrefix(string(it.Item().Key()), metaKeyPrefix), err)
			}
			out = append(out, meta)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return out, nil
}

// Delete removes the model stored under key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, k := range []string{modelKeyPrefix + key, metaKeyPrefix + key} {
			if err := txn.Delete([]byte(k)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete %s: %w", k, err)
			}
		}
		return nil
	})
}

// Prune removes all but the keep most recently saved models.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	models, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if keep < 0 {
		keep = 0
	}
	if len(models) <= keep {
		return 0, nil
	}

	sort.Slice(models, func(i, j int) bool {
		return models[i].SavedAt.After(models[j].SavedAt)
	})

	removed := 0
	for _, m := range models[keep:] {
		if err := s.Delete(ctx, m.Fingerprint); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
