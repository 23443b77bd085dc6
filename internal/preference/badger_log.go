// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package preference

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/galleria/internal/metrics"
	"github.com/tomtom215/galleria/internal/models"
)

const (
	backendBadger        = "badger"
	interactionKeyPrefix = "interaction:"
)

// BadgerLog is a durable interaction log stored in BadgerDB.
//
// Keys are interaction:<user>:<item> with a JSON Record value, so each
// (user, item) pair holds exactly its latest record. Reads through the
// Resolver interface are prefix scans; writes happen only through Like,
// Unlike and Rate.
type BadgerLog struct {
	db  *badger.DB
	now func() time.Time
}

// BadgerOptions configures OpenBadgerLog.
type BadgerOptions struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps the store in memory only (tests, dry runs).
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool
}

// OpenBadgerLog opens (or creates) the store.
func OpenBadgerLog(opts BadgerOptions) (*BadgerLog, error) {
	bopts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.SyncWrites = opts.SyncWrites
	bopts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, models.Unavailable("open badger interaction log", err)
	}
	return &BadgerLog{db: db, now: time.Now}, nil
}

func interactionKey(userID, itemID int) []byte {
	return []byte(interactionKeyPrefix + strconv.Itoa(userID) + ":" + strconv.Itoa(itemID))
}

func userPrefix(userID int) []byte {
	return []byte(interactionKeyPrefix + strconv.Itoa(userID) + ":")
}

// Like records a positive rating.
func (l *BadgerLog) Like(ctx context.Context, userID, itemID int) error {
	return l.Rate(ctx, userID, itemID, 1)
}

// Unlike removes the user's record for the item entirely.
// Removing a record that does not exist is not an error.
func (l *BadgerLog) Unlike(ctx context.Context, userID, itemID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := l.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(interactionKey(userID, itemID)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete interaction: %w", err)
		}
		return nil
	})
	metrics.RecordPreferenceQuery(backendBadger, "unlike", time.Since(start), err)
	return err
}

// Rate stores a rating, replacing any earlier record for the pair.
func (l *BadgerLog) Rate(ctx context.Context, userID, itemID, rating int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if userID < 0 || itemID < 0 {
		return fmt.Errorf("user and item ids must be non-negative, got %d and %d", userID, itemID)
	}

	data, err := json.Marshal(Record{
		UserID:  userID,
		ItemID:  itemID,
		Rating:  rating,
		RatedAt: l.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}

	start := time.Now()
	err = l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(interactionKey(userID, itemID), data)
	})
	metrics.RecordPreferenceQuery(backendBadger, "rate", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("set interaction: %w", err)
	}
	return nil
}

// LikedItems implements Resolver.
func (l *BadgerLog) LikedItems(ctx context.Context, userID int) (map[int]struct{}, error) {
	records, err := l.scan(ctx, "liked", userPrefix(userID))
	if err != nil {
		return nil, err
	}
	return resolveUser(records).liked(), nil
}

// AllInteractions implements Resolver.
func (l *BadgerLog) AllInteractions(ctx context.Context, userID int) (map[int]struct{}, error) {
	records, err := l.scan(ctx, "interactions", userPrefix(userID))
	if err != nil {
		return nil, err
	}
	return resolveUser(records).all(), nil
}

// Records returns every stored record. Order follows key order.
func (l *BadgerLog) Records(ctx context.Context) ([]Record, error) {
	return l.scan(ctx, "records", []byte(interactionKeyPrefix))
}

// UserRecords returns the stored records of one user.
func (l *BadgerLog) UserRecords(ctx context.Context, userID int) ([]Record, error) {
	return l.scan(ctx, "user_records", userPrefix(userID))
}

func (l *BadgerLog) scan(ctx context.Context, operation string, prefix []byte) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var records []Record
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var r Record
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return fmt.Errorf("decode interaction %q: %w", it.Item().Key(), err)
			}
			records = append(records, r)
		}
		return nil
	})
	metrics.RecordPreferenceQuery(backendBadger, operation, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Close closes the underlying BadgerDB.
func (l *BadgerLog) Close() error {
	return l.db.Close()
}
