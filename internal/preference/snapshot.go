// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package preference

import (
	"context"
	"sync/atomic"
)

// Snapshot is an in-memory Resolver over a fixed set of records.
// Replace swaps the whole index atomically; readers never block.
type Snapshot struct {
	idx atomic.Pointer[index]
}

// NewSnapshot builds a snapshot from records in log order.
func NewSnapshot(records []Record) *Snapshot {
	s := &Snapshot{}
	s.Replace(records)
	return s
}

// Replace installs a new index built from records.
func (s *Snapshot) Replace(records []Record) {
	s.idx.Store(buildIndex(records))
}

// Len returns the number of records in the active index.
func (s *Snapshot) Len() int {
	return s.idx.Load().records
}

// Users returns the number of distinct users in the active index.
func (s *Snapshot) Users() int {
	return len(s.idx.Load().users)
}

// LikedItems implements Resolver.
func (s *Snapshot) LikedItems(ctx context.Context, userID int) (map[int]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.idx.Load().users[userID].liked(), nil
}

// AllInteractions implements Resolver.
func (s *Snapshot) AllInteractions(ctx context.Context, userID int) (map[int]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.idx.Load().users[userID].all(), nil
}
