// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package preference

import (
	"context"
	"time"
)

// Resolver answers per-user preference queries.
// Implementations must be safe for concurrent use.
type Resolver interface {
	// LikedItems returns the items the user currently likes.
	LikedItems(ctx context.Context, userID int) (map[int]struct{}, error)

	// AllInteractions returns every item the user has a record for.
	AllInteractions(ctx context.Context, userID int) (map[int]struct{}, error)
}

// Source supplies the full interaction log, used to build snapshots.
type Source interface {
	Records(ctx context.Context) ([]Record, error)
}

// Record is one entry of the interaction log.
type Record struct {
	UserID  int       `json:"user_id"`
	ItemID  int       `json:"item_id"`
	Rating  int       `json:"rating"`
	RatedAt time.Time `json:"rated_at,omitempty"`
}

// Liked reports whether the record is a positive rating.
//
//nolint:gocritic // hugeParam: Record is small
func (r Record) Liked() bool {
	return r.Rating >= 1
}

// userIndex holds the resolved state of one user. newest keeps, per item,
// the latest rated_at seen so far, which may belong to a record that has
// since been replaced by an untimestamped one.
type userIndex struct {
	latest map[int]Record
	newest map[int]time.Time
}

func newUserIndex(size int) *userIndex {
	return &userIndex{
		latest: make(map[int]Record, size),
		newest: make(map[int]time.Time, size),
	}
}

// add folds the next record in log order. An untimestamped record always
// replaces the current winner. A timestamped record replaces it unless it
// is older than a timestamp already seen for the pair.
//
//nolint:gocritic // hugeParam: Record is small
func (u *userIndex) add(r Record) {
	if !r.RatedAt.IsZero() {
		if seen, ok := u.newest[r.ItemID]; ok && r.RatedAt.Before(seen) {
			return
		}
		u.newest[r.ItemID] = r.RatedAt
	}
	u.latest[r.ItemID] = r
}

func (u *userIndex) liked() map[int]struct{} {
	out := make(map[int]struct{})
	if u == nil {
		return out
	}
	for item, r := range u.latest {
		if r.Liked() {
			out[item] = struct{}{}
		}
	}
	return out
}

func (u *userIndex) all() map[int]struct{} {
	out := make(map[int]struct{})
	if u == nil {
		return out
	}
	for item := range u.latest {
		out[item] = struct{}{}
	}
	return out
}

// resolveUser folds one user's records, in log order.
func resolveUser(records []Record) *userIndex {
	u := newUserIndex(len(records))
	for _, r := range records {
		u.add(r)
	}
	return u
}

// index is the resolved state of a whole log.
type index struct {
	users   map[int]*userIndex
	records int
}

// buildIndex folds records, in log order, into per-user state.
func buildIndex(records []Record) *index {
	idx := &index{users: make(map[int]*userIndex), records: len(records)}
	for _, r := range records {
		u, ok := idx.users[r.UserID]
		if !ok {
			u = newUserIndex(0)
			idx.users[r.UserID] = u
		}
		u.add(r)
	}
	return idx
}
