// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package recommend

import (
	"time"

	"github.com/tomtom215/galleria/internal/models"
	"github.com/tomtom215/galleria/internal/similarity"
)

// Space is the read-only similarity data the engine scores against.
// *similarity.Space implements it.
type Space interface {
	// SimilarityRow returns a caller-owned row of length ItemCount().
	SimilarityRow(itemID int) ([]float64, error)

	// ItemCount returns N.
	ItemCount() int

	// Metadata returns the catalog entry, or false for unknown ids.
	Metadata(itemID int) (models.Item, bool)

	// Stats returns the opaque training summary.
	Stats() similarity.Stats
}

// Mode identifies which scoring path produced a result.
type Mode string

const (
	// ModeContent is seed scoring with optional anchor boosts.
	ModeContent Mode = "content"
	// ModePersonalized is anchor averaging with suppression.
	ModePersonalized Mode = "personalized"
	// ModeNone is reported when no signal was available.
	ModeNone Mode = "none"
)

// Status distinguishes a real (possibly short) page from a query that
// carried no information.
type Status string

const (
	StatusOK       Status = "ok"
	StatusNoSignal Status = "no_signal"
)

// Query is a single recommendation request. Every field is optional.
type Query struct {
	// SeedItem centers a content search on one item.
	SeedItem *int `json:"seed_item,omitempty"`

	// UserID pulls likes (anchors) and interactions (suppression) from the resolver.
	UserID *int `json:"user_id,omitempty"`

	// ExplicitLikes are caller-supplied anchors, independent of stored history.
	ExplicitLikes []int `json:"explicit_likes,omitempty"`

	// TopK is the requested result size. Zero means Config.DefaultK.
	TopK int `json:"top_k,omitempty"`

	// RequestID correlates logs. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Recommendation is one ranked entry.
type Recommendation struct {
	ItemID   int         `json:"item_id"`
	Score    float64     `json:"score"`
	Metadata models.View `json:"metadata"`
}

// Result is the ranked output of Recommend.
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	Count           int              `json:"count"`
	Status          Status           `json:"status"`
	Mode            Mode             `json:"mode"`
	Anchors         int              `json:"anchors"`
	RequestID       string           `json:"request_id"`
	Latency         time.Duration    `json:"-"`
}

// ItemIDs returns the ranked item ids.
func (r *Result) ItemIDs() []int {
	ids := make([]int, len(r.Recommendations))
	for i := range r.Recommendations {
		ids[i] = r.Recommendations[i].ItemID
	}
	return ids
}

// IntPtr returns a pointer to v, for building queries.
func IntPtr(v int) *int {
	return &v
}
