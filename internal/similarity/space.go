// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package similarity

import (
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/galleria/internal/logging"
	"github.com/tomtom215/galleria/internal/metrics"
	"github.com/tomtom215/galleria/internal/models"
)

// posting is one (item, weight) entry in a feature's inverted list.
type posting struct {
	item   int
	weight float64
}

// Space is an immutable item x feature matrix with on-demand cosine rows.
// It is safe for concurrent use.
type Space struct {
	items    []models.Item
	vectors  []Vector
	norms    []float64
	postings [][]posting
	dim      int
	stats    Stats

	cache     *rowCache
	closeOnce sync.Once
	logger    zerolog.Logger
}

// Option configures optional Space behavior.
type Option func(*options)

type options struct {
	cacheRows int64
	logger    *zerolog.Logger
}

// WithRowCache caches up to maxRows computed rows. maxRows <= 0 disables caching.
func WithRowCache(maxRows int64) Option {
	return func(o *options) {
		o.cacheRows = maxRows
	}
}

// WithLogger sets the logger used for build diagnostics.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// NewSpace builds a similarity space. items[i].ID must equal i and
// vectors[i] is the feature vector of items[i]. Feature indices must be in
// [0, dim); duplicates within a vector are summed.
//
// Construction failures are reported as models.ErrUnavailableArtifact.
func NewSpace(items []models.Item, vectors []Vector, dim int, stats Stats, opts ...Option) (*Space, error) {
	const op = "build similarity space"

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	logger := logging.WithComponent("similarity")
	if o.logger != nil {
		logger = o.logger.With().Str("component", "similarity").Logger()
	}

	n := len(items)
	switch {
	case n == 0:
		return nil, models.NewError(models.KindUnavailableArtifact, op, "catalog is empty", nil)
	case len(vectors) != n:
		return nil, models.NewError(models.KindUnavailableArtifact, op,
			fmt.Sprintf("%d vectors for %d items", len(vectors), n), nil)
	case dim < 1:
		return nil, models.NewError(models.KindUnavailableArtifact, op,
			fmt.Sprintf("dimensionality must be positive, got %d", dim), nil)
	}

	s := &Space{
		items:    make([]models.Item, n),
		vectors:  make([]Vector, n),
		norms:    make([]float64, n),
		postings: make([][]posting, dim),
		dim:      dim,
		stats:    stats,
		logger:   logger,
	}
	copy(s.items, items)

	empty := 0
	for i := range items {
		if items[i].ID != i {
			return nil, models.NewError(models.KindUnavailableArtifact, op,
				fmt.Sprintf("item at position %d has id %d", i, items[i].ID), nil)
		}
		v, err := vectors[i].normalize(dim)
		if err != nil {
			return nil, models.NewError(models.KindUnavailableArtifact, op, fmt.Sprintf("item %d", i), err)
		}
		v = v.scaled()
		nrm := v.norm()
		if math.IsNaN(nrm) || math.IsInf(nrm, 0) {
			return nil, models.NewError(models.KindUnavailableArtifact, op,
				fmt.Sprintf("item %d has a non-finite norm", i), nil)
		}
		s.vectors[i] = v
		s.norms[i] = nrm
		if s.norms[i] == 0 {
			empty++
		}
		// items are visited in ascending order, so every posting list is sorted by item
		for k, f := range v.Indices {
			s.postings[f] = append(s.postings[f], posting{item: i, weight: v.Values[k]})
		}
	}

	if o.cacheRows > 0 {
		cache, err := newRowCache(o.cacheRows, n)
		if err != nil {
			return nil, models.NewError(models.KindUnavailableArtifact, op, "row cache", err)
		}
		s.cache = cache
	}

	metrics.CatalogItems.Set(float64(n))
	logger.Info().
		Int("items", n).
		Int("features", dim).
		Int("empty_vectors", empty).
		Bool("row_cache", s.cache != nil).
		Msg("Similarity space built")

	return s, nil
}

// ItemCount returns N.
func (s *Space) ItemCount() int {
	return len(s.items)
}

// Dim returns the feature dimensionality D.
func (s *Space) Dim() int {
	return s.dim
}

// Stats returns the opaque training summary.
func (s *Space) Stats() Stats {
	return s.stats
}

// Metadata returns the catalog entry for itemID. ok is false for ids
// outside [0, N).
func (s *Space) Metadata(itemID int) (models.Item, bool) {
	if !s.inRange(itemID) {
		return models.Item{}, false
	}
	return s.items[itemID], true
}

// SimilarityRow returns the cosine similarity of itemID to every item.
// The returned slice has length N, is owned by the caller and has
// row[itemID] == 1.0.
func (s *Space) SimilarityRow(itemID int) ([]float64, error) {
	if !s.inRange(itemID) {
		return nil, s.outOfRange("similarity row", itemID)
	}

	if s.cache != nil {
		if row, ok := s.cache.get(itemID); ok {
			return row, nil
		}
	}

	row := s.computeRow(itemID)
	if s.cache != nil {
		s.cache.set(itemID, row)
	}
	return row, nil
}

// Similarity returns the cosine similarity of a and b.
func (s *Space) Similarity(a, b int) (float64, error) {
	if !s.inRange(a) {
		return 0, s.outOfRange("similarity", a)
	}
	if !s.inRange(b) {
		return 0, s.outOfRange("similarity", b)
	}
	if a == b {
		return 1.0, nil
	}
	na, nb := s.norms[a], s.norms[b]
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return clampCosine(dot(s.vectors[a], s.vectors[b]) / (na * nb)), nil
}

// Close releases the row cache. It is safe to call more than once.
func (s *Space) Close() error {
	s.closeOnce.Do(func() {
		if s.cache != nil {
			s.cache.close()
		}
	})
	return nil
}

func (s *Space) computeRow(i int) []float64 {
	metrics.SimilarityRowsComputed.Inc()

	row := make([]float64, len(s.items))
	ni := s.norms[i]
	if ni == 0 {
		row[i] = 1.0
		return row
	}

	// Accumulate dot products feature by feature. Features are visited in
	// ascending order, matching the order used by dot().
	v := s.vectors[i]
	for k, f := range v.Indices {
		w := v.Values[k]
		for _, p := range s.postings[f] {
			row[p.item] += w * p.weight
		}
	}

	for j, d := range row {
		if d == 0 {
			continue
		}
		nj := s.norms[j]
		row[j] = clampCosine(d / (ni * nj))
	}
	row[i] = 1.0
	return row
}

func (s *Space) inRange(itemID int) bool {
	return itemID >= 0 && itemID < len(s.items)
}

func (s *Space) outOfRange(op string, itemID int) error {
	return models.NewError(models.KindOutOfRange, op,
		fmt.Sprintf("item %d not in [0, %d)", itemID, len(s.items)), nil)
}

// clampCosine bounds rounding drift to [-1, 1]. NaN maps to 0.
func clampCosine(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
