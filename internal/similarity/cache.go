// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package similarity

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/tomtom215/galleria/internal/metrics"
)

// rowCache holds computed similarity rows keyed by item id.
// Stored rows are never handed out directly; get returns a copy.
type rowCache struct {
	cache *ristretto.Cache[int, []float64]
}

// newRowCache sizes the cache to hold roughly maxRows rows of rowLen entries.
func newRowCache(maxRows int64, rowLen int) (*rowCache, error) {
	if maxRows <= 0 {
		return nil, fmt.Errorf("row cache size must be positive, got %d", maxRows)
	}
	if rowLen < 1 {
		rowLen = 1
	}

	cache, err := ristretto.NewCache(&ristretto.Config[int, []float64]{
		NumCounters:        maxRows * 10,
		MaxCost:            maxRows * int64(rowLen),
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create row cache: %w", err)
	}
	return &rowCache{cache: cache}, nil
}

func (c *rowCache) get(itemID int) ([]float64, bool) {
	row, ok := c.cache.Get(itemID)
	if !ok {
		metrics.SimilarityCacheMisses.Inc()
		return nil, false
	}
	metrics.SimilarityCacheHits.Inc()
	out := make([]float64, len(row))
	copy(out, row)
	return out, true
}

// set stores a private copy of row. Admission is best-effort.
func (c *rowCache) set(itemID int, row []float64) {
	stored := make([]float64, len(row))
	copy(stored, row)
	c.cache.Set(itemID, stored, int64(len(stored)))
}

// wait blocks until buffered writes are applied.
func (c *rowCache) wait() {
	c.cache.Wait()
}

func (c *rowCache) close() {
	c.cache.Close()
}
