// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package recommend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/galleria/internal/logging"
	"github.com/tomtom215/galleria/internal/metrics"
	"github.com/tomtom215/galleria/internal/models"
	"github.com/tomtom215/galleria/internal/preference"
	"github.com/tomtom215/galleria/internal/similarity"
)

// Engine scores and ranks catalog items for a query.
type Engine struct {
	space    Space
	resolver preference.Resolver
	config   *Config
	logger   zerolog.Logger
}

// NewEngine creates a recommendation engine. A nil resolver disables
// user-based queries; a nil cfg uses DefaultConfig.
//
//nolint:gocritic // hugeParam: zerolog.Logger is passed by value per zerolog convention
func NewEngine(space Space, resolver preference.Resolver, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if space == nil {
		return nil, errors.New("similarity space is required")
	}
	if space.ItemCount() < 1 {
		return nil, errors.New("similarity space is empty")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		space:    space,
		resolver: resolver,
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// ItemCount returns the catalog size.
func (e *Engine) ItemCount() int {
	return e.space.ItemCount()
}

// Metadata returns the catalog entry for an id.
func (e *Engine) Metadata(itemID int) (models.Item, bool) {
	return e.space.Metadata(itemID)
}

// Stats returns the training summary of the loaded space.
func (e *Engine) Stats() similarity.Stats {
	return e.space.Stats()
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Recommend ranks items for q.
//
// When the query carries no usable signal the returned result has status
// no_signal and zero entries, and the error matches models.ErrNoSignal.
//
//nolint:gocritic // hugeParam: Query is passed by value so callers can reuse it
func (e *Engine) Recommend(ctx context.Context, q Query) (*Result, error) {
	start := time.Now()
	q = e.prepareQuery(q)
	ctx = logging.ContextWithRequestID(ctx, q.RequestID)
	logger := e.createRequestLogger(q)

	n := e.space.ItemCount()
	seed, hasSeed := e.resolveSeed(q, logger)
	anchors := e.collectAnchors(ctx, q, &logger)

	var (
		scores []float64
		mode   Mode
		err    error
	)
	switch {
	case hasSeed:
		mode = ModeContent
		scores, err = e.contentScores(seed, anchors)
	case len(anchors) > 0:
		mode = ModePersonalized
		scores, err = e.personalizedScores(anchors)
		if err == nil {
			e.suppress(ctx, q, scores, &logger)
		}
	default:
		result := &Result{
			Recommendations: []Recommendation{},
			Status:          StatusNoSignal,
			Mode:            ModeNone,
			RequestID:       q.RequestID,
			Latency:         time.Since(start),
		}
		metrics.RecordRecommend(string(ModeNone), string(StatusNoSignal), result.Latency, 0)
		logger.Debug().Msg("No seed and no anchors")
		return result, models.NewError(models.KindNoSignal, "recommend",
			"query has no seed item and no likes", nil)
	}
	if err != nil {
		// Rows only fail for ids the engine already range-checked.
		metrics.RecordRecommend(string(mode), "error", time.Since(start), len(anchors))
		return nil, fmt.Errorf("score %s query: %w", mode, err)
	}

	k := clampK(q.TopK, n)
	ranked := rank(scores, seed, hasSeed, k)

	recs := make([]Recommendation, len(ranked))
	for i, id := range ranked {
		recs[i] = Recommendation{
			ItemID:   id,
			Score:    scores[id],
			Metadata: e.view(id),
		}
	}

	result := &Result{
		Recommendations: recs,
		Count:           len(recs),
		Status:          StatusOK,
		Mode:            mode,
		Anchors:         len(anchors),
		RequestID:       q.RequestID,
		Latency:         time.Since(start),
	}
	metrics.RecordRecommend(string(mode), string(StatusOK), result.Latency, len(anchors))

	logger.Debug().
		Str("mode", string(mode)).
		Int("anchors", len(anchors)).
		Int("count", result.Count).
		Dur("latency", result.Latency).
		Msg("Recommendations generated")

	return result, nil
}

//nolint:gocritic // hugeParam: Query is passed by value
func (e *Engine) prepareQuery(q Query) Query {
	if q.RequestID == "" {
		q.RequestID = logging.GenerateRequestID()
	}
	if q.TopK == 0 {
		q.TopK = e.config.DefaultK
	}
	return q
}

//nolint:gocritic // hugeParam: Query is passed by value
func (e *Engine) createRequestLogger(q Query) zerolog.Logger {
	ctx := e.logger.With().Str("request_id", q.RequestID)
	if q.SeedItem != nil {
		ctx = ctx.Int("seed_item", *q.SeedItem)
	}
	if q.UserID != nil {
		ctx = ctx.Int("user_id", *q.UserID)
	}
	return ctx.Logger()
}

// resolveSeed reports the seed to use. An out-of-range seed is dropped.
//
//nolint:gocritic // hugeParam: Query and zerolog.Logger are passed by value
func (e *Engine) resolveSeed(q Query, logger zerolog.Logger) (int, bool) {
	if q.SeedItem == nil {
		return 0, false
	}
	seed := *q.SeedItem
	if seed < 0 || seed >= e.space.ItemCount() {
		metrics.RecommendSeedOutOfRange.Inc()
		logger.Debug().Int("item_count", e.space.ItemCount()).Msg("Seed item out of range, ignoring")
		return 0, false
	}
	return seed, true
}

// collectAnchors returns the deduplicated in-range anchors in ascending order.
//
//nolint:gocritic // hugeParam: Query is passed by value
func (e *Engine) collectAnchors(ctx context.Context, q Query, logger *zerolog.Logger) []int {
	n := e.space.ItemCount()
	set := make(map[int]struct{}, len(q.ExplicitLikes))

	if q.UserID != nil && e.resolver != nil {
		liked, err := e.resolver.LikedItems(ctx, *q.UserID)
		if err != nil {
			e.absorbResolverError("liked_items", err, logger)
		}
		for id := range liked {
			set[id] = struct{}{}
		}
	}
	for _, id := range q.ExplicitLikes {
		set[id] = struct{}{}
	}

	anchors := make([]int, 0, len(set))
	for id := range set {
		if id >= 0 && id < n {
			anchors = append(anchors, id)
		}
	}
	sort.Ints(anchors)

	if limit := e.config.MaxAnchors; limit > 0 && len(anchors) > limit {
		logger.Debug().Int("anchors", len(anchors)).Int("max_anchors", limit).Msg("Capping anchors")
		anchors = anchors[:limit]
	}
	return anchors
}

// contentScores is row(seed) plus BoostWeight times each anchor row.
func (e *Engine) contentScores(seed int, anchors []int) ([]float64, error) {
	scores, err := e.space.SimilarityRow(seed)
	if err != nil {
		return nil, err
	}
	for _, a := range anchors {
		row, err := e.space.SimilarityRow(a)
		if err != nil {
			return nil, err
		}
		for j := range scores {
			scores[j] += BoostWeight * row[j]
		}
	}
	return scores, nil
}

// personalizedScores is the mean of the anchor rows. Rows are summed in
// ascending anchor order so identical queries give bit-identical scores.
func (e *Engine) personalizedScores(anchors []int) ([]float64, error) {
	scores := make([]float64, e.space.ItemCount())
	for _, a := range anchors {
		row, err := e.space.SimilarityRow(a)
		if err != nil {
			return nil, err
		}
		for j := range scores {
			scores[j] += row[j]
		}
	}
	count := float64(len(anchors))
	for j := range scores {
		scores[j] /= count
	}
	return scores, nil
}

// suppress down-weights every item the user has interacted with.
//
//nolint:gocritic // hugeParam: Query is passed by value
func (e *Engine) suppress(ctx context.Context, q Query, scores []float64, logger *zerolog.Logger) {
	if q.UserID == nil || e.resolver == nil {
		return
	}
	seen, err := e.resolver.AllInteractions(ctx, *q.UserID)
	if err != nil {
		e.absorbResolverError("all_interactions", err, logger)
		return
	}
	for id := range seen {
		if id >= 0 && id < len(scores) {
			scores[id] *= SuppressionFactor
		}
	}
}

func (e *Engine) absorbResolverError(operation string, err error, logger *zerolog.Logger) {
	metrics.RecommendResolverErrors.WithLabelValues(operation).Inc()
	logger.Warn().Err(err).Str("operation", operation).Msg("Preference resolver failed, continuing without history")
}

func (e *Engine) view(id int) models.View {
	if item, ok := e.space.Metadata(id); ok {
		return item.View()
	}
	return models.View{ID: id}
}

// clampK bounds k to [1, max(n-1, 1)].
func clampK(k, n int) int {
	upper := n - 1
	if upper < 1 {
		upper = 1
	}
	if k < 1 {
		return 1
	}
	if k > upper {
		return upper
	}
	return k
}

// rank orders candidate ids by descending score then ascending id and keeps
// the first k. The seed is never a candidate.
func rank(scores []float64, seed int, hasSeed bool, k int) []int {
	candidates := make([]int, 0, len(scores))
	for id := range scores {
		if hasSeed && id == seed {
			continue
		}
		candidates = append(candidates, id)
	}

	slices.SortFunc(candidates, func(a, b int) int {
		switch {
		case scores[a] > scores[b]:
			return -1
		case scores[a] < scores[b]:
			return 1
		default:
			return a - b
		}
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}
