// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

// Package recommend implements the artwork recommendation engine.
//
// # Scoring
//
// A query may carry a seed item, a user id and a list of explicitly liked
// items. Anchors are the user's liked items unioned with the explicit likes,
// deduplicated, with ids outside the catalog dropped.
//
// Content mode (seed present and in range):
//
//	scores = row(seed) + BoostWeight * sum over anchors a of row(a)
//
// Personalized mode (no usable seed, at least one anchor):
//
//	scores = mean over anchors a of row(a)
//	scores[i] *= SuppressionFactor for every item the user has rated
//
// With neither a seed nor anchors the engine returns a NoSignal result
// together with models.ErrNoSignal.
//
// Items are ranked by descending score with ties broken by ascending item
// id. The seed is never recommended. The list is cut to TopK, which is
// clamped to [1, N-1]; a zero TopK takes Config.DefaultK.
//
// The two modes combine rows differently on purpose: a seed query reacts
// strongly to its single seed, while a discovery query averages so prolific
// likers are not over-weighted.
//
// # Failure Handling
//
// An out-of-range seed is treated as no seed. A resolver failure mid-request
// is logged, counted and treated as an empty history, so the caller still
// gets a best-effort answer. NoSignal is the only error Recommend returns
// for a well-formed engine.
//
// # Usage
//
//	engine, err := recommend.NewEngine(space, resolver, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	seed := 42
//	result, err := engine.Recommend(ctx, recommend.Query{SeedItem: &seed, TopK: 10})
//
// # Thread Safety
//
// The engine holds no mutable state and is safe for concurrent use.
package recommend
