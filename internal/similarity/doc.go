// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

// Package similarity holds the immutable item similarity space that the
// recommendation engine scores against.
//
// # Model
//
// A Space is built once from N items and their sparse feature vectors of
// dimensionality D (TF-IDF weights produced by the offline training job).
// Similarity between two items is the cosine of their vectors:
//
//	sim(i, j) = dot(v_i, v_j) / (|v_i| * |v_j|)
//
// The N x N matrix is never materialized. SimilarityRow computes one row on
// demand through an inverted index (feature -> postings), touching only the
// items that share at least one feature with the query item.
//
// # Guarantees
//
//   - sim(i, i) == 1.0 for every item, including items with an empty vector
//   - sim(i, j) == sim(j, i) bit for bit: dot products accumulate over shared
//     features in ascending feature order regardless of which side is the row
//   - an item with an all-zero vector has similarity 0 to every other item
//
// # Loading
//
// Load reads an artifact directory:
//
//	models/
//	  features.parquet   (or features.csv) COO triplets item_id, feature, weight
//	  metadata.json      JSON array of items
//	  model_info.json    opaque training summary
//
// The three files are read concurrently. Any failure is reported as a
// models.ErrUnavailableArtifact error; there is no fallback catalog.
//
// # Caching
//
// WithRowCache enables a ristretto cache of computed rows keyed by item id
// with cost equal to the row length. SimilarityRow always returns a slice
// owned by the caller, cached or not.
//
// # Thread Safety
//
// A Space is read-only after construction and safe for concurrent use.
package similarity
