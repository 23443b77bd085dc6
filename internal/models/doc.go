// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package models defines data structures shared across Galleria.

It is the single source of truth for types that cross package boundaries:

  - Item: an artwork in the catalog, addressed by a dense integer index
  - Error / Kind: the error taxonomy (OutOfRange, NoSignal, UnavailableArtifact)
  - APIResponse / APIError / Metadata: the structured response envelope printed by
    callers of the recommendation engine

Models carry JSON tags for the artifact bundle and the response envelope, and
validate tags for go-playground/validator (see internal/validation).

Categorical attributes (artist, genre, style) are opaque integer ids produced by
the training pipeline. Resolving them to display names is a presentation concern
and never happens in this module.
*/
package models
