// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package preference resolves a user's historical like/rating interactions
into item sets consumed by the recommendation engine.

# Resolver Contract

	LikedItems(ctx, userID)      -> items whose latest record has rating >= 1
	AllInteractions(ctx, userID) -> every item the user has a record for

Both return a fresh, caller-owned set. Unknown users resolve to an empty
set, never an error. Resolvers never write.

When the log holds more than one record for a (user, item) pair the most
recent one wins. Records are folded in log order: an untimestamped record
replaces the current winner, and a timestamped record replaces it unless
its rated_at is older than the newest rated_at already seen for the pair.
Equal timestamps fall back to log order. A user whose latest record for an item is a 0 still
"interacted" with it but no longer "likes" it.

# Backends

  - DuckDBLog: CSV or Parquet interaction log scanned in place on every call
  - BadgerLog: durable key-value log, written only by Like/Unlike/Rate
  - Snapshot: immutable in-memory index, atomically replaceable
  - Guarded: circuit breaker wrapper around any Resolver

Open selects a backend from Config:

	resolver, closer, err := preference.Open(ctx, cfg)
	if err != nil {
	    return err // models.ErrUnavailableArtifact
	}
	defer closer.Close()

# Log Schema

	user_id  INTEGER  required
	item_id  INTEGER  required
	rating   INTEGER  required (1 = liked, 0 = rated but not liked)
	rated_at TIMESTAMP optional
*/
package preference
