// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package services provides suture.Service wrappers for galleria components.

Each wrapper implements:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer so suture can name it in event logs.

# Available Services

HTTPServerService:
  - Runs the ops *http.Server (health, readiness, metrics)
  - Graceful Shutdown on context cancellation, bounded by a timeout

RefreshService:
  - Reloads the interaction snapshot every refresh interval
  - A failed reload is logged; the previous snapshot keeps serving
*/
package services
