// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/galleria/internal/logging"
	"github.com/tomtom215/galleria/internal/preference"
	"github.com/tomtom215/galleria/internal/recommend"
	"github.com/tomtom215/galleria/internal/similarity"
)

// runtime holds what a command opened. Close releases it.
type runtime struct {
	space  *similarity.Space
	prefs  *preference.Handle
	engine *recommend.Engine
}

// openRuntime loads the similarity space and, when withPrefs is set, the
// configured preference backend, then builds the engine over them.
func (o *options) openRuntime(ctx context.Context, withPrefs bool) (*runtime, error) {
	space, err := similarity.Load(ctx, o.cfg.LoadConfig())
	if err != nil {
		return nil, err
	}
	rt := &runtime{space: space}

	var resolver preference.Resolver
	if withPrefs {
		h, err := preference.OpenHandle(ctx, o.cfg.PreferenceConfig())
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.prefs = h
		resolver = h.Resolver
	}

	engine, err := recommend.NewEngine(space, resolver, o.cfg.EngineConfig(), logging.Logger())
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("create engine: %w", err)
	}
	rt.engine = engine
	return rt, nil
}

// Close releases the preference backend and the space.
func (r *runtime) Close() {
	if r.prefs != nil {
		if err := r.prefs.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing preference backend")
		}
	}
	if r.space != nil {
		if err := r.space.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing similarity space")
		}
	}
}
