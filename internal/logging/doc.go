// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

// Package logging provides centralized zerolog-based logging for Galleria.
//
// A process-wide logger is configured once from main via Init. Components
// receive a child logger by value, tagged with a component field:
//
//	logger := logging.WithComponent("recommend")
//	logger.Info().Int("items", n).Msg("space loaded")
//
// Request-scoped fields ride in the context:
//
//	ctx = logging.ContextWithRequestID(ctx, id)
//	logging.Ctx(ctx).Debug().Msg("resolving anchors")
//
// # Configuration
//
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
//
// Libraries that take a *slog.Logger (sutureslog) are bridged through
// NewSlogLogger so every line ends up in the same zerolog stream.
//
// Always terminate event chains with Msg or Send; an unterminated chain is
// never written.
package logging
