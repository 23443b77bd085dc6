// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SnapshotRefresher reloads an in-memory interaction snapshot.
// *preference.Handle satisfies it.
type SnapshotRefresher interface {
	// Refresh re-reads the log and returns the number of records loaded.
	Refresh(ctx context.Context) (int, error)
}

// RefreshService periodically reloads the interaction snapshot.
//
// A failed refresh is logged and the previous snapshot keeps serving; the
// service only returns when its context is canceled.
type RefreshService struct {
	refresher SnapshotRefresher
	interval  time.Duration
	timeout   time.Duration
	logger    zerolog.Logger
	name      string
}

// NewRefreshService creates a snapshot refresh service. A non-positive
// interval falls back to one minute.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(refresher SnapshotRefresher, interval time.Duration, logger zerolog.Logger) *RefreshService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &RefreshService{
		refresher: refresher,
		interval:  interval,
		timeout:   interval,
		logger:    logger.With().Str("service", "snapshot-refresh").Logger(),
		name:      "snapshot-refresh",
	}
}

// Serve implements the suture.Service interface.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.interval).
		Msg("snapshot refresh service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("snapshot refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// refresh runs one reload bounded by the refresh interval.
func (s *RefreshService) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	records, err := s.refresher.Refresh(refreshCtx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).Msg("snapshot refresh failed, keeping previous snapshot")
		return
	}

	s.logger.Debug().
		Int("records", records).
		Dur("duration", time.Since(start)).
		Msg("snapshot refreshed")
}

// String returns the service name for logging.
func (s *RefreshService) String() string {
	return s.name
}
