// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package preference

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tomtom215/galleria/internal/database"
	"github.com/tomtom215/galleria/internal/logging"
	"github.com/tomtom215/galleria/internal/metrics"
	"github.com/tomtom215/galleria/internal/models"
)

// Backend names accepted by Open.
const (
	BackendDuckDB   = backendDuckDB
	BackendBadger   = backendBadger
	BackendSnapshot = "snapshot"
)

// Config selects and configures the interaction log backend.
type Config struct {
	// Backend is one of duckdb, badger or snapshot.
	Backend string `koanf:"backend" validate:"oneof=duckdb badger snapshot"`

	// LogPath is the CSV/Parquet log scanned by the duckdb and snapshot backends.
	LogPath string `koanf:"log_path"`

	// BadgerPath is the BadgerDB directory for the badger backend.
	BadgerPath string `koanf:"badger_path"`

	// RefreshInterval is how often the snapshot backend re-reads the log.
	RefreshInterval time.Duration `koanf:"refresh_interval" validate:"gt=0"`

	// BreakerEnabled wraps the backend in a circuit breaker.
	BreakerEnabled bool `koanf:"breaker_enabled"`

	// DuckDB configures the engine used by the duckdb and snapshot backends.
	DuckDB database.Config `koanf:"-"`
}

// Handle is an opened backend.
type Handle struct {
	// Backend is the configured backend name.
	Backend string

	// Resolver is what the engine queries (possibly guarded).
	Resolver Resolver

	// Snapshot is set for the snapshot backend so it can be refreshed.
	Snapshot *Snapshot

	// Source re-reads the full log for snapshot refreshes (snapshot backend).
	Source Source

	// Location is the log file or store directory reads come from.
	Location string

	// Badger is set for the badger backend, exposing Like/Unlike/Rate.
	Badger *BadgerLog

	closers []io.Closer
}

// Close releases every resource held by the handle.
func (h *Handle) Close() error {
	var firstErr error
	for i := len(h.closers) - 1; i >= 0; i-- {
		if err := h.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	h.closers = nil
	return firstErr
}

// Refreshable reports whether the handle serves a snapshot that Refresh can reload.
func (h *Handle) Refreshable() bool {
	return h.Snapshot != nil && h.Source != nil
}

// Refresh re-reads the full log and swaps it into the snapshot. On failure
// the previous snapshot keeps serving.
func (h *Handle) Refresh(ctx context.Context) (int, error) {
	if !h.Refreshable() {
		return 0, fmt.Errorf("backend %q has no snapshot to refresh", h.Backend)
	}
	records, err := h.Source.Records(ctx)
	metrics.RecordSnapshotRefresh(len(records), err)
	if err != nil {
		return 0, fmt.Errorf("refresh interaction snapshot: %w", err)
	}
	h.Snapshot.Replace(records)
	return len(records), nil
}

// Open picks a backend from cfg. The returned closer releases it.
// Failures are models.ErrUnavailableArtifact errors.
//
//nolint:gocritic // hugeParam: Config is read once
func Open(ctx context.Context, cfg Config) (Resolver, io.Closer, error) {
	h, err := OpenHandle(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return h.Resolver, h, nil
}

// OpenHandle is Open with access to the concrete backend.
//
//nolint:gocritic // hugeParam: Config is read once
func OpenHandle(ctx context.Context, cfg Config) (*Handle, error) {
	logger := logging.WithComponent("preference")
	h := &Handle{Backend: cfg.Backend}

	switch cfg.Backend {
	case BackendDuckDB:
		l, err := OpenDuckDBLog(ctx, cfg.LogPath, cfg.DuckDB)
		if err != nil {
			return nil, err
		}
		h.closers = append(h.closers, l)
		h.Resolver = l
		h.Location = l.Path()

	case BackendBadger:
		l, err := OpenBadgerLog(BadgerOptions{Path: cfg.BadgerPath})
		if err != nil {
			return nil, err
		}
		h.closers = append(h.closers, l)
		h.Resolver = l
		h.Badger = l
		h.Location = cfg.BadgerPath

	case BackendSnapshot:
		l, err := OpenDuckDBLog(ctx, cfg.LogPath, cfg.DuckDB)
		if err != nil {
			return nil, err
		}
		h.closers = append(h.closers, l)
		h.Location = l.Path()

		records, err := l.Records(ctx)
		metrics.RecordSnapshotRefresh(len(records), err)
		if err != nil {
			_ = h.Close()
			return nil, models.Unavailable("load interaction snapshot", err)
		}
		h.Snapshot = NewSnapshot(records)
		h.Source = l
		h.Resolver = h.Snapshot
		logger.Debug().Int("records", h.Snapshot.Len()).Int("users", h.Snapshot.Users()).Msg("Interaction snapshot loaded")

	default:
		return nil, models.NewError(models.KindUnavailableArtifact, "open preferences",
			fmt.Sprintf("unknown backend %q", cfg.Backend), nil)
	}

	if cfg.BreakerEnabled {
		h.Resolver = NewGuarded(h.Resolver, DefaultBreakerConfig())
	}

	logger.Info().
		Str("backend", cfg.Backend).
		Str("source", h.Location).
		Bool("breaker", cfg.BreakerEnabled).
		Msg("Preference backend opened")

	return h, nil
}
