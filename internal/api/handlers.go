// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package api

import (
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/galleria/internal/logging"
	"github.com/tomtom215/galleria/internal/models"
	"github.com/tomtom215/galleria/internal/similarity"
)

// Catalog is the introspection surface of the loaded engine.
type Catalog interface {
	ItemCount() int
	Stats() similarity.Stats
}

// breakerReporter is implemented by resolvers wrapped in a circuit breaker.
type breakerReporter interface {
	State() gobreaker.State
}

// SnapshotStats is the size of an in-memory preference snapshot.
type SnapshotStats interface {
	Len() int
	Users() int
}

// Preferences describes the active preference backend.
type Preferences struct {
	Backend string

	// Resolver is only inspected for breaker state.
	Resolver any

	// Snapshot is nil unless reads are served from a snapshot.
	Snapshot SnapshotStats
}

// Handler serves the ops endpoints.
type Handler struct {
	catalog   Catalog
	prefs     Preferences
	startTime time.Time
}

// NewHandler creates the ops handler. catalog may be nil while artifacts
// are still loading.
//
//nolint:gocritic // hugeParam: Preferences is read once
func NewHandler(catalog Catalog, prefs Preferences) *Handler {
	return &Handler{
		catalog:   catalog,
		prefs:     prefs,
		startTime: time.Now(),
	}
}

// SnapshotStatus reports the records and users held by the snapshot.
type SnapshotStatus struct {
	Records int `json:"records"`
	Users   int `json:"users"`
}

// ReadyStatus is the /readyz payload.
type ReadyStatus struct {
	Ready        bool            `json:"ready"`
	ItemCount    int             `json:"item_count"`
	Backend      string          `json:"preference_backend,omitempty"`
	BreakerState string          `json:"breaker_state,omitempty"`
	Snapshot     *SnapshotStatus `json:"snapshot,omitempty"`
	TrainedAt    string          `json:"trained_at,omitempty"`
	Uptime       float64         `json:"uptime_seconds"`
}

// Healthz is the liveness probe.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	resp := models.NewSuccessResponse(map[string]interface{}{
		"alive":          true,
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	}, logging.RequestIDFromContext(r.Context()), 0)
	respondJSON(w, r, http.StatusOK, &resp)
}

// Readyz is the readiness probe. An open breaker is reported but does not
// make the process unready: the engine still answers without history.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	status := ReadyStatus{
		Backend: h.prefs.Backend,
		Uptime:  time.Since(h.startTime).Seconds(),
	}
	if h.catalog != nil {
		status.ItemCount = h.catalog.ItemCount()
		if trainedAt, ok := h.catalog.Stats().TrainedAt(); ok {
			status.TrainedAt = trainedAt
		}
	}
	status.Ready = status.ItemCount > 0
	if br, ok := h.prefs.Resolver.(breakerReporter); ok {
		status.BreakerState = br.State().String()
	}
	if h.prefs.Snapshot != nil {
		status.Snapshot = &SnapshotStatus{
			Records: h.prefs.Snapshot.Len(),
			Users:   h.prefs.Snapshot.Users(),
		}
	}

	requestID := logging.RequestIDFromContext(r.Context())
	if !status.Ready {
		err := models.NewError(models.KindUnavailableArtifact, "readyz", "similarity space not loaded", nil)
		resp := models.NewErrorResponse(err, status, requestID)
		respondJSON(w, r, http.StatusServiceUnavailable, &resp)
		return
	}
	resp := models.NewSuccessResponse(status, requestID, 0)
	respondJSON(w, r, http.StatusOK, &resp)
}

// NotFound answers unknown routes with the standard envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, models.NewError(models.KindUnknown, "route", "no such endpoint: "+r.URL.Path, nil))
}
