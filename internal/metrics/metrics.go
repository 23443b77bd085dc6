// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package metrics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "galleria_recommend_requests_total",
			Help: "Total number of recommend calls",
		},
		[]string{"mode", "status"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "galleria_recommend_duration_seconds",
			Help:    "Duration of recommend calls in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"mode"},
	)

	RecommendAnchors = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "galleria_recommend_anchors",
			Help:    "Number of preference anchors used per recommend call",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
	)

	RecommendSeedOutOfRange = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "galleria_recommend_seed_out_of_range_total",
			Help: "Total number of seed items ignored because they were outside the catalog",
		},
	)

	RecommendResolverErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "galleria_recommend_resolver_errors_total",
			Help: "Total number of preference resolver failures absorbed during recommend",
		},
		[]string{"operation"}, // "liked", "interactions"
	)

	// Similarity Metrics
	SimilarityRowsComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "galleria_similarity_rows_computed_total",
			Help: "Total number of similarity rows computed from the inverted index",
		},
	)

	SimilarityCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "galleria_similarity_cache_hits_total",
			Help: "Total number of similarity row cache hits",
		},
	)

	SimilarityCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "galleria_similarity_cache_misses_total",
			Help: "Total number of similarity row cache misses",
		},
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "galleria_catalog_items",
			Help: "Number of items in the loaded similarity space",
		},
	)

	// Artifact Metrics
	ArtifactLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "galleria_artifact_load_duration_seconds",
			Help:    "Duration of artifact loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"artifact"},
	)

	ArtifactLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "galleria_artifact_load_errors_total",
			Help: "Total number of failed artifact loads",
		},
		[]string{"artifact"},
	)

	// Preference Metrics
	PreferenceQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "galleria_preference_query_duration_seconds",
			Help:    "Duration of preference resolver queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	PreferenceQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "galleria_preference_query_errors_total",
			Help: "Total number of preference resolver query errors",
		},
		[]string{"backend", "operation", "error_type"},
	)

	PreferenceSnapshotRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "galleria_preference_snapshot_records",
			Help: "Number of interaction records in the active snapshot",
		},
	)

	PreferenceSnapshotRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "galleria_preference_snapshot_refreshes_total",
			Help: "Total number of preference snapshot refreshes",
		},
		[]string{"status"},
	)

	PreferenceSnapshotLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "galleria_preference_snapshot_last_success_timestamp",
			Help: "Unix timestamp of the last successful snapshot refresh",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// HTTP Metrics (ops server)
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)
)

// RecordRecommend records a completed recommend call
func RecordRecommend(mode, status string, duration time.Duration, anchors int) {
	RecommendRequests.WithLabelValues(mode, status).Inc()
	RecommendDuration.WithLabelValues(mode).Observe(duration.Seconds())
	RecommendAnchors.Observe(float64(anchors))
}

// RecordArtifactLoad records the load of one artifact file
func RecordArtifactLoad(artifact string, duration time.Duration, err error) {
	ArtifactLoadDuration.WithLabelValues(artifact).Observe(duration.Seconds())
	if err != nil {
		ArtifactLoadErrors.WithLabelValues(artifact).Inc()
	}
}

// RecordPreferenceQuery records a preference backend query
func RecordPreferenceQuery(backend, operation string, duration time.Duration, err error) {
	PreferenceQueryDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		PreferenceQueryErrors.WithLabelValues(backend, operation, classifyError(err)).Inc()
	}
}

// RecordSnapshotRefresh records a snapshot refresh and its outcome
func RecordSnapshotRefresh(records int, err error) {
	if err != nil {
		PreferenceSnapshotRefreshes.WithLabelValues("failure").Inc()
		return
	}
	PreferenceSnapshotRefreshes.WithLabelValues("success").Inc()
	PreferenceSnapshotRecords.Set(float64(records))
	PreferenceSnapshotLastSuccess.Set(float64(time.Now().Unix()))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// classifyError maps an error to a bounded label value.
func classifyError(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "circuit breaker"):
		return "breaker_open"
	case strings.Contains(msg, "no such file"), strings.Contains(msg, "not found"):
		return "not_found"
	case strings.Contains(msg, "parse"), strings.Contains(msg, "conversion"):
		return "parse"
	default:
		return "other"
	}
}
