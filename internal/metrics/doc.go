// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto at
package initialization, so any package may record into them without wiring.

# Metrics Endpoint

Metrics are exposed by the ops HTTP server in Prometheus text format:

	curl http://127.0.0.1:9464/metrics

# Available Metrics

Recommendation Metrics:
  - galleria_recommend_requests_total: Recommend calls (counter)
    Labels: mode (content, personalized, none), status (ok, no_signal)
  - galleria_recommend_duration_seconds: Recommend latency (histogram)
    Labels: mode
  - galleria_recommend_anchors: Preference anchors per request (histogram)
  - galleria_recommend_seed_out_of_range_total: Seeds ignored as out of range (counter)
  - galleria_recommend_resolver_errors_total: Absorbed resolver failures (counter)
    Labels: operation (liked, interactions)

Similarity Metrics:
  - galleria_similarity_rows_computed_total: Rows computed from the index (counter)
  - galleria_similarity_cache_hits_total / _misses_total: Row cache efficiency (counters)
  - galleria_catalog_items: Items in the loaded space (gauge)

Artifact Metrics:
  - galleria_artifact_load_duration_seconds: Per-artifact load time (histogram)
    Labels: artifact (features, metadata, model_info)
  - galleria_artifact_load_errors_total: Failed artifact loads (counter)
    Labels: artifact

Preference Metrics:
  - galleria_preference_query_duration_seconds: Resolver backend latency (histogram)
    Labels: backend, operation
  - galleria_preference_query_errors_total: Resolver backend failures (counter)
    Labels: backend, operation, error_type
  - galleria_preference_snapshot_records: Records in the active snapshot (gauge)
  - galleria_preference_snapshot_refreshes_total: Snapshot refreshes (counter)
    Labels: status (success, failure)

Circuit Breaker Metrics:
  - circuit_breaker_state, circuit_breaker_requests_total,
    circuit_breaker_state_transitions_total

HTTP Metrics:
  - http_requests_total, http_request_duration_seconds, http_requests_in_flight
*/
package metrics
