// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package config provides centralized configuration management for Galleria.

Configuration is layered with Koanf v2: struct defaults, then an optional
YAML file, then mapped environment variables. The first config file found
among CONFIG_PATH, config.yaml, config.yml, /etc/galleria/config.yaml and
/etc/galleria/config.yml is used.

# Environment Variables

Artifacts:
  - ARTIFACTS_DIR: artifact bundle directory (default: ./models)
  - ARTIFACTS_DUCKDB_MEMORY: DuckDB memory cap (default: 512MB)
  - ARTIFACTS_DUCKDB_THREADS: DuckDB threads (default: DuckDB's own)

Similarity:
  - SIMILARITY_CACHE_ENABLED: cache computed rows (default: true)
  - SIMILARITY_CACHE_MAX_ROWS: maximum cached rows (default: 4096)

Preferences:
  - PREFERENCES_BACKEND: duckdb, badger or snapshot (default: duckdb)
  - PREFERENCES_LOG_PATH: CSV or Parquet interaction log (default: ./data/interactions.csv)
  - PREFERENCES_BADGER_PATH: BadgerDB directory (default: ./data/interactions)
  - PREFERENCES_REFRESH_INTERVAL: snapshot refresh period (default: 1m)
  - PREFERENCES_BREAKER_ENABLED: circuit breaker around the backend (default: true)

Recommend:
  - RECOMMEND_DEFAULT_K: result size when top_k is omitted (default: 10)
  - RECOMMEND_MAX_ANCHORS: anchors per request, 0 for no cap (default: 0)

Ops HTTP server:
  - HTTP_HOST: bind address (default: 127.0.0.1)
  - HTTP_PORT: listen port (default: 9464)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT (default: 10s)
  - HTTP_RATE_LIMIT_REQUESTS, HTTP_RATE_LIMIT_WINDOW: ops rate limit per IP (default: 100 per 1m)
  - HTTP_RATE_LIMIT_DISABLED: turn the ops rate limit off (default: false)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: include caller file:line (default: false)

# Usage

	cfg, err := config.Load("")
	if err != nil {
	    return err
	}
	space, err := similarity.Load(ctx, cfg.LoadConfig())

Configuration is loaded once at start-up. WatchConfigFile lets the serve
command re-apply the log level when the file changes; no other setting is
hot-reloaded.
*/
package config
