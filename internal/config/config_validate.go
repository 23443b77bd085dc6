// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/galleria/internal/logging"
	"github.com/tomtom215/galleria/internal/preference"
	"github.com/tomtom215/galleria/internal/validation"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateArtifacts(); err != nil {
		return err
	}

	if err := c.validateSimilarity(); err != nil {
		return err
	}

	if err := c.validatePreferences(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateArtifacts() error {
	if strings.TrimSpace(c.Artifacts.Dir) == "" {
		return errors.New("ARTIFACTS_DIR is required")
	}
	if c.Artifacts.DuckDBMemory != "" {
		if err := validation.ValidateVar(c.Artifacts.DuckDBMemory, "memsize"); err != nil {
			return fmt.Errorf("ARTIFACTS_DUCKDB_MEMORY must be a size such as 512MB or 2GB, got %q", c.Artifacts.DuckDBMemory)
		}
	}
	if c.Artifacts.DuckDBThreads < 0 {
		return fmt.Errorf("ARTIFACTS_DUCKDB_THREADS must be non-negative, got %d", c.Artifacts.DuckDBThreads)
	}
	return nil
}

func (c *Config) validateSimilarity() error {
	if c.Similarity.CacheEnabled && c.Similarity.CacheMaxRows <= 0 {
		return fmt.Errorf("SIMILARITY_CACHE_MAX_ROWS must be positive when the cache is enabled, got %d", c.Similarity.CacheMaxRows)
	}
	return nil
}

func (c *Config) validatePreferences() error {
	switch c.Preferences.Backend {
	case preference.BackendDuckDB, preference.BackendSnapshot:
		if c.Preferences.LogPath == "" {
			return fmt.Errorf("PREFERENCES_LOG_PATH is required for the %s backend", c.Preferences.Backend)
		}
	case preference.BackendBadger:
		if c.Preferences.BadgerPath == "" {
			return errors.New("PREFERENCES_BADGER_PATH is required for the badger backend")
		}
	default:
		return fmt.Errorf("PREFERENCES_BACKEND must be one of duckdb, badger, snapshot, got %q", c.Preferences.Backend)
	}

	if c.Preferences.RefreshInterval <= 0 {
		return fmt.Errorf("PREFERENCES_REFRESH_INTERVAL must be positive, got %v", c.Preferences.RefreshInterval)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	return c.EngineConfig().Validate()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return errors.New("HTTP read and write timeouts must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitRequests <= 0 {
			return fmt.Errorf("HTTP_RATE_LIMIT_REQUESTS must be positive, got %d", c.Server.RateLimitRequests)
		}
		if c.Server.RateLimitWindow <= 0 {
			return fmt.Errorf("HTTP_RATE_LIMIT_WINDOW must be positive, got %v", c.Server.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, disabled, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
