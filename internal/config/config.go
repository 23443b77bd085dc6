// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package config

import (
	"time"

	"github.com/tomtom215/galleria/internal/api"
	"github.com/tomtom215/galleria/internal/database"
	"github.com/tomtom215/galleria/internal/logging"
	"github.com/tomtom215/galleria/internal/preference"
	"github.com/tomtom215/galleria/internal/recommend"
	"github.com/tomtom215/galleria/internal/similarity"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file
//  3. Environment Variables: Override any mapped setting
type Config struct {
	Artifacts   ArtifactsConfig   `koanf:"artifacts"`
	Similarity  SimilarityConfig  `koanf:"similarity"`
	Preferences PreferencesConfig `koanf:"preferences"`
	Recommend   RecommendConfig   `koanf:"recommend"`
	Server      ServerConfig      `koanf:"server"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// ArtifactsConfig locates the trained artifact bundle.
type ArtifactsConfig struct {
	// Dir holds features.{csv,parquet}, metadata.json and model_info.json.
	Dir string `koanf:"dir"`

	// DuckDBMemory caps the in-memory DuckDB used to read tabular artifacts
	// and the interaction log.
	DuckDBMemory string `koanf:"duckdb_memory"`

	// DuckDBThreads caps DuckDB worker threads. Zero leaves the DuckDB default.
	DuckDBThreads int `koanf:"duckdb_threads"`
}

// SimilarityConfig tunes the similarity row cache.
type SimilarityConfig struct {
	CacheEnabled bool  `koanf:"cache_enabled"`
	CacheMaxRows int64 `koanf:"cache_max_rows"`
}

// PreferencesConfig selects and tunes the interaction log backend.
type PreferencesConfig struct {
	Backend         string        `koanf:"backend"`
	LogPath         string        `koanf:"log_path"`
	BadgerPath      string        `koanf:"badger_path"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	BreakerEnabled  bool          `koanf:"breaker_enabled"`
}

// RecommendConfig tunes the engine.
type RecommendConfig struct {
	DefaultK   int `koanf:"default_k"`
	MaxAnchors int `koanf:"max_anchors"`
}

// ServerConfig configures the ops HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Rate limiting per client IP on the ops endpoints
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// CORSAllowedOrigins enables CORS for the listed origins (YAML only).
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// LoggingConfig configures zerolog.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DuckDB returns the DuckDB settings shared by the loader and the log reader.
func (c *Config) DuckDB() database.Config {
	return database.Config{
		MaxMemory: c.Artifacts.DuckDBMemory,
		Threads:   c.Artifacts.DuckDBThreads,
	}
}

// LoadConfig returns the artifact loader configuration.
func (c *Config) LoadConfig() similarity.LoadConfig {
	cfg := similarity.LoadConfig{
		Dir:    c.Artifacts.Dir,
		DuckDB: c.DuckDB(),
	}
	if c.Similarity.CacheEnabled {
		cfg.CacheMaxRows = c.Similarity.CacheMaxRows
	}
	return cfg
}

// PreferenceConfig returns the resolver configuration.
func (c *Config) PreferenceConfig() preference.Config {
	return preference.Config{
		Backend:         c.Preferences.Backend,
		LogPath:         c.Preferences.LogPath,
		BadgerPath:      c.Preferences.BadgerPath,
		RefreshInterval: c.Preferences.RefreshInterval,
		BreakerEnabled:  c.Preferences.BreakerEnabled,
		DuckDB:          c.DuckDB(),
	}
}

// EngineConfig returns the recommendation engine configuration.
func (c *Config) EngineConfig() *recommend.Config {
	return &recommend.Config{
		DefaultK:   c.Recommend.DefaultK,
		MaxAnchors: c.Recommend.MaxAnchors,
	}
}

// RouterConfig returns the ops router middleware settings.
func (c *Config) RouterConfig() api.RouterConfig {
	return api.RouterConfig{
		RateLimitRequests:  c.Server.RateLimitRequests,
		RateLimitWindow:    c.Server.RateLimitWindow,
		RateLimitDisabled:  c.Server.RateLimitDisabled,
		CORSAllowedOrigins: c.Server.CORSAllowedOrigins,
	}
}

// LoggingSettings returns the logger configuration.
func (c *Config) LoggingSettings() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}
