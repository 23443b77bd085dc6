// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package config

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty artifacts dir", func(c *Config) { c.Artifacts.Dir = " " }, true},
		{"bad duckdb memory", func(c *Config) { c.Artifacts.DuckDBMemory = "lots" }, true},
		{"empty duckdb memory", func(c *Config) { c.Artifacts.DuckDBMemory = "" }, false},
		{"negative threads", func(c *Config) { c.Artifacts.DuckDBThreads = -1 }, true},
		{"cache enabled without rows", func(c *Config) { c.Similarity.CacheMaxRows = 0 }, true},
		{"cache disabled without rows", func(c *Config) {
			c.Similarity.CacheEnabled = false
			c.Similarity.CacheMaxRows = 0
		}, false},
		{"unknown backend", func(c *Config) { c.Preferences.Backend = "redis" }, true},
		{"duckdb without log", func(c *Config) { c.Preferences.LogPath = "" }, true},
		{"badger without path", func(c *Config) {
			c.Preferences.Backend = "badger"
			c.Preferences.BadgerPath = ""
		}, true},
		{"badger without log is fine", func(c *Config) {
			c.Preferences.Backend = "badger"
			c.Preferences.LogPath = ""
		}, false},
		{"zero refresh interval", func(c *Config) { c.Preferences.RefreshInterval = 0 }, true},
		{"zero default k", func(c *Config) { c.Recommend.DefaultK = 0 }, true},
		{"negative max anchors", func(c *Config) { c.Recommend.MaxAnchors = -1 }, true},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 65536 }, true},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, true},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, true},
		{"zero rate limit", func(c *Config) { c.Server.RateLimitRequests = 0 }, true},
		{"zero rate window", func(c *Config) { c.Server.RateLimitWindow = 0 }, true},
		{"rate limit disabled", func(c *Config) {
			c.Server.RateLimitDisabled = true
			c.Server.RateLimitRequests = 0
		}, false},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"console format", func(c *Config) { c.Logging.Format = "console" }, false},
		{"unknown format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestComponentConfigs(t *testing.T) {
	cfg := defaultConfig()
	cfg.Artifacts.DuckDBThreads = 2
	cfg.Preferences.RefreshInterval = 5 * time.Second

	load := cfg.LoadConfig()
	if load.Dir != "./models" || load.CacheMaxRows != 4096 {
		t.Errorf("LoadConfig() = %+v", load)
	}
	if load.DuckDB.MaxMemory != "512MB" || load.DuckDB.Threads != 2 {
		t.Errorf("LoadConfig().DuckDB = %+v", load.DuckDB)
	}

	cfg.Similarity.CacheEnabled = false
	if got := cfg.LoadConfig().CacheMaxRows; got != 0 {
		t.Errorf("disabled cache CacheMaxRows = %d, want 0", got)
	}

	pref := cfg.PreferenceConfig()
	if pref.Backend != "duckdb" || pref.RefreshInterval != 5*time.Second || !pref.BreakerEnabled {
		t.Errorf("PreferenceConfig() = %+v", pref)
	}
	if pref.DuckDB.Threads != 2 {
		t.Errorf("PreferenceConfig().DuckDB.Threads = %d, want 2", pref.DuckDB.Threads)
	}

	engine := cfg.EngineConfig()
	if engine.DefaultK != 10 || engine.MaxAnchors != 0 {
		t.Errorf("EngineConfig() = %+v", engine)
	}

	cfg.Server.CORSAllowedOrigins = []string{"https://status.example.com"}
	router := cfg.RouterConfig()
	if router.RateLimitRequests != 100 || router.RateLimitWindow != time.Minute || len(router.CORSAllowedOrigins) != 1 {
		t.Errorf("RouterConfig() = %+v", router)
	}

	logCfg := cfg.LoggingSettings()
	if logCfg.Level != "info" || logCfg.Format != "json" || logCfg.Output == nil {
		t.Errorf("LoggingSettings() = %+v", logCfg)
	}
}
