// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package database

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver

	"github.com/tomtom215/galleria/internal/validation"
)

// Config controls the embedded DuckDB instance.
type Config struct {
	// MaxMemory is the DuckDB memory limit (e.g. "512MB").
	MaxMemory string `koanf:"duckdb_memory" validate:"omitempty,memsize"`

	// Threads is the DuckDB worker thread count. 0 means runtime.NumCPU().
	Threads int `koanf:"duckdb_threads" validate:"min=0"`
}

// DefaultConfig returns the default DuckDB settings.
func DefaultConfig() Config {
	return Config{
		MaxMemory: "512MB",
	}
}

// DB is an in-memory DuckDB connection pool.
type DB struct {
	conn *sql.DB
}

// Open creates an in-memory DuckDB instance and verifies it with a ping.
//
//nolint:gocritic // hugeParam: Config is small and read once
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.MaxMemory == "" {
		cfg.MaxMemory = DefaultConfig().MaxMemory
	}
	if err := validation.ValidateStruct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid duckdb config: %w", err)
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	connStr := fmt.Sprintf(":memory:?threads=%d&max_memory=%s&autoinstall_known_extensions=false",
		threads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	conn.SetMaxOpenConns(threads)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	return &DB{conn: conn}, nil
}

// Query runs a read query.
func (db *DB) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, query, args...)
}

// QueryRow runs a query expected to return at most one row.
func (db *DB) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRowContext(ctx, query, args...)
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close releases the DuckDB instance.
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	db.conn.SetMaxIdleConns(0)
	return db.conn.Close()
}
