// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package preference

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/galleria/internal/database"
	"github.com/tomtom215/galleria/internal/models"
)

func TestOpen(t *testing.T) {
	logPath := writeLog(t, "interactions.csv", "user_id,item_id,rating\n1,2,1\n1,3,0\n")

	tests := []struct {
		name        string
		cfg         Config
		wantGuarded bool
	}{
		{
			name: "duckdb",
			cfg:  Config{Backend: BackendDuckDB, LogPath: logPath, RefreshInterval: time.Minute, DuckDB: database.DefaultConfig()},
		},
		{
			name: "snapshot",
			cfg:  Config{Backend: BackendSnapshot, LogPath: logPath, RefreshInterval: time.Minute, DuckDB: database.DefaultConfig()},
		},
		{
			name:        "duckdb guarded",
			cfg:         Config{Backend: BackendDuckDB, LogPath: logPath, BreakerEnabled: true, DuckDB: database.DefaultConfig()},
			wantGuarded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, closer, err := Open(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer closer.Close()

			if _, ok := resolver.(*Guarded); ok != tt.wantGuarded {
				t.Errorf("resolver type %T, guarded = %v", resolver, tt.wantGuarded)
			}

			liked, err := resolver.LikedItems(context.Background(), 1)
			if err != nil {
				t.Fatal(err)
			}
			if got := keys(liked); !equalInts(got, []int{2}) {
				t.Errorf("LikedItems(1) = %v, want [2]", got)
			}
		})
	}
}

func TestOpenHandle_Badger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interactions")
	h, err := OpenHandle(context.Background(), Config{
		Backend:    BackendBadger,
		BadgerPath: path,
	})
	if err != nil {
		t.Fatalf("OpenHandle() error = %v", err)
	}
	defer h.Close()

	if h.Location != path {
		t.Errorf("Location = %q, want %q", h.Location, path)
	}

	if h.Badger == nil {
		t.Fatal("expected badger log on handle")
	}
	if err := h.Badger.Like(context.Background(), 4, 8); err != nil {
		t.Fatal(err)
	}
	liked, _ := h.Resolver.LikedItems(context.Background(), 4)
	if got := keys(liked); !equalInts(got, []int{8}) {
		t.Errorf("LikedItems(4) = %v, want [8]", got)
	}
}

func TestOpen_Unavailable(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown backend", Config{Backend: "redis"}},
		{"missing log", Config{Backend: BackendDuckDB, LogPath: filepath.Join(t.TempDir(), "missing.csv")}},
		{"missing snapshot log", Config{Backend: BackendSnapshot, LogPath: filepath.Join(t.TempDir(), "missing.parquet")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Open(context.Background(), tt.cfg)
			if !errors.Is(err, models.ErrUnavailableArtifact) {
				t.Errorf("Open() error = %v, want ErrUnavailableArtifact", err)
			}
		})
	}
}

func TestHandle_Refresh(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "interactions.csv")
	if err := os.WriteFile(logPath, []byte("user_id,item_id,rating\n1,2,1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h, err := OpenHandle(context.Background(), Config{
		Backend:         BackendSnapshot,
		LogPath:         logPath,
		RefreshInterval: time.Minute,
		DuckDB:          database.DefaultConfig(),
	})
	if err != nil {
		t.Fatalf("OpenHandle() error = %v", err)
	}
	defer h.Close()

	if !h.Refreshable() {
		t.Fatal("snapshot handle should be refreshable")
	}
	if h.Backend != BackendSnapshot {
		t.Errorf("Backend = %q, want snapshot", h.Backend)
	}
	if h.Location != logPath {
		t.Errorf("Location = %q, want %q", h.Location, logPath)
	}
	if h.Snapshot.Len() != 1 || h.Snapshot.Users() != 1 {
		t.Errorf("snapshot holds %d records of %d users, want 1 and 1", h.Snapshot.Len(), h.Snapshot.Users())
	}

	if err := os.WriteFile(logPath, []byte("user_id,item_id,rating\n1,2,1\n1,5,1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	n, err := h.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if n != 2 || h.Snapshot.Len() != 2 {
		t.Errorf("Refresh() = %d records, snapshot Len() = %d, want 2", n, h.Snapshot.Len())
	}

	liked, _ := h.Resolver.LikedItems(context.Background(), 1)
	if got := keys(liked); !equalInts(got, []int{2, 5}) {
		t.Errorf("LikedItems(1) after refresh = %v, want [2 5]", got)
	}
}

func TestHandle_RefreshNotSnapshot(t *testing.T) {
	h, err := OpenHandle(context.Background(), Config{
		Backend:    BackendBadger,
		BadgerPath: filepath.Join(t.TempDir(), "interactions"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	if h.Refreshable() {
		t.Error("badger handle should not be refreshable")
	}
	if _, err := h.Refresh(context.Background()); err == nil {
		t.Error("Refresh() on badger backend should fail")
	}
}
