// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"features.csv", FormatCSV, false},
		{"log.CSV", FormatCSV, false},
		{"log.csv.gz", FormatCSV, false},
		{"features.parquet", FormatParquet, false},
		{"features.json", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSource(t *testing.T) {
	got, err := Source("/data/o'brien/features.parquet")
	if err != nil {
		t.Fatalf("Source() error = %v", err)
	}
	want := "read_parquet('/data/o''brien/features.parquet')"
	if got != want {
		t.Errorf("Source() = %q, want %q", got, want)
	}

	got, err = Source("x.csv")
	if err != nil {
		t.Fatalf("Source() error = %v", err)
	}
	if got != "read_csv_auto('x.csv', header = true)" {
		t.Errorf("Source() = %q", got)
	}
}

func TestOpen_InvalidConfig(t *testing.T) {
	if _, err := Open(context.Background(), Config{MaxMemory: "lots"}); err == nil {
		t.Error("expected error for invalid memory limit")
	}
}

func TestQuery_CSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "triplets.csv")
	if err := os.WriteFile(path, []byte("item_id,feature,weight\n0,1,0.5\n1,1,0.25\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	db, err := Open(ctx, DefaultConfig())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer CloseWithLog(db, "test duckdb")

	src, err := Source(path)
	if err != nil {
		t.Fatal(err)
	}

	var count int
	var total float64
	if err := db.QueryRow(ctx, "SELECT COUNT(*), SUM(weight) FROM "+src).Scan(&count, &total); err != nil {
		t.Fatalf("QueryRow() error = %v", err)
	}
	if count != 2 || total != 0.75 {
		t.Errorf("count=%d total=%v, want 2 and 0.75", count, total)
	}
}
