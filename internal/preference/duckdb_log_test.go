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

	"github.com/tomtom215/galleria/internal/database"
	"github.com/tomtom215/galleria/internal/models"
)

func writeLog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDuckDBLog_Resolve(t *testing.T) {
	path := writeLog(t, "interactions.csv", `user_id,item_id,rating,rated_at
1,2,1,2026-01-01 10:00:00
1,3,0,2026-01-01 10:05:00
1,4,1,2026-01-02 09:00:00
1,4,0,2026-01-01 09:00:00
2,2,1,2026-01-03 08:00:00
`)

	ctx := context.Background()
	l, err := OpenDuckDBLog(ctx, path, database.DefaultConfig())
	if err != nil {
		t.Fatalf("OpenDuckDBLog() error = %v", err)
	}
	defer l.Close()

	liked, err := l.LikedItems(ctx, 1)
	if err != nil {
		t.Fatalf("LikedItems() error = %v", err)
	}
	if got := keys(liked); !equalInts(got, []int{2, 4}) {
		t.Errorf("LikedItems(1) = %v, want [2 4]", got)
	}

	all, err := l.AllInteractions(ctx, 1)
	if err != nil {
		t.Fatalf("AllInteractions() error = %v", err)
	}
	if got := keys(all); !equalInts(got, []int{2, 3, 4}) {
		t.Errorf("AllInteractions(1) = %v, want [2 3 4]", got)
	}

	none, err := l.LikedItems(ctx, 77)
	if err != nil || len(none) != 0 {
		t.Errorf("LikedItems(77) = %v, %v; want empty", none, err)
	}

	records, err := l.Records(ctx)
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 5 {
		t.Errorf("Records() returned %d rows, want 5", len(records))
	}
}

func TestDuckDBLog_RereadsPerCall(t *testing.T) {
	path := writeLog(t, "interactions.csv", "user_id,item_id,rating\n1,2,1\n")

	ctx := context.Background()
	l, err := OpenDuckDBLog(ctx, path, database.DefaultConfig())
	if err != nil {
		t.Fatalf("OpenDuckDBLog() error = %v", err)
	}
	defer l.Close()

	if err := os.WriteFile(path, []byte("user_id,item_id,rating\n1,2,1\n1,9,1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	liked, err := l.LikedItems(ctx, 1)
	if err != nil {
		t.Fatalf("LikedItems() error = %v", err)
	}
	if got := keys(liked); !equalInts(got, []int{2, 9}) {
		t.Errorf("LikedItems(1) = %v, want [2 9] after appending to the log", got)
	}
}

func TestDuckDBLog_NoTimestampColumnUsesLogOrder(t *testing.T) {
	path := writeLog(t, "interactions.csv", "user_id,item_id,rating\n1,2,1\n1,2,0\n")

	ctx := context.Background()
	l, err := OpenDuckDBLog(ctx, path, database.DefaultConfig())
	if err != nil {
		t.Fatalf("OpenDuckDBLog() error = %v", err)
	}
	defer l.Close()

	liked, _ := l.LikedItems(ctx, 1)
	all, _ := l.AllInteractions(ctx, 1)
	if len(liked) != 0 || len(all) != 1 {
		t.Errorf("liked=%v all=%v, want later 0 rating to win", keys(liked), keys(all))
	}
}

func TestOpenDuckDBLog_Unavailable(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.csv") }},
		{"unsupported format", func(t *testing.T) string { return writeLog(t, "log.json", "{}") }},
		{"missing column", func(t *testing.T) string { return writeLog(t, "log.csv", "user_id,item_id\n1,2\n") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenDuckDBLog(context.Background(), tt.path(t), database.DefaultConfig())
			if !errors.Is(err, models.ErrUnavailableArtifact) {
				t.Errorf("OpenDuckDBLog() error = %v, want ErrUnavailableArtifact", err)
			}
		})
	}
}
