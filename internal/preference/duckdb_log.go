// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package preference

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tomtom215/galleria/internal/database"
	"github.com/tomtom215/galleria/internal/metrics"
	"github.com/tomtom215/galleria/internal/models"
)

const backendDuckDB = "duckdb"

// DuckDBLog resolves preferences by scanning a CSV or Parquet interaction
// log on every call, so edits to the file are visible immediately.
//
// Rows are consumed in scan order; DuckDB preserves insertion order for
// filtered scans, which gives the log-order tie break.
type DuckDBLog struct {
	path    string
	db      *database.DB
	selectQ string
}

// OpenDuckDBLog opens an in-memory DuckDB instance over the log at path and
// checks that the required columns exist.
//
//nolint:gocritic // hugeParam: database.Config is read once
func OpenDuckDBLog(ctx context.Context, path string, cfg database.Config) (*DuckDBLog, error) {
	const op = "open interaction log"

	if _, err := os.Stat(path); err != nil {
		return nil, models.Unavailable(op, err)
	}
	src, err := database.Source(path)
	if err != nil {
		return nil, models.Unavailable(op, err)
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, models.Unavailable(op, err)
	}

	columns, err := logColumns(ctx, db, src)
	if err != nil {
		database.CloseWithLog(db, "interaction log duckdb")
		return nil, models.Unavailable(op, err)
	}
	for _, required := range []string{"user_id", "item_id", "rating"} {
		if _, ok := columns[required]; !ok {
			database.CloseWithLog(db, "interaction log duckdb")
			return nil, models.NewError(models.KindUnavailableArtifact, op,
				fmt.Sprintf("%s is missing column %q", path, required), nil)
		}
	}

	ratedAt := "CAST(NULL AS TIMESTAMP)"
	if _, ok := columns["rated_at"]; ok {
		ratedAt = "CAST(rated_at AS TIMESTAMP)"
	}

	return &DuckDBLog{
		path: path,
		db:   db,
		selectQ: `SELECT CAST(user_id AS BIGINT), CAST(item_id AS BIGINT), CAST(rating AS INTEGER), ` +
			ratedAt + ` FROM ` + src,
	}, nil
}

func logColumns(ctx context.Context, db *database.DB, src string) (map[string]struct{}, error) {
	rows, err := db.Query(ctx, "SELECT * FROM "+src+" LIMIT 0")
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	defer database.CloseWithLog(rows, "interaction log columns")

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[strings.ToLower(n)] = struct{}{}
	}
	return out, nil
}

// Path returns the log file path.
func (l *DuckDBLog) Path() string {
	return l.path
}

// LikedItems implements Resolver.
func (l *DuckDBLog) LikedItems(ctx context.Context, userID int) (map[int]struct{}, error) {
	u, err := l.user(ctx, "liked", userID)
	if err != nil {
		return nil, err
	}
	return u.liked(), nil
}

// AllInteractions implements Resolver.
func (l *DuckDBLog) AllInteractions(ctx context.Context, userID int) (map[int]struct{}, error) {
	u, err := l.user(ctx, "interactions", userID)
	if err != nil {
		return nil, err
	}
	return u.all(), nil
}

// Records returns the whole log in scan order.
func (l *DuckDBLog) Records(ctx context.Context) ([]Record, error) {
	start := time.Now()
	records, err := l.scan(ctx, l.selectQ)
	metrics.RecordPreferenceQuery(backendDuckDB, "records", time.Since(start), err)
	return records, err
}

func (l *DuckDBLog) user(ctx context.Context, operation string, userID int) (*userIndex, error) {
	start := time.Now()
	records, err := l.scan(ctx, l.selectQ+" WHERE CAST(user_id AS BIGINT) = ?", int64(userID))
	metrics.RecordPreferenceQuery(backendDuckDB, operation, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return resolveUser(records), nil
}

func (l *DuckDBLog) scan(ctx context.Context, query string, args ...interface{}) ([]Record, error) {
	rows, err := l.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query interaction log %s: %w", l.path, err)
	}
	defer database.CloseWithLog(rows, "interaction log rows")

	var records []Record
	for rows.Next() {
		var user, item int64
		var rating int
		var ratedAt sql.NullTime
		if err := rows.Scan(&user, &item, &rating, &ratedAt); err != nil {
			return nil, fmt.Errorf("scan interaction log %s: %w", l.path, err)
		}
		r := Record{UserID: int(user), ItemID: int(item), Rating: rating}
		if ratedAt.Valid {
			r.RatedAt = ratedAt.Time
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interaction log %s: %w", l.path, err)
	}
	return records, nil
}

// Close releases the DuckDB instance.
func (l *DuckDBLog) Close() error {
	return l.db.Close()
}
