// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package similarity

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/galleria/internal/database"
	"github.com/tomtom215/galleria/internal/logging"
	"github.com/tomtom215/galleria/internal/metrics"
	"github.com/tomtom215/galleria/internal/models"
	"github.com/tomtom215/galleria/internal/validation"
)

// Artifact file names inside the artifact directory.
const (
	FeaturesParquetFile = "features.parquet"
	FeaturesCSVFile     = "features.csv"
	MetadataFile        = "metadata.json"
	ModelInfoFile       = "model_info.json"
)

// LoadConfig controls artifact loading.
type LoadConfig struct {
	// Dir is the artifact directory.
	Dir string `validate:"required"`

	// DuckDB configures the engine used to scan the feature table.
	DuckDB database.Config

	// CacheMaxRows enables the row cache when positive.
	CacheMaxRows int64 `validate:"min=0"`

	// Logger receives load diagnostics. The zero value uses the global logger.
	Logger *zerolog.Logger
}

// triplet is one stored (item, feature, weight) entry.
type triplet struct {
	item    int
	feature int
	weight  float64
}

// Load reads the artifact bundle in cfg.Dir and builds a Space.
// Every failure is a models.ErrUnavailableArtifact error.
//
//nolint:gocritic // hugeParam: LoadConfig is read once at start-up
func Load(ctx context.Context, cfg LoadConfig) (*Space, error) {
	if err := validation.ValidateStruct(&cfg); err != nil {
		return nil, models.Unavailable("load artifacts", err)
	}

	logger := logging.WithComponent("artifacts")
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "artifacts").Logger()
	}
	start := time.Now()

	var (
		triplets []triplet
		items    []models.Item
		stats    Stats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t0 := time.Now()
		var err error
		triplets, err = loadFeatures(gctx, cfg)
		metrics.RecordArtifactLoad("features", time.Since(t0), err)
		return err
	})
	g.Go(func() error {
		t0 := time.Now()
		var err error
		items, err = loadMetadata(filepath.Join(cfg.Dir, MetadataFile))
		metrics.RecordArtifactLoad("metadata", time.Since(t0), err)
		return err
	})
	g.Go(func() error {
		t0 := time.Now()
		var err error
		stats, err = loadModelInfo(filepath.Join(cfg.Dir, ModelInfoFile))
		metrics.RecordArtifactLoad("model_info", time.Since(t0), err)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Str("dir", cfg.Dir).Msg("Artifact load failed")
		return nil, err
	}

	n := len(items)
	if declared, ok := stats.ArtworkCount(); ok && declared != n {
		return nil, models.NewError(models.KindUnavailableArtifact, "load artifacts",
			fmt.Sprintf("%s declares %d artworks but %s has %d", ModelInfoFile, declared, MetadataFile, n), nil)
	}

	dim, err := dimensionality(stats, triplets)
	if err != nil {
		return nil, err
	}

	vectors, err := assemble(triplets, n)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithLogger(logger)}
	if cfg.CacheMaxRows > 0 {
		opts = append(opts, WithRowCache(cfg.CacheMaxRows))
	}
	space, err := NewSpace(items, vectors, dim, stats, opts...)
	if err != nil {
		return nil, err
	}

	trainedAt, _ := stats.TrainedAt()
	logger.Info().
		Str("dir", cfg.Dir).
		Int("items", n).
		Int("features", dim).
		Int("entries", len(triplets)).
		Str("trained_at", trainedAt).
		Dur("elapsed", time.Since(start)).
		Msg("Artifacts loaded")

	return space, nil
}

// featuresPath prefers the Parquet table over CSV.
func featuresPath(dir string) (string, error) {
	for _, name := range []string{FeaturesParquetFile, FeaturesCSVFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("neither %s nor %s found in %s: %w", FeaturesParquetFile, FeaturesCSVFile, dir, os.ErrNotExist)
}

//nolint:gocritic // hugeParam: LoadConfig is read once at start-up
func loadFeatures(ctx context.Context, cfg LoadConfig) ([]triplet, error) {
	const op = "load features"

	path, err := featuresPath(cfg.Dir)
	if err != nil {
		return nil, models.Unavailable(op, err)
	}
	src, err := database.Source(path)
	if err != nil {
		return nil, models.Unavailable(op, err)
	}

	db, err := database.Open(ctx, cfg.DuckDB)
	if err != nil {
		return nil, models.Unavailable(op, err)
	}
	defer database.CloseWithLog(db, "features duckdb")

	query := `SELECT CAST(item_id AS BIGINT), CAST(feature AS BIGINT), CAST(weight AS DOUBLE)
		FROM ` + src + ` ORDER BY 1, 2`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, models.Unavailable(op, fmt.Errorf("query %s: %w", path, err))
	}
	defer database.CloseWithLog(rows, "features rows")

	var out []triplet
	for rows.Next() {
		var item, feature int64
		var weight float64
		if err := rows.Scan(&item, &feature, &weight); err != nil {
			return nil, models.Unavailable(op, fmt.Errorf("scan %s: %w", path, err))
		}
		out = append(out, triplet{item: int(item), feature: int(feature), weight: weight})
	}
	if err := rows.Err(); err != nil {
		return nil, models.Unavailable(op, fmt.Errorf("iterate %s: %w", path, err))
	}
	return out, nil
}

func loadMetadata(path string) ([]models.Item, error) {
	const op = "load metadata"

	data, err := os.ReadFile(path) //nolint:gosec // path is built from the configured artifact dir
	if err != nil {
		return nil, models.Unavailable(op, err)
	}

	var items []models.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, models.Unavailable(op, fmt.Errorf("parse %s: %w", path, err))
	}
	if len(items) == 0 {
		return nil, models.NewError(models.KindUnavailableArtifact, op, "catalog is empty", nil)
	}

	for i := range items {
		if err := validation.ValidateStruct(&items[i]); err != nil {
			return nil, models.Unavailable(op, fmt.Errorf("record %d: %w", i, err))
		}
	}

	// ids must be a dense permutation of 0..N-1
	sort.SliceStable(items, func(a, b int) bool { return items[a].ID < items[b].ID })
	for i := range items {
		if items[i].ID != i {
			return nil, models.NewError(models.KindUnavailableArtifact, op,
				fmt.Sprintf("item ids are not a dense range 0..%d (missing or duplicate near %d)", len(items)-1, i), nil)
		}
	}
	return items, nil
}

func loadModelInfo(path string) (Stats, error) {
	const op = "load model info"

	data, err := os.ReadFile(path) //nolint:gosec // path is built from the configured artifact dir
	if err != nil {
		return Stats{}, models.Unavailable(op, err)
	}

	trimmed := bytes.TrimSpace(data)
	var fields map[string]json.RawMessage
	if len(trimmed) == 0 || trimmed[0] != '{' || json.Unmarshal(trimmed, &fields) != nil {
		return Stats{}, models.NewError(models.KindUnavailableArtifact, op,
			fmt.Sprintf("%s is not a JSON object", path), nil)
	}
	return NewStats(trimmed), nil
}

// dimensionality uses n_features when declared, else max(feature)+1.
func dimensionality(stats Stats, triplets []triplet) (int, error) {
	maxFeature := -1
	for _, t := range triplets {
		if t.feature > maxFeature {
			maxFeature = t.feature
		}
	}

	if declared, ok := stats.FeatureCount(); ok {
		if declared < 1 || maxFeature >= declared {
			return 0, models.NewError(models.KindUnavailableArtifact, "load artifacts",
				fmt.Sprintf("n_features=%d but feature table uses index %d", declared, maxFeature), nil)
		}
		return declared, nil
	}
	if maxFeature < 0 {
		return 1, nil
	}
	return maxFeature + 1, nil
}

// assemble groups sorted triplets into one vector per item. Items without
// rows keep a zero vector.
func assemble(triplets []triplet, n int) ([]Vector, error) {
	vectors := make([]Vector, n)
	for _, t := range triplets {
		if t.item < 0 || t.item >= n {
			return nil, models.NewError(models.KindUnavailableArtifact, "load features",
				fmt.Sprintf("feature row references item %d outside [0, %d)", t.item, n), nil)
		}
		if t.feature < 0 {
			return nil, models.NewError(models.KindUnavailableArtifact, "load features",
				fmt.Sprintf("negative feature index %d for item %d", t.feature, t.item), nil)
		}
		v := &vectors[t.item]
		v.Indices = append(v.Indices, t.feature)
		v.Values = append(v.Values, t.weight)
	}
	return vectors, nil
}
