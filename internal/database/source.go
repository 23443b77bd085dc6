// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package database

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a tabular file format DuckDB can scan in place.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// DetectFormat infers the file format from its extension.
func DetectFormat(path string) (Format, error) {
	lower := strings.ToLower(path)
	lower = strings.TrimSuffix(lower, ".gz")
	switch filepath.Ext(lower) {
	case ".csv", ".tsv":
		return FormatCSV, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("unsupported table format for %q", path)
	}
}

// Source returns the DuckDB table expression that scans path.
func Source(path string) (string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return "", err
	}
	switch format {
	case FormatParquet:
		return fmt.Sprintf("read_parquet(%s)", QuoteLiteral(path)), nil
	default:
		return fmt.Sprintf("read_csv_auto(%s, header = true)", QuoteLiteral(path)), nil
	}
}

// QuoteLiteral renders s as a SQL string literal.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
