// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package database provides the embedded DuckDB engine used to read tabular
artifacts and interaction logs.

Galleria never persists into DuckDB. Every connection is in-memory and reads
CSV or Parquet files in place through DuckDB table functions:

	db, err := database.Open(ctx, database.DefaultConfig())
	if err != nil {
	    return err
	}
	defer db.Close()

	src, err := database.Source("models/features.parquet")
	rows, err := db.Query(ctx, "SELECT item_id, feature, weight FROM "+src)

# File Sources

Source picks the reader from the file extension:

  - .csv, .tsv, .csv.gz: read_csv_auto (header detection, type sniffing)
  - .parquet: read_parquet

File paths are embedded as SQL string literals because DuckDB table
functions require constant arguments; QuoteLiteral escapes them.

# Thread Safety

DB wraps *sql.DB and is safe for concurrent use.
*/
package database
