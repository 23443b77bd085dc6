// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

// Package validation provides struct validation using go-playground/validator v10.
//
// One thread-safe validator instance is shared by the process. It validates
// configuration structs and artifact records loaded from disk:
//
//	type Config struct {
//	    Backend string `validate:"oneof=duckdb badger snapshot"`
//	    Memory  string `validate:"memsize"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil {
//	    return fmt.Errorf("invalid configuration: %w", err)
//	}
//
// Custom tags:
//   - memsize: DuckDB memory limit syntax (512MB, 2GiB)
//
// Failures are returned as *Error, which lists every field and can be
// converted into a models.APIError for printing.
package validation
