// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

// Package main is the entry point for the galleria command.
//
// Galleria ranks artworks by content similarity and personal taste. The
// recommend command is a local caller of the engine; serve runs the ops
// endpoints and the interaction snapshot refresher under a supervisor tree.
//
// # Commands
//
//	galleria serve                          ops HTTP server (/healthz, /readyz, /metrics)
//	galleria recommend --seed 12 --like 3   ranked recommendations as JSON
//	galleria item 12                        catalog entry for one item
//	galleria items --page 2 --page-size 50  one page of the catalog
//	galleria stats                          catalog size and training summary
//	galleria like 7 12                      store a like (BadgerDB log)
//	galleria unlike 7 12                    remove a stored interaction
//	galleria rate 7 12 0                    store an explicit rating
//	galleria user 7                         liked and interacted items of a user
//
// # Configuration
//
// Configuration is loaded via Koanf v2 (highest priority wins):
//   - Environment variables (ARTIFACTS_DIR, PREFERENCES_BACKEND, LOG_LEVEL, ...)
//   - Config file (--config, CONFIG_PATH or ./config.yaml)
//   - Built-in defaults
//
// # Exit Codes
//
//	0  success
//	1  any failure, including unavailable artifacts
//	2  the query carried no signal (no seed and no likes)
//
// # Signal Handling
//
// serve shuts down gracefully on SIGINT and SIGTERM.
package main

import (
	"errors"
	"fmt"
	"os"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "galleria:", err)
		os.Exit(exitCode(err))
	}
}

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return 1
}
