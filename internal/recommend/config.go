// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package recommend

import (
	"fmt"
)

// Scoring constants. They are part of the ranking contract and are not
// configurable.
const (
	// BoostWeight scales each anchor row added onto a seed row.
	BoostWeight = 0.3

	// SuppressionFactor multiplies the score of already-rated items in
	// personalized mode.
	SuppressionFactor = 0.1
)

// Config contains engine tuning.
type Config struct {
	// DefaultK is the result size used when a query leaves TopK at zero.
	DefaultK int `koanf:"default_k" json:"default_k"`

	// MaxAnchors caps anchors per request after deduplication, keeping the
	// lowest ids. Zero means no cap.
	MaxAnchors int `koanf:"max_anchors" json:"max_anchors"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultK:   10,
		MaxAnchors: 0,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.DefaultK < 1 {
		return fmt.Errorf("recommend.default_k must be positive, got %d", c.DefaultK)
	}
	if c.MaxAnchors < 0 {
		return fmt.Errorf("recommend.max_anchors must be non-negative, got %d", c.MaxAnchors)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
