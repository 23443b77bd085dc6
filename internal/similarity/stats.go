// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package similarity

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Stats is the opaque training summary shipped with the artifacts
// (model_info.json). The engine passes it through without interpreting it.
type Stats struct {
	raw json.RawMessage
}

// NewStats wraps a raw JSON object. A nil or empty input yields an empty summary.
func NewStats(raw []byte) Stats {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Stats{}
	}
	return Stats{raw: append(json.RawMessage(nil), raw...)}
}

// Raw returns a copy of the raw JSON, or "{}" when empty.
func (s Stats) Raw() json.RawMessage {
	if len(s.raw) == 0 {
		return json.RawMessage("{}")
	}
	return append(json.RawMessage(nil), s.raw...)
}

// MarshalJSON emits the summary verbatim.
func (s Stats) MarshalJSON() ([]byte, error) {
	return s.Raw(), nil
}

// Int reads a numeric top-level field.
func (s Stats) Int(key string) (int, bool) {
	var fields map[string]json.RawMessage
	if json.Unmarshal(s.raw, &fields) != nil {
		return 0, false
	}
	raw, ok := fields[key]
	if !ok {
		return 0, false
	}
	var f float64
	if json.Unmarshal(raw, &f) != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// Str reads a string top-level field.
func (s Stats) Str(key string) (string, bool) {
	var fields map[string]json.RawMessage
	if json.Unmarshal(s.raw, &fields) != nil {
		return "", false
	}
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	var str string
	if json.Unmarshal(raw, &str) != nil {
		return "", false
	}
	return str, true
}

// ArtworkCount returns n_artworks when present.
func (s Stats) ArtworkCount() (int, bool) { return s.Int("n_artworks") }

// FeatureCount returns n_features when present.
func (s Stats) FeatureCount() (int, bool) { return s.Int("n_features") }

// TrainedAt returns trained_at when present.
func (s Stats) TrainedAt() (string, bool) { return s.Str("trained_at") }
