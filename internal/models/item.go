// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package models

import (
	"github.com/goccy/go-json"
)

// Item is a catalog entry (artwork) as described by the training pipeline's
// metadata table. Items are loaded once and never mutated at serving time.
type Item struct {
	// ID is the dense catalog index in [0, N).
	ID int `json:"id" validate:"min=0"`

	// Artist is the categorical creator id.
	Artist int `json:"artist" validate:"min=0"`

	// Genre is the categorical genre id.
	Genre int `json:"genre" validate:"min=0"`

	// Style is the categorical style id.
	Style int `json:"style" validate:"min=0"`

	// Extra holds free-form metadata fields (title, filename, description...).
	// The engine carries it through untouched.
	Extra map[string]any `json:"extra,omitempty"`
}

// knownItemFields are decoded into typed fields; everything else lands in Extra.
var knownItemFields = map[string]struct{}{
	"id":     {},
	"artist": {},
	"genre":  {},
	"style":  {},
	"extra":  {},
}

// UnmarshalJSON decodes an item record, collecting unrecognized fields into Extra.
// Metadata tables produced by the training pipeline are flat objects, so any
// column other than the categorical ids is treated as free-form metadata.
func (it *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if _, known := knownItemFields[k]; known {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]any)
		}
		p.Extra[k] = v
	}

	*it = Item(p)
	return nil
}

// View is the metadata projection returned alongside a recommendation.
type View struct {
	ID     int            `json:"id"`
	Artist int            `json:"artist"`
	Genre  int            `json:"genre"`
	Style  int            `json:"style"`
	Extra  map[string]any `json:"extra,omitempty"`
}

// View returns the presentation projection of the item.
//
//nolint:gocritic // hugeParam: value receiver keeps Item immutable
func (it Item) View() View {
	return View{
		ID:     it.ID,
		Artist: it.Artist,
		Genre:  it.Genre,
		Style:  it.Style,
		Extra:  it.Extra,
	}
}
