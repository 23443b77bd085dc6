// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestItem_UnmarshalJSON(t *testing.T) {
	data := []byte(`{"id": 3, "artist": 12, "genre": 4, "style": 7, "title": "Starry Night", "year": 1889}`)

	var it Item
	if err := json.Unmarshal(data, &it); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if it.ID != 3 || it.Artist != 12 || it.Genre != 4 || it.Style != 7 {
		t.Errorf("typed fields = %+v", it)
	}
	if it.Extra["title"] != "Starry Night" {
		t.Errorf("Extra[title] = %v, want Starry Night", it.Extra["title"])
	}
	if _, ok := it.Extra["id"]; ok {
		t.Error("typed field id should not be duplicated into Extra")
	}
}

func TestItem_UnmarshalJSON_NoExtra(t *testing.T) {
	var it Item
	if err := json.Unmarshal([]byte(`{"id": 0, "artist": 1, "genre": 2, "style": 3}`), &it); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if it.Extra != nil {
		t.Errorf("Extra = %v, want nil", it.Extra)
	}
}

func TestItem_View(t *testing.T) {
	it := Item{ID: 1, Artist: 2, Genre: 3, Style: 4, Extra: map[string]any{"title": "x"}}
	v := it.View()
	if v.ID != 1 || v.Artist != 2 || v.Genre != 3 || v.Style != 4 || v.Extra["title"] != "x" {
		t.Errorf("View() = %+v", v)
	}
}
