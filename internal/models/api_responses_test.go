// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]int{"count": 2}, "req-1", 1500*time.Microsecond)

	if resp.Status != "success" || resp.Error != nil {
		t.Errorf("resp = %+v, want success without error", resp)
	}
	if resp.Metadata.RequestID != "req-1" || resp.Metadata.QueryTimeMS != 1 {
		t.Errorf("metadata = %+v", resp.Metadata)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"error"`) {
		t.Errorf("success envelope should omit error: %s", data)
	}
}

func TestNewErrorResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		data     interface{}
		wantCode string
	}{
		{"no signal keeps data", NewError(KindNoSignal, "recommend", "no seed and no likes", nil), map[string]string{"status": "no_signal"}, "NO_SIGNAL"},
		{"unavailable", Unavailable("load metadata", errors.New("missing")), nil, "UNAVAILABLE_ARTIFACT"},
		{"foreign error", errors.New("boom"), nil, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewErrorResponse(tt.err, tt.data, "req-2")
			if resp.Status != "error" || resp.Error == nil {
				t.Fatalf("resp = %+v, want error envelope", resp)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
			if resp.Metadata.RequestID != "req-2" {
				t.Errorf("request id = %q", resp.Metadata.RequestID)
			}

			data, err := json.Marshal(resp)
			if err != nil {
				t.Fatal(err)
			}
			if tt.data != nil && !strings.Contains(string(data), `"no_signal"`) {
				t.Errorf("error envelope dropped data: %s", data)
			}
		})
	}
}
