// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package validation

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

type sampleConfig struct {
	Backend string `validate:"oneof=duckdb badger snapshot"`
	Memory  string `validate:"memsize"`
	Port    int    `validate:"min=1,max=65535"`
	Name    string `validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     sampleConfig
		wantErr   bool
		wantField string
	}{
		{
			name:  "valid",
			input: sampleConfig{Backend: "duckdb", Memory: "512MB", Port: 9464, Name: "x"},
		},
		{
			name:      "bad backend",
			input:     sampleConfig{Backend: "redis", Memory: "512MB", Port: 9464, Name: "x"},
			wantErr:   true,
			wantField: "sampleConfig.Backend",
		},
		{
			name:      "bad memory",
			input:     sampleConfig{Backend: "badger", Memory: "lots", Port: 9464, Name: "x"},
			wantErr:   true,
			wantField: "sampleConfig.Memory",
		},
		{
			name:      "port out of range",
			input:     sampleConfig{Backend: "snapshot", Memory: "2GiB", Port: 0, Name: "x"},
			wantErr:   true,
			wantField: "sampleConfig.Port",
		},
		{
			name:      "missing name",
			input:     sampleConfig{Backend: "snapshot", Memory: "1.5gb", Port: 1},
			wantErr:   true,
			wantField: "sampleConfig.Name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}

			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if len(verr.Errors()) != 1 {
				t.Fatalf("expected 1 field error, got %d: %v", len(verr.Errors()), verr)
			}
			if got := verr.Errors()[0].Field(); got != tt.wantField {
				t.Errorf("Field() = %q, want %q", got, tt.wantField)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	if err := ValidateVar(-1, "min=0"); err == nil {
		t.Error("expected error for negative value")
	}
	if err := ValidateVar(3, "min=0"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestError_ToAPIError(t *testing.T) {
	err := ValidateStruct(&sampleConfig{Backend: "nope", Memory: "nope", Port: 1, Name: "x"})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "must be one of: duckdb badger snapshot") {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if fields, ok := apiErr.Details["fields"].([]map[string]interface{}); !ok || len(fields) != 2 {
		t.Errorf("Details[fields] = %v", apiErr.Details["fields"])
	}
}

func TestGetValidator_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ValidateStruct(&sampleConfig{Backend: "duckdb", Memory: "1GB", Port: 1, Name: "x"})
		}()
	}
	wg.Wait()

	if GetValidator() != GetValidator() {
		t.Error("expected singleton validator")
	}
}
