// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper printed by engine callers.
//
// Status field values:
//   - "success": the call completed, see Data
//   - "error": the call failed, see Error (Data may still carry a typed empty result)
//
// Example NoSignal response:
//
//	{
//	  "status": "error",
//	  "data": {"recommendations": [], "count": 0, "status": "no_signal"},
//	  "error": {"code": "NO_SIGNAL", "message": "recommend: query carries no seed and no preference anchors"},
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is the structured error descriptor (kind code + message).
//
// Codes:
//   - OUT_OF_RANGE: item id outside the catalog
//   - NO_SIGNAL: no seed and no anchors
//   - UNAVAILABLE_ARTIFACT: backing data failed to load
//   - INTERNAL_ERROR: anything else
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewSuccessResponse wraps data in a success envelope.
func NewSuccessResponse(data interface{}, requestID string, elapsed time.Duration) APIResponse {
	return APIResponse{
		Status: "success",
		Data:   data,
		Metadata: Metadata{
			Timestamp:   time.Now().UTC(),
			RequestID:   requestID,
			QueryTimeMS: elapsed.Milliseconds(),
		},
	}
}

// NewErrorResponse wraps err in an error envelope. data may be nil.
func NewErrorResponse(err error, data interface{}, requestID string) APIResponse {
	return APIResponse{
		Status: "error",
		Data:   data,
		Error:  Describe(err),
		Metadata: Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: requestID,
		},
	}
}
