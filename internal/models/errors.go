// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package models

import (
	"errors"
)

// Kind classifies errors raised by the recommendation core.
type Kind int

const (
	// KindUnknown is any error outside the taxonomy.
	KindUnknown Kind = iota
	// KindOutOfRange indicates an item id outside [0, N).
	KindOutOfRange
	// KindNoSignal indicates a query with no seed and no anchors.
	KindNoSignal
	// KindUnavailableArtifact indicates a backing data source failed to load.
	KindUnavailableArtifact
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindOutOfRange:
		return "out_of_range"
	case KindNoSignal:
		return "no_signal"
	case KindUnavailableArtifact:
		return "unavailable_artifact"
	default:
		return "unknown"
	}
}

// Code returns the machine-readable error code used in APIError.
func (k Kind) Code() string {
	switch k {
	case KindOutOfRange:
		return "OUT_OF_RANGE"
	case KindNoSignal:
		return "NO_SIGNAL"
	case KindUnavailableArtifact:
		return "UNAVAILABLE_ARTIFACT"
	default:
		return "INTERNAL_ERROR"
	}
}

// Error is the typed error of the recommendation core.
// Two Errors match under errors.Is when their kinds are equal.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error unwrapping.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel errors for errors.Is checks.
var (
	ErrOutOfRange          = &Error{Kind: KindOutOfRange, Message: "item id out of range"}
	ErrNoSignal            = &Error{Kind: KindNoSignal, Message: "query carries no seed and no preference anchors"}
	ErrUnavailableArtifact = &Error{Kind: KindUnavailableArtifact, Message: "artifact unavailable"}
)

// NewError creates a typed error.
func NewError(kind Kind, op, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Cause:   cause,
	}
}

// Unavailable wraps a load-time failure as KindUnavailableArtifact.
func Unavailable(op string, cause error) *Error {
	return NewError(KindUnavailableArtifact, op, "artifact unavailable", cause)
}

// KindOf returns the kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Describe converts any error into the structured descriptor returned to callers.
// Returns nil for a nil error.
func Describe(err error) *APIError {
	if err == nil {
		return nil
	}
	kind := KindOf(err)
	return &APIError{
		Code:    kind.Code(),
		Message: err.Error(),
	}
}
