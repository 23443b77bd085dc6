// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package preference

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// flakyResolver fails while failing is set and counts calls.
type flakyResolver struct {
	failing atomic.Bool
	calls   atomic.Int32
}

func (f *flakyResolver) LikedItems(_ context.Context, _ int) (map[int]struct{}, error) {
	f.calls.Add(1)
	if f.failing.Load() {
		return nil, errors.New("log unavailable")
	}
	return map[int]struct{}{1: {}}, nil
}

func (f *flakyResolver) AllInteractions(ctx context.Context, userID int) (map[int]struct{}, error) {
	return f.LikedItems(ctx, userID)
}

func TestGuarded_PassThrough(t *testing.T) {
	g := NewGuarded(&flakyResolver{}, DefaultBreakerConfig())
	liked, err := g.LikedItems(context.Background(), 1)
	if err != nil {
		t.Fatalf("LikedItems() error = %v", err)
	}
	if _, ok := liked[1]; !ok {
		t.Errorf("LikedItems() = %v", liked)
	}
	if g.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", g.State())
	}
}

func TestGuarded_OpensAndRecovers(t *testing.T) {
	backend := &flakyResolver{}
	backend.failing.Store(true)

	cfg := BreakerConfig{
		Name:         "test-guarded",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      50 * time.Millisecond,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
	g := NewGuarded(backend, cfg)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := g.LikedItems(ctx, 1); err == nil || errors.Is(err, ErrBreakerOpen) {
			t.Fatalf("call %d: error = %v, want backend failure", i, err)
		}
	}
	if g.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", g.State())
	}

	before := backend.calls.Load()
	if _, err := g.AllInteractions(ctx, 1); !errors.Is(err, ErrBreakerOpen) {
		t.Errorf("error = %v, want ErrBreakerOpen", err)
	}
	if backend.calls.Load() != before {
		t.Error("open breaker should not call the backend")
	}

	backend.failing.Store(false)
	time.Sleep(80 * time.Millisecond)

	if _, err := g.LikedItems(ctx, 1); err != nil {
		t.Fatalf("half-open trial error = %v", err)
	}
	if g.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed after a successful trial", g.State())
	}
}

func TestGuarded_CancellationDoesNotTrip(t *testing.T) {
	cfg := DefaultBreakerConfig()
	cfg.Name = "test-cancel"
	cfg.MinRequests = 1
	g := NewGuarded(NewSnapshot(nil), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 5; i++ {
		_, _ = g.LikedItems(ctx, 1)
	}
	if g.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", g.State())
	}
}
