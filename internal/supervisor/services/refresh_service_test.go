// Galleria - Artwork Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// mockRefresher counts refreshes and fails while err is set.
type mockRefresher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *mockRefresher) Refresh(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return m.calls, nil
}

func (m *mockRefresher) getCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestRefreshService_Interface(t *testing.T) {
	var _ suture.Service = (*RefreshService)(nil)
}

func TestRefreshService_String(t *testing.T) {
	service := NewRefreshService(&mockRefresher{}, time.Hour, zerolog.Nop())
	if got := service.String(); got != "snapshot-refresh" {
		t.Errorf("String() = %q, want %q", got, "snapshot-refresh")
	}
}

func TestRefreshService_DefaultInterval(t *testing.T) {
	service := NewRefreshService(&mockRefresher{}, 0, zerolog.Nop())
	if service.interval != time.Minute {
		t.Errorf("interval = %v, want 1m", service.interval)
	}
}

func TestRefreshService_RefreshesOnTick(t *testing.T) {
	refresher := &mockRefresher{}
	service := NewRefreshService(refresher, 20*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	if err := service.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
	if got := refresher.getCalls(); got < 2 {
		t.Errorf("Refresh() called %d times, want at least 2", got)
	}
}

func TestRefreshService_NoRefreshBeforeFirstTick(t *testing.T) {
	refresher := &mockRefresher{}
	service := NewRefreshService(refresher, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_ = service.Serve(ctx)

	if got := refresher.getCalls(); got != 0 {
		t.Errorf("Refresh() called %d times, want 0 (snapshot already loaded at open)", got)
	}
}

func TestRefreshService_FailureKeepsRunning(t *testing.T) {
	refresher := &mockRefresher{err: errors.New("log unreadable")}
	service := NewRefreshService(refresher, 20*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- service.Serve(ctx) }()

	deadline := time.Now().Add(time.Second)
	for refresher.getCalls() < 3 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := refresher.getCalls(); got < 3 {
		t.Fatalf("Refresh() called %d times, want retries after failure", got)
	}

	select {
	case err := <-errCh:
		t.Fatalf("Serve() returned early: %v", err)
	default:
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}
