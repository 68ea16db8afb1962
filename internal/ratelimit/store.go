// Package ratelimit counts login attempts per client address inside a rolling window.
package ratelimit

import (
	"context"
	"log/slog"
)

// Store records an attempt for key and returns how many attempts fall inside
// the active window, including this one.
type Store interface {
	Increment(ctx context.Context, key string) (int, error)
	Reset(ctx context.Context, key string) error
}

// Throttle caps attempts per key. It fails open: a store error allows the attempt.
type Throttle struct {
	store Store
	max   int
}

func NewThrottle(store Store, max int) *Throttle {
	return &Throttle{store: store, max: max}
}

// Allow records an attempt and reports whether it is within the cap.
func (t *Throttle) Allow(ctx context.Context, key string) bool {
	count, err := t.store.Increment(ctx, key)
	if err != nil {
		slog.Warn("login throttle store failed, allowing attempt", "key", key, "error", err)
		return true
	}
	return count <= t.max
}

func (t *Throttle) Reset(ctx context.Context, key string) {
	if err := t.store.Reset(ctx, key); err != nil {
		slog.Warn("login throttle reset failed", "key", key, "error", err)
	}
}
