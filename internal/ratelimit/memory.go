package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps attempt timestamps in process memory. State is lost on
// restart and is not shared between instances.
type MemoryStore struct {
	mu       sync.Mutex
	window   time.Duration
	attempts map[string][]time.Time
	now      func() time.Time
}

func NewMemoryStore(window time.Duration) *MemoryStore {
	return &MemoryStore{
		window:   window,
		attempts: make(map[string][]time.Time),
		now:      time.Now,
	}
}

func (s *MemoryStore) Increment(_ context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-s.window)
	kept := s.attempts[key][:0]
	for _, at := range s.attempts[key] {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	kept = append(kept, now)
	s.attempts[key] = kept
	return len(kept), nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, key)
	return nil
}
