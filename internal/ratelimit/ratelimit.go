// Package ratelimit implements fixed-window request counters keyed by client,
// in memory for a single instance or in Redis when instances share limits.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Decision is the outcome of counting one request.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter counts a request against key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

func decide(limit int, count int64, resetAt time.Time) Decision {
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   int(count) <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

type window struct {
	count   int64
	resetAt time.Time
}

// Memory is an in-process Limiter.
type Memory struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// NewMemory allows limit requests per key per window. A limit of zero or
// less disables limiting.
func NewMemory(limit int, per time.Duration) *Memory {
	return &Memory{limit: limit, window: per, now: time.Now, windows: map[string]*window{}}
}

// Allow implements Limiter.
func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()
	if m.limit <= 0 {
		return Decision{Allowed: true, ResetAt: now}, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(m.window)}
		m.windows[key] = w
		m.sweep(now)
	}
	w.count++
	return decide(m.limit, w.count, w.resetAt), nil
}

// sweep drops expired windows. Callers hold mu.
func (m *Memory) sweep(now time.Time) {
	for k, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, k)
		}
	}
}
