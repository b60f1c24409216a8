// Package ratelimit provides the per-client daily quota that gates
// search traffic. Each client identity gets an independent 24-hour
// window anchored at its own first request.
package ratelimit

import (
	"sync"
	"time"
)

// DefaultLimit is the number of search requests a client may make per
// window when no explicit limit is configured.
const DefaultLimit = 50

// Window is the quota accounting period. It starts at each identity's
// first request, not at a shared clock boundary.
const Window = 24 * time.Hour

// sweepInterval controls how often lapsed windows are dropped.
const sweepInterval = time.Hour

// Decision reports the outcome of a quota check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// window is the per-identity accounting state.
type window struct {
	start time.Time
	count int
}

// Daily tracks request counts per client identity over a rolling
// 24-hour window.
type Daily struct {
	mu      sync.RWMutex
	clients map[string]window
	limit   int
	now     func() time.Time

	// Cleanup
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a daily limiter allowing limit requests per identity per
// window. A non-positive limit falls back to DefaultLimit.
func New(limit int) *Daily {
	if limit <= 0 {
		limit = DefaultLimit
	}

	d := &Daily{
		clients: make(map[string]window),
		limit:   limit,
		now:     time.Now,
		done:    make(chan struct{}),
	}

	go d.sweep()

	return d
}

// Allow consumes one request slot for the given identity if any
// remain. The returned decision carries the values the transport
// layer reports back to the client either way.
func (d *Daily) Allow(identity string) Decision {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	w, ok := d.clients[identity]
	if !ok || now.Sub(w.start) >= Window {
		w = window{start: now}
	}

	reset := w.start.Add(Window)
	if w.count >= d.limit {
		return Decision{Limit: d.limit, ResetAt: reset}
	}

	w.count++
	d.clients[identity] = w

	return Decision{
		Allowed:   true,
		Limit:     d.limit,
		Remaining: d.limit - w.count,
		ResetAt:   reset,
	}
}

// Status reports the identity's current quota without consuming a
// slot. An identity with no live window reports a full quota that
// would reset one window from now.
func (d *Daily) Status(identity string) Decision {
	d.mu.RLock()
	defer d.mu.RUnlock()

	now := d.now()
	w, ok := d.clients[identity]
	if !ok || now.Sub(w.start) >= Window {
		return Decision{
			Allowed:   true,
			Limit:     d.limit,
			Remaining: d.limit,
			ResetAt:   now.Add(Window),
		}
	}

	remaining := d.limit - w.count
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   remaining > 0,
		Limit:     d.limit,
		Remaining: remaining,
		ResetAt:   w.start.Add(Window),
	}
}

// Stop shuts down the sweep goroutine.
func (d *Daily) Stop() {
	d.stopOnce.Do(func() {
		close(d.done)
	})
}

// sweep periodically drops identities whose window has lapsed so the
// map does not grow without bound.
func (d *Daily) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			return
		case <-ticker.C:
			d.evictLapsed()
		}
	}
}

// evictLapsed removes every identity whose window ended before now.
func (d *Daily) evictLapsed() {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for identity, w := range d.clients {
		if now.Sub(w.start) >= Window {
			delete(d.clients, identity)
		}
	}
}
