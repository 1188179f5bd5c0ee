// Package history provides the bounded, insertion-ordered observation
// windows backing the panels. Entries are evicted oldest-first once a
// ring reaches capacity.
package history

import (
	"fmt"
	"sync"
)

// InvariantViolation reports a post-condition failure after a
// supposedly-successful mutation, such as a buffer exceeding its capacity
// or a just-written entry going missing. It indicates a core bug rather
// than bad input and must propagate to the host, never be swallowed.
type InvariantViolation struct {
	Check  string
	Detail string
}

// Error implements the error interface.
func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violated (%s): %s", e.Check, e.Detail)
}

// Ring is a fixed-capacity FIFO window over observations of one kind.
// A capacity of zero or less means unbounded. All access is serialized
// by an internal mutex so post-insert checks in the panels observe a
// consistent view.
type Ring[T any] struct {
	mu       sync.Mutex
	entries  []T
	capacity int
	evicted  int64
}

// NewRing creates a ring with the given capacity. capacity <= 0 disables
// eviction entirely.
func NewRing[T any](capacity int) *Ring[T] {
	return &Ring[T]{
		entries:  make([]T, 0, max(capacity, 0)),
		capacity: capacity,
	}
}

// Push appends an entry, evicting the oldest one if the ring is full.
// It reports whether an eviction took place.
func (r *Ring[T]) Push(v T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, v)
	if r.capacity > 0 && len(r.entries) > r.capacity {
		r.entries = r.entries[1:]
		r.evicted++
		return true
	}
	return false
}

// Len returns the number of entries currently held.
func (r *Ring[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Cap returns the configured capacity (<= 0 means unbounded).
func (r *Ring[T]) Cap() int { return r.capacity }

// Evicted returns the total number of entries dropped since creation.
func (r *Ring[T]) Evicted() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evicted
}

// Last returns the most recently pushed entry, or false if empty.
func (r *Ring[T]) Last() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	if len(r.entries) == 0 {
		return zero, false
	}
	return r.entries[len(r.entries)-1], true
}

// Snapshot returns a copy of the current contents in insertion order.
// The copy is safe to read while producers keep pushing.
func (r *Ring[T]) Snapshot() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]T, len(r.entries))
	copy(out, r.entries)
	return out
}

// Clear empties the ring. Calling Clear on an empty ring is a no-op.
func (r *Ring[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = r.entries[:0]
}
