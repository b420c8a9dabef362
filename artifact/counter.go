package artifact

import "sync/atomic"

// Counter hands out sequence numbers for anonymous artifact names.
//
// Contract:
// - Concurrency: safe for concurrent use; Next never returns the same value twice
// between resets.
// - Ownership: callers own the counter and share it between every Namer that
// writes into the same scratch directory.
type Counter struct {
	n atomic.Int64
}

// NewCounter returns a counter whose first Next call returns 1.
func NewCounter() *Counter {
	return &Counter{}
}

// Next increments the counter and returns the new value.
func (c *Counter) Next() int64 {
	return c.n.Add(1)
}

// Current returns the last value handed out, or 0 if Next was never called.
func (c *Counter) Current() int64 {
	return c.n.Load()
}

// Reset puts the counter back to its initial state.
func (c *Counter) Reset() {
	c.n.Store(0)
}
