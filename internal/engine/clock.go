package engine

import "sync/atomic"

// Clock is a monotonic logical clock used to stamp trace events.
//
// Each applied instruction receives a strictly increasing seq number, so
// traces of the same input are identical across runs.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}

// Reset rewinds the clock to 0. The next call to Next returns 1.
func (c *Clock) Reset() {
	c.seq.Store(0)
}
