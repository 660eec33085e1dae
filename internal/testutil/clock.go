// Package testutil provides deterministic helpers for tests.
package testutil

import (
	"sync"
	"time"
)

// Clock is a thread-safe deterministic time source for tests.
//
// Each call to Now returns the current instant and advances by a fixed step
// (one microsecond by default), so consecutive recording filenames derived
// from it never collide and are fully reproducible.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewClock creates a clock starting at the given instant, advancing one
// microsecond per Now call.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start, step: time.Microsecond}
}

// NewClockWithStep creates a clock advancing by step per Now call.
func NewClockWithStep(start time.Time, step time.Duration) *Clock {
	return &Clock{now: start, step: step}
}

// Now returns the current instant and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Current returns the current instant without advancing.
func (c *Clock) Current() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}
