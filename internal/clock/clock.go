// Package clock abstracts wall time so task timestamps can be pinned in tests.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FakeClock returns a fixed instant, optionally moving forward by a step after every read.
type FakeClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{t: start}
}

// NewSteppingClock returns a FakeClock whose reads are step apart.
func NewSteppingClock(start time.Time, step time.Duration) *FakeClock {
	return &FakeClock{t: start, step: step}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}
