package types

import (
	"sync"
	"time"
)

// Clock provides the current unix time in seconds
type Clock interface {
	Now() int64
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() int64 {
	return time.Now().Unix()
}

// FixedClock returns a settable time, used by tests and replays
type FixedClock struct {
	sync.Mutex
	now int64
}

func NewFixedClock(now int64) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() int64 {
	c.Lock()
	defer c.Unlock()
	return c.now
}

func (c *FixedClock) Set(now int64) {
	c.Lock()
	defer c.Unlock()
	c.now = now
}

// Advance moves the clock forward by sec seconds
func (c *FixedClock) Advance(sec int64) {
	c.Lock()
	defer c.Unlock()
	c.now += sec
}
