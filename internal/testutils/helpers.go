// Package testutils holds fakes shared by tests across packages.
package testutils

import (
	"sync"
	"time"

	"github.com/aretw0/algoviz/pkg/driver"
)

// FakeClock is a manual driver.Clock. Time only moves through Advance and
// tickers only fire through Fire.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*FakeTicker
}

// NewFakeClock creates a clock set to a fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now implements driver.Clock.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// NewTicker implements driver.Clock.
func (c *FakeClock) NewTicker(d time.Duration) driver.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &FakeTicker{clock: c, ch: make(chan time.Time), interval: d}
	c.tickers = append(c.tickers, t)
	return t
}

// Tickers returns every ticker created so far.
func (c *FakeClock) Tickers() []*FakeTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*FakeTicker(nil), c.tickers...)
}

// Active counts tickers that have not been stopped.
func (c *FakeClock) Active() int {
	n := 0
	for _, t := range c.Tickers() {
		if !t.Stopped() {
			n++
		}
	}
	return n
}

// Last returns the most recently created ticker, or nil.
func (c *FakeClock) Last() *FakeTicker {
	ts := c.Tickers()
	if len(ts) == 0 {
		return nil
	}
	return ts[len(ts)-1]
}

// FakeTicker is a manual driver.Ticker.
type FakeTicker struct {
	clock    *FakeClock
	ch       chan time.Time
	mu       sync.Mutex
	interval time.Duration
	stopped  bool
}

// C implements driver.Ticker.
func (t *FakeTicker) C() <-chan time.Time { return t.ch }

// Reset implements driver.Ticker.
func (t *FakeTicker) Reset(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.interval = d
}

// Stop implements driver.Ticker.
func (t *FakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

// Stopped reports whether Stop was called.
func (t *FakeTicker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// Interval returns the current period.
func (t *FakeTicker) Interval() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.interval
}

// Fire delivers one tick and reports whether a receiver took it within a second.
// Stopped tickers never fire.
func (t *FakeTicker) Fire() bool {
	if t.Stopped() {
		return false
	}
	select {
	case t.ch <- t.clock.Now():
		return true
	case <-time.After(time.Second):
		return false
	}
}
