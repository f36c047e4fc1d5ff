package driver

import (
	"log/slog"
	"math"
	"time"

	"github.com/aretw0/algoviz/pkg/domain"
)

// Default timing.
const (
	DefaultBaseInterval = 500 * time.Millisecond
	DefaultMinInterval  = 16 * time.Millisecond

	// MaxInterval is the ceiling reached by very small speed factors.
	MaxInterval = time.Duration(math.MaxInt64)
)

// Option defines a functional option for configuring the Driver.
type Option func(*Driver)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithClock replaces the wall clock, typically with a fake in tests.
func WithClock(c Clock) Option {
	return func(d *Driver) {
		d.clock = c
	}
}

// WithHooks registers lifecycle callbacks.
func WithHooks(h domain.LifecycleHooks) Option {
	return func(d *Driver) {
		d.hooks = h
	}
}

// WithBaseInterval sets the tick interval at speed 1.
func WithBaseInterval(iv time.Duration) Option {
	return func(d *Driver) {
		d.base = iv
	}
}

// WithMinInterval sets the floor no speed can go below.
func WithMinInterval(iv time.Duration) Option {
	return func(d *Driver) {
		d.floor = iv
	}
}

// WithModule labels emitted events.
func WithModule(id string) Option {
	return func(d *Driver) {
		d.module = id
	}
}

// WithSpeed sets the initial speed multiplier. New rejects invalid values.
func WithSpeed(f float64) Option {
	return func(d *Driver) {
		d.speed = f
	}
}
