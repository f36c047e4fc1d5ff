package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/sim"
)

// ErrClosed is returned by control methods after Close.
var ErrClosed = errors.New("driver closed")

// Loader resolves a scenario name into a prepared instance.
type Loader func(scenario string) (sim.Instance, error)

// Driver is the play/pause/step/speed controller of one simulation.
type Driver struct {
	mu  sync.Mutex
	pub sync.Mutex // held while delivering; never acquired with mu held
	wg  sync.WaitGroup

	load     Loader
	module   string
	scenario string
	inst     sim.Instance
	gen      sim.Generator[domain.Snapshot]
	current  domain.Snapshot
	cursor   int
	status   domain.RunStatus

	speed float64
	base  time.Duration
	floor time.Duration

	clock  Clock
	ticker Ticker
	halt   chan struct{}
	epoch  uint64
	closed bool

	queue   []notice
	seq     uint64 // sequence number of the next queued notice
	subs    map[int]subscriber
	nextSub int
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// New prepares scenario through load and returns an idle driver.
func New(load Loader, scenario string, opts ...Option) (*Driver, error) {
	d := &Driver{
		load:     load,
		scenario: scenario,
		status:   domain.RunIdle,
		speed:    1,
		base:     DefaultBaseInterval,
		floor:    DefaultMinInterval,
		clock:    RealClock(),
		subs:     make(map[int]subscriber),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := validSpeed(d.speed); err != nil {
		return nil, err
	}

	inst, err := load(scenario)
	if err != nil {
		return nil, err
	}
	d.inst = inst
	d.gen = inst.Generate()
	d.current = d.gen.Initial()
	return d, nil
}

// notice is one publication queued while the state lock is held.
type notice struct {
	seq      uint64
	snap     domain.Snapshot
	tick     *domain.TickEvent
	status   *domain.StatusEvent
	complete bool
}

// Current returns the latest published snapshot.
func (d *Driver) Current() domain.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Status returns the state machine position.
func (d *Driver) Status() domain.RunStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Cursor is the number of steps consumed since the last reset.
func (d *Driver) Cursor() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor
}

// Speed returns the current multiplier.
func (d *Driver) Speed() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.speed
}

// Scenario returns the name of the active scenario.
func (d *Driver) Scenario() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scenario
}

// Interval returns the tick interval for the current speed.
func (d *Driver) Interval() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.interval()
}

func (d *Driver) interval() time.Duration {
	// The quotient is clamped before conversion; out of range floats do not
	// convert to a meaningful Duration.
	q := float64(d.base) / d.speed
	if q >= float64(MaxInterval) {
		return MaxInterval
	}
	if iv := time.Duration(q); iv > d.floor {
		return iv
	}
	return d.floor
}

// Subscribe registers fn for every published snapshot and returns a function
// that removes it.
func (d *Driver) Subscribe(fn func(domain.Snapshot)) (unsubscribe func()) {
	_, unsubscribe = d.SubscribeCurrent(fn)
	return unsubscribe
}

// SubscribeCurrent returns the current snapshot and registers fn in one step.
// fn receives exactly the snapshots published after the returned one.
func (d *Driver) SubscribeCurrent(fn func(domain.Snapshot)) (domain.Snapshot, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return d.current, func() {}
	}
	id := d.nextSub
	d.nextSub++
	d.subs[id] = subscriber{fn: fn, from: d.seq}
	return d.current, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.subs, id)
	}
}

// Play starts consuming ticks. Playing while running is a no-op; playing a
// completed run restarts it from the initial snapshot.
func (d *Driver) Play() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	var ns []notice
	switch d.status {
	case domain.RunRunning:
		d.mu.Unlock()
		return nil
	case domain.RunComplete:
		ns = append(ns, d.rewindLocked()...)
	}
	ns = append(ns, d.setStatusLocked(domain.RunRunning)...)
	d.startLoopLocked()
	d.publish(ns)
	return nil
}

// Pause stops consuming ticks without discarding progress.
func (d *Driver) Pause() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.status != domain.RunRunning {
		d.mu.Unlock()
		return nil
	}
	d.stopLoopLocked()
	d.publish(d.setStatusLocked(domain.RunPaused))
	return nil
}

// Step consumes exactly one tick in any state except complete, where it is a no-op.
// Stepping from idle leaves the driver paused.
func (d *Driver) Step() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.status == domain.RunComplete {
		d.mu.Unlock()
		return nil
	}
	ns := d.advanceLocked()
	if d.status == domain.RunIdle {
		ns = append(ns, d.setStatusLocked(domain.RunPaused)...)
	}
	d.publish(ns)
	return nil
}

// Reset discards the generator and rebuilds it from the same prepared input.
func (d *Driver) Reset() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.stopLoopLocked()
	ns := d.rewindLocked()
	ns = append(ns, d.setStatusLocked(domain.RunIdle)...)
	d.publish(ns)
	return nil
}

// SelectScenario prepares a different scenario and resets onto it.
// On error the driver is left unchanged.
func (d *Driver) SelectScenario(name string) error {
	inst, err := d.load(name)
	if err != nil {
		return err
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.stopLoopLocked()
	d.inst = inst
	d.scenario = name
	ns := d.rewindLocked()
	ns = append(ns, d.setStatusLocked(domain.RunIdle)...)
	d.publish(ns)
	return nil
}

// SetSpeed changes the multiplier. It must be positive and finite.
func (d *Driver) SetSpeed(f float64) error {
	if err := validSpeed(f); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.speed = f
	if d.ticker != nil {
		d.ticker.Reset(d.interval())
	}
	return nil
}

// FastForward consumes up to n steps at once and publishes only the final
// snapshot. It is used to restore a persisted cursor.
func (d *Driver) FastForward(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: cannot fast-forward %d steps", domain.ErrInvalidParameter, n)
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	var last []notice
	for i := 0; i < n && d.status != domain.RunComplete; i++ {
		last = d.advanceLocked()
	}
	if n > 0 && d.status == domain.RunIdle {
		last = append(last, d.setStatusLocked(domain.RunPaused)...)
	}
	d.publish(last)
	return nil
}

// Close stops the ticker and waits for the tick goroutine to exit.
// No callback runs after Close returns.
func (d *Driver) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.stopLoopLocked()
	d.closed = true
	d.queue = nil
	d.subs = nil
	d.hooks = domain.LifecycleHooks{}
	d.mu.Unlock()

	d.wg.Wait()
	// Wait out a delivery that started before Close.
	d.pub.Lock()
	d.pub.Unlock()
	return nil
}

func validSpeed(f float64) error {
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: speed must be a positive finite number, got %v", domain.ErrInvalidParameter, f)
	}
	return nil
}

func (d *Driver) startLoopLocked() {
	d.stopLoopLocked()
	d.epoch++
	t := d.clock.NewTicker(d.interval())
	halt := make(chan struct{})
	d.ticker, d.halt = t, halt

	d.wg.Add(1)
	go d.loop(d.epoch, t, halt)
}

func (d *Driver) stopLoopLocked() {
	d.epoch++
	if d.ticker != nil {
		d.ticker.Stop()
		close(d.halt)
		d.ticker, d.halt = nil, nil
	}
}

// loop is the tick goroutine of one running period.
func (d *Driver) loop(epoch uint64, t Ticker, halt <-chan struct{}) {
	defer d.wg.Done()
	for {
		select {
		case <-halt:
			return
		case <-t.C():
			d.onTick(epoch)
		}
	}
}

func (d *Driver) onTick(epoch uint64) {
	d.mu.Lock()
	if d.epoch != epoch || d.status != domain.RunRunning {
		d.mu.Unlock()
		d.logger.Debug("Discarding late tick", "module", d.module, "epoch", epoch)
		return
	}
	d.publish(d.advanceLocked())
}

// advanceLocked consumes one step and transitions to complete on a terminal phase.
func (d *Driver) advanceLocked() []notice {
	start := d.clock.Now()
	next, ok := d.gen.Next()
	if !ok {
		d.logger.Warn("Generator ended without a terminal phase",
			"module", d.module, "scenario", d.scenario, "err", domain.ErrExhausted)
		d.stopLoopLocked()
		return d.setStatusLocked(domain.RunComplete)
	}
	d.current = next
	d.cursor++

	h := next.Head()
	ev := &domain.TickEvent{
		EventBase: d.eventBase(domain.EventTick),
		Tick:      h.Tick,
		Phase:     h.Phase,
		Duration:  d.clock.Now().Sub(start),
	}
	ns := []notice{{snap: next, tick: ev}}

	if h.Phase.Terminal() {
		d.stopLoopLocked()
		ns = append(ns, d.setStatusLocked(domain.RunComplete)...)
		done := *ev
		done.Type = domain.EventComplete
		ns = append(ns, notice{tick: &done, complete: true})
	}
	return ns
}

// rewindLocked rebuilds the generator and queues the initial snapshot.
func (d *Driver) rewindLocked() []notice {
	d.gen = d.inst.Generate()
	d.current = d.gen.Initial()
	d.cursor = 0
	return []notice{{snap: d.current}}
}

func (d *Driver) setStatusLocked(to domain.RunStatus) []notice {
	from := d.status
	if from == to {
		return nil
	}
	d.status = to
	d.logger.Debug("Driver status", "module", d.module, "from", from, "to", to)
	return []notice{{status: &domain.StatusEvent{
		EventBase: d.eventBase(domain.EventStatusChange),
		From:      string(from),
		To:        string(to),
	}}}
}

func (d *Driver) eventBase(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: d.clock.Now(),
		Type:      t,
		Module:    d.module,
		Scenario:  d.scenario,
	}
}

// publish queues ns, releases the state lock and delivers the queue in order.
// It must be called with d.mu held. Whoever holds d.pub drains notices queued
// by other callers too, so ns has been delivered when publish returns.
func (d *Driver) publish(ns []notice) {
	for i := range ns {
		ns[i].seq = d.seq
		d.seq++
	}
	d.queue = append(d.queue, ns...)
	d.mu.Unlock()

	d.pub.Lock()
	defer d.pub.Unlock()
	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		batch := d.queue
		d.queue = nil
		subs := make([]subscriber, 0, len(d.subs))
		for i := 0; i < d.nextSub; i++ {
			if sub, ok := d.subs[i]; ok {
				subs = append(subs, sub)
			}
		}
		hooks := d.hooks
		d.mu.Unlock()

		deliver(batch, subs, hooks)
	}
}

// subscriber skips notices queued before it registered.
type subscriber struct {
	fn   func(domain.Snapshot)
	from uint64
}

func deliver(ns []notice, subs []subscriber, hooks domain.LifecycleHooks) {
	ctx := context.Background()
	for _, n := range ns {
		if n.snap != nil {
			for _, sub := range subs {
				if n.seq >= sub.from {
					sub.fn(n.snap)
				}
			}
		}
		switch {
		case n.complete:
			if hooks.OnComplete != nil {
				hooks.OnComplete(ctx, n.tick)
			}
		case n.tick != nil:
			if hooks.OnTick != nil {
				hooks.OnTick(ctx, n.tick)
			}
		case n.status != nil:
			if hooks.OnStatusChange != nil {
				hooks.OnStatusChange(ctx, n.status)
			}
		}
	}
}
