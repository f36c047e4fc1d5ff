package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/driver"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/registry"
	"github.com/aretw0/algoviz/pkg/sim"
	"github.com/google/uuid"
)

// LockTTL bounds how long a distributed session lock may be held.
const LockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Observer is notified when live drivers are opened and closed.
type Observer interface {
	DriverOpened(module string)
	DriverClosed(module string)
}

// live is one driver owned by the manager.
type live struct {
	rec    domain.Session
	drv    *driver.Driver
	module string
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	reg   *registry.Registry
	store ports.SessionStore

	mu     sync.Mutex            // Global lock for the maps
	locks  map[string]*lockEntry // Map of active locks
	drv    map[string]*live
	closed bool
	wg     sync.WaitGroup // pending settle calls

	locker     ports.DistributedLocker // Optional distributed locker
	observer   Observer
	driverOpts []driver.Option
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithDriverOptions applies opts to every driver the manager creates.
func WithDriverOptions(opts ...driver.Option) Option {
	return func(m *Manager) {
		m.driverOpts = append(m.driverOpts, opts...)
	}
}

// WithObserver registers o for driver open/close notifications.
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		m.observer = o
	}
}

// WithNow overrides the clock used for UpdatedAt.
func WithNow(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager that prepares simulations from reg and
// persists records in store.
func NewManager(reg *registry.Registry, store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		reg:    reg,
		store:  store,
		locks:  make(map[string]*lockEntry),
		drv:    make(map[string]*live),
		now:    time.Now,
		logger: logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateRequest describes a new session.
type CreateRequest struct {
	Module   string  `json:"module"`
	Scenario string  `json:"scenario,omitempty"`
	Seed     int64   `json:"seed,omitempty"`
	Speed    float64 `json:"speed,omitempty"`
}

// Create prepares a new driver and persists its record.
// An empty scenario selects the module's first preset.
func (m *Manager) Create(ctx context.Context, req CreateRequest) (*domain.Session, error) {
	// Resolve the preset name up front so the record is replayable.
	_, p, err := m.reg.Prepare(req.Module, req.Scenario, req.Seed)
	if err != nil {
		return nil, err
	}
	rec := domain.Session{
		ID:       uuid.NewString(),
		Module:   req.Module,
		Scenario: p.Name,
		Seed:     req.Seed,
		Speed:    req.Speed,
		Status:   domain.RunIdle,
	}
	if rec.Speed == 0 {
		rec.Speed = 1
	}

	var out *domain.Session
	err = m.WithLock(ctx, rec.ID, func(ctx context.Context) error {
		l, err := m.open(rec)
		if err != nil {
			return err
		}
		out, err = m.persist(ctx, l)
		return err
	})
	if err != nil {
		return nil, err
	}
	m.logger.Info("Session created", "session_id", out.ID, "module", out.Module, "scenario", out.Scenario)
	return out, nil
}

// Do runs fn against the session's driver and persists the resulting
// position. Unknown ids are restored from the store first.
func (m *Manager) Do(ctx context.Context, id string, fn func(*driver.Driver) error) (*domain.Session, error) {
	var out *domain.Session
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		l, err := m.resolve(ctx, id)
		if err != nil {
			return err
		}
		if fn != nil {
			if err := fn(l.drv); err != nil {
				return err
			}
		}
		out, err = m.persist(ctx, l)
		return err
	})
	return out, err
}

// Play, Pause, Step and Reset are the common controls.
func (m *Manager) Play(ctx context.Context, id string) (*domain.Session, error) {
	return m.Do(ctx, id, (*driver.Driver).Play)
}

func (m *Manager) Pause(ctx context.Context, id string) (*domain.Session, error) {
	return m.Do(ctx, id, (*driver.Driver).Pause)
}

func (m *Manager) Step(ctx context.Context, id string) (*domain.Session, error) {
	return m.Do(ctx, id, (*driver.Driver).Step)
}

func (m *Manager) Reset(ctx context.Context, id string) (*domain.Session, error) {
	return m.Do(ctx, id, (*driver.Driver).Reset)
}

// SetSpeed changes the session's speed multiplier.
func (m *Manager) SetSpeed(ctx context.Context, id string, speed float64) (*domain.Session, error) {
	return m.Do(ctx, id, func(d *driver.Driver) error { return d.SetSpeed(speed) })
}

// SelectScenario switches the session onto another preset of its module.
func (m *Manager) SelectScenario(ctx context.Context, id, name string) (*domain.Session, error) {
	return m.Do(ctx, id, func(d *driver.Driver) error { return d.SelectScenario(name) })
}

// Driver returns the live driver for id, restoring it if needed.
// Callers may Subscribe and read from it; control calls should go through
// the manager so the record stays current.
func (m *Manager) Driver(ctx context.Context, id string) (*driver.Driver, error) {
	var d *driver.Driver
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		l, err := m.resolve(ctx, id)
		if err != nil {
			return err
		}
		d = l.drv
		return nil
	})
	return d, err
}

// Current returns the session record and its current snapshot without
// persisting.
func (m *Manager) Current(ctx context.Context, id string) (*domain.Session, domain.Snapshot, error) {
	var (
		rec  *domain.Session
		snap domain.Snapshot
	)
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		l, err := m.resolve(ctx, id)
		if err != nil {
			return err
		}
		r := position(l)
		rec = &r
		snap = l.drv.Current()
		return nil
	})
	return rec, snap, err
}

// Delete closes the live driver (if any) and removes the record.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		m.mu.Lock()
		l := m.drv[id]
		delete(m.drv, id)
		m.mu.Unlock()
		if l != nil {
			m.shut(l)
		}
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// Active returns the number of live drivers.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.drv)
}

// Evict closes the live driver for id but keeps its record, so the next access
// restores it from the store.
func (m *Manager) Evict(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		m.mu.Lock()
		l := m.drv[id]
		delete(m.drv, id)
		m.mu.Unlock()
		if l == nil {
			return nil
		}
		if _, err := m.persist(ctx, l); err != nil {
			m.logger.Warn("Failed to persist evicted session", "session_id", id, "err", err)
		}
		m.shut(l)
		return nil
	})
}

// Close stops every live driver. Records are left in the store.
func (m *Manager) Close() error {
	m.mu.Lock()
	m.closed = true
	all := make([]*live, 0, len(m.drv))
	for id, l := range m.drv {
		all = append(all, l)
		delete(m.drv, id)
	}
	m.mu.Unlock()

	var errs []error
	for _, l := range all {
		errs = append(errs, m.shut(l))
	}
	// Closed drivers publish nothing more, so no settle call can be added now.
	m.wg.Wait()
	return errors.Join(errs...)
}

// resolve returns the live driver or restores it from the store.
// The caller must hold the session lock.
func (m *Manager) resolve(ctx context.Context, id string) (*live, error) {
	m.mu.Lock()
	l, ok := m.drv[id]
	m.mu.Unlock()
	if ok {
		return l, nil
	}

	rec, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.restore(*rec)
}

// restore rebuilds a driver at the stored position.
func (m *Manager) restore(rec domain.Session) (*live, error) {
	l, err := m.open(rec)
	if err != nil {
		return nil, err
	}
	d := l.drv
	err = d.FastForward(rec.Cursor)
	if err == nil && rec.Status == domain.RunRunning {
		err = d.Play()
	}
	if err != nil {
		m.discard(l)
		return nil, fmt.Errorf("failed to restore session %s: %w", rec.ID, err)
	}
	m.logger.Debug("Session restored", "session_id", rec.ID, "cursor", rec.Cursor, "status", d.Status())
	return l, nil
}

// open builds a fresh idle driver for rec and registers it.
func (m *Manager) open(rec domain.Session) (*live, error) {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return nil, driver.ErrClosed
	}

	load := func(name string) (sim.Instance, error) {
		inst, _, err := m.reg.Prepare(rec.Module, name, rec.Seed)
		return inst, err
	}
	speed := rec.Speed
	if speed == 0 {
		speed = 1
	}
	opts := append([]driver.Option{
		driver.WithModule(rec.Module),
		driver.WithSpeed(speed),
		driver.WithLogger(m.logger),
	}, m.driverOpts...)

	d, err := driver.New(load, rec.Scenario, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open session %s: %w", rec.ID, err)
	}
	l := &live{rec: rec, drv: d, module: rec.Module}

	// A run that completes on its own is persisted without a control call.
	id := rec.ID
	d.Subscribe(func(s domain.Snapshot) {
		if s.Head().Phase.Terminal() {
			m.wg.Add(1)
			go m.settle(id, l)
		}
	})

	m.mu.Lock()
	m.drv[rec.ID] = l
	m.mu.Unlock()
	if m.observer != nil {
		m.observer.DriverOpened(rec.Module)
	}
	return l, nil
}

// discard unregisters and closes a driver that failed to restore.
func (m *Manager) discard(l *live) {
	m.mu.Lock()
	if m.drv[l.rec.ID] == l {
		delete(m.drv, l.rec.ID)
	}
	m.mu.Unlock()
	if err := m.shut(l); err != nil {
		m.logger.Warn("Failed to close driver", "session_id", l.rec.ID, "err", err)
	}
}

// settle persists the terminal position of a live driver if it is still
// registered under id.
func (m *Manager) settle(id string, l *live) {
	defer m.wg.Done()
	ctx, cancel := context.WithTimeout(context.Background(), LockTTL)
	defer cancel()

	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		m.mu.Lock()
		current := m.drv[id]
		m.mu.Unlock()
		if current != l {
			return nil
		}
		_, err := m.persist(ctx, l)
		return err
	})
	if err != nil {
		m.logger.Warn("Failed to persist completed session", "session_id", id, "err", err)
	}
}

func (m *Manager) shut(l *live) error {
	err := l.drv.Close()
	if m.observer != nil {
		m.observer.DriverClosed(l.module)
	}
	return err
}

// persist refreshes the record from the driver and saves it.
func (m *Manager) persist(ctx context.Context, l *live) (*domain.Session, error) {
	l.rec = position(l)
	l.rec.UpdatedAt = m.now().UTC()
	if err := m.store.Save(ctx, &l.rec); err != nil {
		return nil, fmt.Errorf("failed to persist session %s: %w", l.rec.ID, err)
	}
	out := l.rec
	return &out, nil
}

// position copies the driver position into a copy of the record.
func position(l *live) domain.Session {
	r := l.rec
	r.Scenario = l.drv.Scenario()
	r.Cursor = l.drv.Cursor()
	r.Speed = l.drv.Speed()
	r.Status = l.drv.Status()
	return r
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, LockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
