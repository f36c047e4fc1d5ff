// Package cli implements the algoviz commands on top of the public packages.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/algoviz"
	"github.com/aretw0/algoviz/pkg/adapters/badger"
	"github.com/aretw0/algoviz/pkg/adapters/memory"
	"github.com/aretw0/algoviz/pkg/adapters/redis"
	"github.com/aretw0/algoviz/pkg/catalog"
	"github.com/aretw0/algoviz/pkg/driver"
	"github.com/aretw0/algoviz/pkg/observability"
	"github.com/aretw0/algoviz/pkg/persistence/middleware"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/registry"
	"github.com/aretw0/algoviz/pkg/scenario"
	"github.com/aretw0/algoviz/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	backend "github.com/redis/go-redis/v9"
)

// Options are the global flags shared by every command.
type Options struct {
	Debug      bool
	Catalog    string // path to a catalog YAML; empty uses the embedded one
	Scenarios  string // path to an extra scenarios file
	Redis      string // redis URL for the session store and locker
	Badger     string // directory for the embedded session store
	SessionTTL time.Duration
}

// App bundles the collaborators built from Options.
type App struct {
	*algoviz.Lab
	Options Options
	Logger  *slog.Logger

	closers []func() error
}

// NewApp loads the registry, extra scenarios and catalog.
func NewApp(opts Options) (*App, error) {
	logger := createLogger(opts.Debug)
	labOpts := []algoviz.Option{
		algoviz.WithRegistry(registry.Builtin()),
		algoviz.WithLogger(logger),
	}
	if opts.Catalog != "" {
		cat, err := catalog.LoadFile(opts.Catalog)
		if err != nil {
			return nil, err
		}
		labOpts = append(labOpts, algoviz.WithCatalog(cat))
	}
	lab, err := algoviz.New(labOpts...)
	if err != nil {
		return nil, err
	}

	a := &App{Lab: lab, Options: opts, Logger: logger}
	if err := a.ReloadScenarios(); err != nil {
		return nil, err
	}
	return a, nil
}

// ReloadScenarios re-reads the extra scenarios file, if configured.
func (a *App) ReloadScenarios() error {
	if a.Options.Scenarios == "" {
		return nil
	}
	extra, err := scenario.LoadFile(a.Options.Scenarios)
	if err != nil {
		return err
	}
	for module := range extra {
		if _, err := a.Registry.Get(module); err != nil {
			return fmt.Errorf("%s: %w", a.Options.Scenarios, err)
		}
	}
	a.Registry.SetExtra(extra)
	a.Logger.Debug("Scenarios loaded", "path", a.Options.Scenarios, "modules", len(extra))
	return nil
}

// Host is the wiring of a long-running server.
type Host struct {
	Manager    *session.Manager
	Prometheus *prometheus.Registry
	Metrics    *observability.Metrics
}

// NewHost builds the session store, metrics and session manager.
func (a *App) NewHost() (*Host, error) {
	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(promReg)

	store, locker, name, err := a.openStore()
	if err != nil {
		return nil, err
	}
	wrapped := middleware.Chain(store,
		middleware.Logging(a.Logger),
		middleware.Instrumented(middleware.NewStoreMetrics(promReg, name)),
	)

	opts := []session.Option{
		session.WithLogger(a.Logger),
		session.WithObserver(metrics),
		session.WithDriverOptions(driver.WithHooks(observability.Chain(
			observability.LoggingHooks(a.Logger),
			metrics.Hooks(),
		))),
	}
	if locker != nil {
		opts = append(opts, session.WithLocker(locker))
	}
	mgr := session.NewManager(a.Registry, wrapped, opts...)
	a.closers = append([]func() error{mgr.Close}, a.closers...)

	return &Host{Manager: mgr, Prometheus: promReg, Metrics: metrics}, nil
}

func (a *App) openStore() (ports.SessionStore, ports.DistributedLocker, string, error) {
	switch {
	case a.Options.Redis != "" && a.Options.Badger != "":
		return nil, nil, "", errors.New("--redis and --badger cannot be used together")
	case a.Options.Redis != "":
		ro, err := backend.ParseURL(a.Options.Redis)
		if err != nil {
			return nil, nil, "", fmt.Errorf("invalid --redis url: %w", err)
		}
		client := backend.NewClient(ro)
		store := redis.NewFromClient(client, redis.WithTTL(a.Options.SessionTTL))
		a.closers = append(a.closers, store.Close)
		a.Logger.Info("Using redis session store", "addr", ro.Addr)
		return store, redis.NewLocker(client, redis.DefaultPrefix), "redis", nil
	case a.Options.Badger != "":
		store, err := badger.Open(badger.Config{
			Path:   a.Options.Badger,
			TTL:    a.Options.SessionTTL,
			Logger: a.Logger,
		})
		if err != nil {
			return nil, nil, "", err
		}
		a.closers = append(a.closers, store.Close)
		a.Logger.Info("Using badger session store", "path", a.Options.Badger)
		return store, nil, "badger", nil
	}
	return memory.NewStore(), nil, "memory", nil
}

// Close releases the host resources in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
