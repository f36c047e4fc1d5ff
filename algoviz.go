package algoviz

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/catalog"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/driver"
	"github.com/aretw0/algoviz/pkg/registry"
	"github.com/aretw0/algoviz/pkg/sim"
)

// Version is the release of the library and CLI.
//
//go:embed VERSION
var Version string

// Lab is the high-level entry point: a registry of simulations plus the
// catalog that describes them.
type Lab struct {
	Registry *registry.Registry
	Catalog  *catalog.Catalog
	logger   *slog.Logger
}

// Option configures a Lab.
type Option func(*Lab)

// WithRegistry replaces the builtin simulations.
func WithRegistry(r *registry.Registry) Option {
	return func(l *Lab) {
		l.Registry = r
	}
}

// WithCatalog replaces the embedded catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(l *Lab) {
		l.Catalog = c
	}
}

// WithLogger sets the logger handed to every driver.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lab) {
		l.logger = logger
	}
}

// New builds a Lab and checks that every available catalog module is backed
// by a registered simulation.
func New(opts ...Option) (*Lab, error) {
	l := &Lab{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	if l.Registry == nil {
		l.Registry = registry.Builtin()
	}
	if l.Catalog == nil {
		l.Catalog = catalog.Default()
	}
	known := func(id string) bool {
		_, err := l.Registry.Get(id)
		return err == nil
	}
	if err := l.Catalog.CheckSimulations(known); err != nil {
		return nil, err
	}
	return l, nil
}

// Logger returns the configured logger.
func (l *Lab) Logger() *slog.Logger { return l.logger }

// Request selects a module, one of its scenarios and the seed for any
// randomized input. An empty scenario selects the first preset.
type Request struct {
	Module   string  `json:"module"`
	Scenario string  `json:"scenario,omitempty"`
	Seed     int64   `json:"seed,omitempty"`
	Speed    float64 `json:"speed,omitempty"`
}

// Open prepares a driver for req. The scenario name is resolved up front
// so the driver reports the preset actually in use.
func (l *Lab) Open(req Request, opts ...driver.Option) (*driver.Driver, error) {
	_, preset, err := l.Registry.Prepare(req.Module, req.Scenario, req.Seed)
	if err != nil {
		return nil, err
	}
	load := func(name string) (sim.Instance, error) {
		inst, _, err := l.Registry.Prepare(req.Module, name, req.Seed)
		return inst, err
	}
	speed := req.Speed
	if speed == 0 {
		speed = 1
	}
	base := []driver.Option{
		driver.WithModule(req.Module),
		driver.WithSpeed(speed),
		driver.WithLogger(l.logger),
	}
	return driver.New(load, preset.Name, append(base, opts...)...)
}

// Trace materializes every snapshot of req, initial one included.
func (l *Lab) Trace(req Request) ([]domain.Snapshot, error) {
	inst, _, err := l.Registry.Prepare(req.Module, req.Scenario, req.Seed)
	if err != nil {
		return nil, err
	}
	return sim.Drain(inst.Generate()), nil
}

// Scenarios lists the preset names of a module.
func (l *Lab) Scenarios(module string) ([]string, error) {
	presets, err := l.Registry.Presets(module)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names, nil
}

// Describe returns the catalog entry of a module.
func (l *Lab) Describe(module string) (domain.Module, error) {
	m, ok := l.Catalog.Lookup(module)
	if !ok {
		return domain.Module{}, fmt.Errorf("%w: %s", domain.ErrUnknownModule, module)
	}
	return m, nil
}
