// Package registry maps module ids to simulations and resolves scenarios.
//
// A Registry is built explicitly and passed to whichever host needs it;
// there is no process-wide instance.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/scenario"
	"github.com/aretw0/algoviz/pkg/sim"
)

// Registry manages the available simulations and any extra presets.
type Registry struct {
	mu    sync.RWMutex
	sims  map[string]sim.Simulation
	order []string
	extra map[string][]scenario.Preset
}

// NewRegistry creates a registry holding sims in the given order.
func NewRegistry(sims ...sim.Simulation) *Registry {
	r := &Registry{
		sims:  make(map[string]sim.Simulation),
		extra: make(map[string][]scenario.Preset),
	}
	for _, s := range sims {
		r.Register(s)
	}
	return r
}

// Register adds a simulation to the registry.
// If a simulation with the same id exists, it is overwritten in place.
func (r *Registry) Register(s sim.Simulation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := s.Info().ID
	if _, ok := r.sims[id]; !ok {
		r.order = append(r.order, id)
	}
	r.sims[id] = s
}

// Get looks up a simulation by id.
func (r *Registry) Get(id string) (sim.Simulation, error) {
	r.mu.RLock()
	s, ok := r.sims[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownModule, id)
	}
	return s, nil
}

// List returns the info of every simulation in registration order.
func (r *Registry) List() []sim.Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]sim.Info, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.sims[id].Info())
	}
	return out
}

// SetExtra replaces the presets loaded from a scenario file.
// Extra presets follow the built-in ones; an extra preset with a built-in
// name replaces it.
func (r *Registry) SetExtra(extra map[string][]scenario.Preset) {
	cp := make(map[string][]scenario.Preset, len(extra))
	for k, v := range extra {
		cp[k] = slices.Clone(v)
	}
	r.mu.Lock()
	r.extra = cp
	r.mu.Unlock()
}

// Presets returns the built-in and extra presets of a simulation.
func (r *Registry) Presets(id string) ([]scenario.Preset, error) {
	s, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	extra := r.extra[id]
	r.mu.RUnlock()

	out := slices.Clone(s.Presets())
	for _, p := range extra {
		if i := slices.IndexFunc(out, func(q scenario.Preset) bool { return q.Name == p.Name }); i >= 0 {
			out[i] = p
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Prepare resolves module and scenario and prepares an instance with a
// deterministic environment derived from seed. An empty scenario selects the
// first preset.
func (r *Registry) Prepare(module, scenarioName string, seed int64) (sim.Instance, scenario.Preset, error) {
	s, err := r.Get(module)
	if err != nil {
		return nil, scenario.Preset{}, err
	}
	presets, err := r.Presets(module)
	if err != nil {
		return nil, scenario.Preset{}, err
	}
	if len(presets) == 0 {
		return nil, scenario.Preset{}, fmt.Errorf("%w: %s has no scenarios", domain.ErrUnknownScenario, module)
	}
	p := presets[0]
	if scenarioName != "" {
		if p, err = scenario.Find(presets, scenarioName); err != nil {
			return nil, scenario.Preset{}, err
		}
	}
	inst, err := s.Prepare(p, sim.DefaultEnv(seed))
	if err != nil {
		return nil, scenario.Preset{}, fmt.Errorf("module %s scenario %s: %w", module, p.Name, err)
	}
	return inst, p, nil
}
