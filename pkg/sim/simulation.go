package sim

import (
	"math/rand"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/scenario"
)

// Info describes a simulation for listings.
type Info struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Env carries the collaborators a simulation may use while preparing its input.
type Env struct {
	// Rand is the only source of randomness. It is consumed in Prepare, never in Generate.
	Rand *rand.Rand

	// IDs hands out event/log identifiers.
	IDs *Sequence
}

// Simulation is one animated algorithm.
type Simulation interface {
	Info() Info

	// Presets returns the built-in scenarios, in display order.
	Presets() []scenario.Preset

	// Prepare resolves a preset into a fixed input.
	// Invalid params are rejected here with domain.ErrInvalidParameter.
	Prepare(p scenario.Preset, env Env) (Instance, error)
}

// Instance is a prepared, fixed input.
type Instance interface {
	// Generate returns a new generator; every call yields the same sequence.
	Generate() Generator[domain.Snapshot]
}

// Static is an Instance backed by a precomputed trace.
type Static struct {
	Trace *Trace[domain.Snapshot]
}

// Generate returns a fresh cursor over the trace.
func (s Static) Generate() Generator[domain.Snapshot] {
	return s.Trace.Generator()
}

// StaticOf erases a typed trace into a Static instance.
func StaticOf[S domain.Snapshot](t *Trace[S]) Static {
	return Static{Trace: Erase(t)}
}

// DefaultEnv builds an Env with a seeded source and a fresh sequence.
func DefaultEnv(seed int64) Env {
	return Env{
		Rand: rand.New(rand.NewSource(seed)),
		IDs:  NewSequence("e"),
	}
}
