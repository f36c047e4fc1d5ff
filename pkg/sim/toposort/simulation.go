package toposort

import (
	"github.com/aretw0/algoviz/pkg/dsl"
	"github.com/aretw0/algoviz/pkg/scenario"
	"github.com/aretw0/algoviz/pkg/sim"
	"github.com/aretw0/algoviz/pkg/sim/graphs"
)

// ID is the registry id of the topological sort simulation.
const ID = "topological-sort"

// Params is the decoded scenario input.
type Params struct {
	Graph map[string]any `mapstructure:"graph" validate:"required"`
}

// Simulation is the Kahn engine.
type Simulation struct{}

// New returns the topological sort simulation.
func New() *Simulation { return &Simulation{} }

func (*Simulation) Info() sim.Info {
	return sim.Info{
		ID:          ID,
		Title:       "Topological Sort",
		Description: "Kahn's algorithm: repeatedly output a node with no remaining prerequisites.",
	}
}

// Courses is the course prerequisites DAG.
func Courses() *dsl.Builder {
	b := dsl.New().Directed()
	b.Add("cs101").To("cs102").To("math201")
	b.Add("cs102").To("cs201")
	b.Add("math201").To("cs201")
	b.Add("cs201").To("cs301")
	b.Add("cs301").To("cs401")
	b.Add("cs401")
	return b
}

func (*Simulation) Presets() []scenario.Preset {
	cyclic := dsl.New().Directed()
	cyclic.Add("build").To("test")
	cyclic.Add("test").To("deploy")
	cyclic.Add("deploy").To("test")
	cyclic.Add("docs").To("deploy")

	return []scenario.Preset{
		{Name: "courses", Description: "Course prerequisites", Params: map[string]any{"graph": Courses().Params()}},
		{Name: "cyclic", Description: "Pipeline with a test/deploy cycle", Params: map[string]any{"graph": cyclic.Params()}},
	}
}

func (*Simulation) Prepare(p scenario.Preset, _ sim.Env) (sim.Instance, error) {
	var params Params
	if err := scenario.Decode(p.Params, &params); err != nil {
		return nil, err
	}
	g, err := graphs.Decode(params.Graph)
	if err != nil {
		return nil, err
	}
	tr, err := Run(g)
	if err != nil {
		return nil, err
	}
	return sim.StaticOf(tr), nil
}
