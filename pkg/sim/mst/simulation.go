package mst

import (
	"github.com/aretw0/algoviz/pkg/dsl"
	"github.com/aretw0/algoviz/pkg/scenario"
	"github.com/aretw0/algoviz/pkg/sim"
	"github.com/aretw0/algoviz/pkg/sim/graphs"
)

// Params is the decoded scenario input. Start is used by Prim only.
type Params struct {
	Graph map[string]any `mapstructure:"graph" validate:"required"`
	Start string         `mapstructure:"start"`
}

// Simulation is a Kruskal or Prim engine.
type Simulation struct {
	algo Algorithm
}

// NewKruskal returns the Kruskal simulation.
func NewKruskal() *Simulation { return &Simulation{algo: Kruskal} }

// NewPrim returns the Prim simulation.
func NewPrim() *Simulation { return &Simulation{algo: Prim} }

func (s *Simulation) Info() sim.Info {
	if s.algo == Kruskal {
		return sim.Info{
			ID:          string(Kruskal),
			Title:       "Kruskal's MST",
			Description: "Consider edges by increasing weight and keep those joining two components.",
		}
	}
	return sim.Info{
		ID:          string(Prim),
		Title:       "Prim's MST",
		Description: "Grow one tree from a start vertex by always taking the cheapest edge leaving it.",
	}
}

// Classic is a 7-vertex weighted graph with a unique spanning tree of weight 39.
func Classic() *dsl.Builder {
	b := dsl.New()
	b.Add("a").Weighted("b", 7).Weighted("d", 5)
	b.Add("b").Weighted("c", 8).Weighted("d", 9).Weighted("e", 7)
	b.Add("c").Weighted("e", 5)
	b.Add("d").Weighted("e", 15).Weighted("f", 6)
	b.Add("e").Weighted("f", 8).Weighted("g", 9)
	b.Add("f").Weighted("g", 11)
	b.Add("g")
	return b
}

func (s *Simulation) Presets() []scenario.Preset {
	ties := dsl.New()
	ties.Add("n").Weighted("e", 1).Weighted("w", 1)
	ties.Add("s").Weighted("e", 1).Weighted("w", 1)
	ties.Add("n").Weighted("s", 1)

	split := dsl.New()
	split.Add("a").Weighted("b", 2)
	split.Add("b").Weighted("c", 3)
	split.Add("x").Weighted("y", 1)

	return []scenario.Preset{
		{Name: "classic", Description: "Seven vertices, eleven edges", Params: map[string]any{"graph": Classic().Params()}},
		{Name: "ties", Description: "Every edge weighs the same", Params: map[string]any{"graph": ties.Params()}},
		{Name: "disconnected", Description: "Two components: no spanning tree", Params: map[string]any{"graph": split.Params()}},
	}
}

func (s *Simulation) Prepare(p scenario.Preset, _ sim.Env) (sim.Instance, error) {
	var params Params
	if err := scenario.Decode(p.Params, &params); err != nil {
		return nil, err
	}
	g, err := graphs.Decode(params.Graph)
	if err != nil {
		return nil, err
	}
	var tr *sim.Trace[State]
	if s.algo == Kruskal {
		tr, err = RunKruskal(g)
	} else {
		tr, err = RunPrim(g, params.Start)
	}
	if err != nil {
		return nil, err
	}
	return sim.StaticOf(tr), nil
}
