package traversal

import (
	"github.com/aretw0/algoviz/pkg/dsl"
	"github.com/aretw0/algoviz/pkg/scenario"
	"github.com/aretw0/algoviz/pkg/sim"
	"github.com/aretw0/algoviz/pkg/sim/graphs"
)

// Params is the decoded scenario input.
type Params struct {
	Graph map[string]any `mapstructure:"graph" validate:"required"`
	Start string         `mapstructure:"start"`
}

// Simulation is a BFS or DFS engine.
type Simulation struct {
	algo Algorithm
}

// NewBFS returns the breadth-first simulation.
func NewBFS() *Simulation { return &Simulation{algo: BFS} }

// NewDFS returns the depth-first simulation.
func NewDFS() *Simulation { return &Simulation{algo: DFS} }

func (s *Simulation) Info() sim.Info {
	if s.algo == BFS {
		return sim.Info{
			ID:          string(BFS),
			Title:       "Breadth-First Search",
			Description: "Visit nodes level by level from a start node using a FIFO queue.",
		}
	}
	return sim.Info{
		ID:          string(DFS),
		Title:       "Depth-First Search",
		Description: "Follow each branch as deep as possible using an explicit stack.",
	}
}

func (s *Simulation) Presets() []scenario.Preset {
	tree := dsl.New()
	tree.Add("a").To("b").To("c")
	tree.Add("b").To("d").To("e")
	tree.Add("c").To("f").To("g")

	cyclic := dsl.New()
	cyclic.Add("a").To("b").To("c")
	cyclic.Add("b").To("d")
	cyclic.Add("c").To("d")
	cyclic.Add("d").To("e").To("a")

	islands := dsl.New()
	islands.Add("a").To("b")
	islands.Add("b").To("c")
	islands.Add("x").To("y")

	web := dsl.New().Directed()
	web.Add("home").To("about").To("blog")
	web.Add("blog").To("post-1").To("post-2")
	web.Add("post-2").To("home").To("about")

	return []scenario.Preset{
		{Name: "tree", Description: "Balanced binary tree of 7 nodes", Params: map[string]any{"graph": tree.Params()}},
		{Name: "cyclic", Description: "Undirected graph with cycles", Params: map[string]any{"graph": cyclic.Params()}},
		{Name: "islands", Description: "Two components; the second stays unvisited", Params: map[string]any{"graph": islands.Params()}},
		{Name: "links", Description: "Directed link graph", Params: map[string]any{"graph": web.Params(), "start": "home"}},
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
	tr, err := Run(g, s.algo, params.Start)
	if err != nil {
		return nil, err
	}
	return sim.StaticOf(tr), nil
}
