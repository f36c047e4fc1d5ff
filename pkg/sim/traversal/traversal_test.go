package traversal_test

import (
	"testing"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/dsl"
	"github.com/aretw0/algoviz/pkg/scenario"
	"github.com/aretw0/algoviz/pkg/sim"
	"github.com/aretw0/algoviz/pkg/sim/graphs"
	"github.com/aretw0/algoviz/pkg/sim/traversal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tree(t *testing.T) *graphs.Graph {
	t.Helper()
	b := dsl.New()
	b.Add("a").To("b").To("c")
	b.Add("b").To("d").To("e")
	b.Add("c").To("f").To("g")
	g, err := graphs.Decode(b.Params())
	require.NoError(t, err)
	return g
}

func TestBFSOrder(t *testing.T) {
	tr, err := traversal.Run(tree(t), traversal.BFS, "")
	require.NoError(t, err)

	last := tr.Last()
	assert.Equal(t, domain.PhaseComplete, last.Phase)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, last.Order)
	assert.Equal(t, 2, last.Depth["g"])
	assert.Equal(t, "c", last.Parent["g"])
	assert.Empty(t, last.Frontier)

	first := tr.Steps[0]
	assert.Equal(t, "a", first.Current)
	assert.Equal(t, []string{"b", "c"}, first.Frontier)
}

func TestDFSOrder(t *testing.T) {
	tr, err := traversal.Run(tree(t), traversal.DFS, "a")
	require.NoError(t, err)

	last := tr.Last()
	assert.Equal(t, []string{"a", "b", "d", "e", "c", "f", "g"}, last.Order)
	assert.Equal(t, 2, last.Depth["e"])

	first := tr.Steps[0]
	assert.Equal(t, []string{"b", "c"}, first.Frontier, "first declared neighbor is on top")
}

func TestOneVisitPerTick(t *testing.T) {
	for _, algo := range []traversal.Algorithm{traversal.BFS, traversal.DFS} {
		tr, err := traversal.Run(tree(t), algo, "")
		require.NoError(t, err)

		prev := tr.Initial
		for _, s := range tr.Steps {
			if s.Phase == domain.PhaseComplete {
				assert.Equal(t, len(prev.Order), len(s.Order))
				continue
			}
			assert.Equal(t, len(prev.Order)+1, len(s.Order), string(algo))
			assert.Equal(t, domain.TagCurrent, s.Tags[s.Current])
			prev = s
		}
		assert.Equal(t, tr.Last().Reached()+1, tr.Last().Tick)
	}
}

func TestDisconnected(t *testing.T) {
	b := dsl.New()
	b.Add("a").To("b")
	b.Add("x").To("y")
	g, err := graphs.Decode(b.Params())
	require.NoError(t, err)

	tr, err := traversal.Run(g, traversal.BFS, "a")
	require.NoError(t, err)

	last := tr.Last()
	assert.Equal(t, domain.PhaseComplete, last.Phase)
	assert.Equal(t, 2, last.Reached())
	assert.Equal(t, domain.TagUnvisited, last.Tags["x"])
	assert.Equal(t, domain.TagUnvisited, last.Tags["y"])
	assert.Equal(t, domain.TagVisited, last.Tags["b"])
}

func TestEmptyGraph(t *testing.T) {
	tr, err := traversal.Run(graphs.New(false), traversal.DFS, "")
	require.NoError(t, err)
	require.Len(t, tr.Steps, 1)
	assert.Equal(t, domain.PhaseComplete, tr.Last().Phase)
}

func TestUnknownStart(t *testing.T) {
	_, err := traversal.Run(tree(t), traversal.BFS, "zz")
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestGraphViewMarksTreeEdges(t *testing.T) {
	tr, err := traversal.Run(tree(t), traversal.BFS, "")
	require.NoError(t, err)

	view := tr.Last().GraphView()
	assert.Equal(t, domain.TagAccepted, view.EdgeTags["a-b"])
	assert.Len(t, view.EdgeTags, 6)
}

func TestPresets(t *testing.T) {
	for _, s := range []*traversal.Simulation{traversal.NewBFS(), traversal.NewDFS()} {
		for _, p := range s.Presets() {
			inst, err := s.Prepare(p, sim.DefaultEnv(0))
			require.NoError(t, err, p.Name)
			a := sim.Drain(inst.Generate())
			b := sim.Drain(inst.Generate())
			assert.Equal(t, a, b, "replay of %s", p.Name)
			assert.Equal(t, domain.PhaseComplete, a[len(a)-1].Head().Phase)
		}
	}

	_, err := traversal.NewBFS().Prepare(scenario.Preset{Name: "x", Params: map[string]any{}}, sim.DefaultEnv(0))
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}
