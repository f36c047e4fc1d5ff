package mst_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/dsl"
	"github.com/aretw0/algoviz/pkg/sim"
	"github.com/aretw0/algoviz/pkg/sim/graphs"
	"github.com/aretw0/algoviz/pkg/sim/mst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, b *dsl.Builder) *graphs.Graph {
	t.Helper()
	g, err := graphs.Decode(b.Params())
	require.NoError(t, err)
	return g
}

func TestClassic(t *testing.T) {
	g := build(t, mst.Classic())

	k, err := mst.RunKruskal(g)
	require.NoError(t, err)
	p, err := mst.RunPrim(g, "")
	require.NoError(t, err)

	for _, tr := range []*sim.Trace[mst.State]{k, p} {
		last := tr.Last()
		assert.Equal(t, domain.PhaseComplete, last.Phase, string(last.Algorithm))
		assert.Equal(t, 39, last.TotalWeight, string(last.Algorithm))
		assert.Len(t, last.Tree, 6)
		assert.Equal(t, 1, last.Components)
	}

	first := k.Steps[0]
	require.NotNil(t, first.Considered)
	assert.Equal(t, 5, first.Considered.Weight)
	assert.Equal(t, "a-d", first.Considered.ID(), "equal weights keep declaration order")
}

func TestKruskalRejectsCycles(t *testing.T) {
	b := dsl.New()
	b.Add("a").Weighted("b", 1)
	b.Add("b").Weighted("c", 1)
	b.Add("a").Weighted("c", 1)
	b.Add("c").Weighted("d", 5)

	tr, err := mst.RunKruskal(build(t, b))
	require.NoError(t, err)

	last := tr.Last()
	assert.Equal(t, domain.TagRejected, last.EdgeTags["a-c"])
	assert.Equal(t, domain.TagAccepted, last.EdgeTags["c-d"])
	assert.Equal(t, 7, last.TotalWeight)
	assert.Len(t, tr.Steps, 4, "one edge per tick")
}

func TestDisconnected(t *testing.T) {
	b := dsl.New()
	b.Add("a").Weighted("b", 2)
	b.Add("x").Weighted("y", 1)
	g := build(t, b)

	k, err := mst.RunKruskal(g)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseDisconnected, k.Last().Phase)
	assert.Equal(t, 2, k.Last().Components)

	p, err := mst.RunPrim(g, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseDisconnected, p.Last().Phase)
	assert.Equal(t, domain.TagUnvisited, p.Last().NodeTags["x"])
}

func TestTrivialGraphs(t *testing.T) {
	single := graphs.New(false)
	require.NoError(t, single.AddNode("solo"))

	for _, g := range []*graphs.Graph{graphs.New(false), single} {
		k, err := mst.RunKruskal(g)
		require.NoError(t, err)
		require.Len(t, k.Steps, 1)
		assert.Equal(t, domain.PhaseComplete, k.Last().Phase)

		p, err := mst.RunPrim(g, "")
		require.NoError(t, err)
		assert.Equal(t, domain.PhaseComplete, p.Last().Phase)
	}
	assert.Equal(t, domain.TagUnvisited, mustKruskal(t, single).Initial.NodeTags["solo"], "initial snapshot is not mutated")
}

func mustKruskal(t *testing.T, g *graphs.Graph) *sim.Trace[mst.State] {
	t.Helper()
	tr, err := mst.RunKruskal(g)
	require.NoError(t, err)
	return tr
}

func TestDirectedRejected(t *testing.T) {
	_, err := mst.RunKruskal(graphs.New(true))
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	_, err = mst.RunPrim(graphs.New(true), "")
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	_, err = mst.RunPrim(build(t, mst.Classic()), "zz")
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

// Kruskal and Prim must agree on the total weight of any connected graph,
// including graphs where many edges share a weight.
func TestKruskalPrimAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		n := 2 + rng.Intn(9)
		g := graphs.New(false)
		// Spanning path keeps the graph connected.
		for i := 1; i < n; i++ {
			require.NoError(t, g.AddEdge(fmt.Sprint(i-1), fmt.Sprint(i), 1+rng.Intn(3)))
		}
		for extra := 0; extra < n; extra++ {
			u, v := rng.Intn(n), rng.Intn(n)
			_ = g.AddEdge(fmt.Sprint(u), fmt.Sprint(v), 1+rng.Intn(3))
		}

		k, err := mst.RunKruskal(g)
		require.NoError(t, err)
		p, err := mst.RunPrim(g, "")
		require.NoError(t, err)

		require.Equal(t, domain.PhaseComplete, k.Last().Phase)
		require.Equal(t, domain.PhaseComplete, p.Last().Phase)
		require.Equal(t, k.Last().TotalWeight, p.Last().TotalWeight, "round %d", round)
		require.Len(t, k.Last().Tree, n-1)
	}
}

func TestPresets(t *testing.T) {
	for _, s := range []*mst.Simulation{mst.NewKruskal(), mst.NewPrim()} {
		for _, p := range s.Presets() {
			inst, err := s.Prepare(p, sim.DefaultEnv(0))
			require.NoError(t, err, p.Name)
			states := sim.Drain(inst.Generate())
			assert.True(t, states[len(states)-1].Head().Phase.Terminal())
		}
	}
}
