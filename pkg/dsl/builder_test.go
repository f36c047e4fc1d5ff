package dsl_test

import (
	"testing"

	"github.com/aretw0/algoviz/pkg/dsl"
	"github.com/aretw0/algoviz/pkg/sim/graphs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderParamsDecode(t *testing.T) {
	b := dsl.New().Directed()
	b.Add("a").To("b").Weighted("c", 7)
	b.Add("c")
	b.Add("a")

	g, err := graphs.Decode(b.Params())
	require.NoError(t, err)

	assert.True(t, g.Directed())
	assert.Equal(t, []string{"a", "c", "b"}, g.Nodes())

	edges := g.Edges()
	require.Len(t, edges, 2)
	assert.Equal(t, "a-b", edges[0].ID())
	assert.Equal(t, 7, edges[1].Weight)
}

func TestBuilderEdgeOnly(t *testing.T) {
	b := dsl.New().Edge("x", "y", 1).Edge("y", "z", 2)

	g, err := graphs.Decode(b.Params())
	require.NoError(t, err)
	assert.False(t, g.Directed())
	assert.Equal(t, []string{"x", "y", "z"}, g.Nodes())
}
