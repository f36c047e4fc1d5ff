package search_test

import (
	"math"
	"testing"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/scenario"
	"github.com/aretw0/algoviz/pkg/sim"
	"github.com/aretw0/algoviz/pkg/sim/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maxComparisons(n int) int {
	return int(math.Ceil(math.Log2(float64(n + 1))))
}

func TestClassicScenario(t *testing.T) {
	values := make([]int, 16)
	for i := range values {
		values[i] = (i + 1) * 10
	}
	tr := search.Run(values, 40)
	last := tr.Last()

	assert.Equal(t, domain.PhaseFound, last.Phase)
	assert.Equal(t, 3, last.FoundIndex)
	assert.LessOrEqual(t, last.Comparisons, 5)
	assert.Equal(t, domain.TagFound, last.Tags[3])
	assert.Equal(t, last.Comparisons, last.Tick, "one comparison per tick")
}

func TestFoundIffPresent(t *testing.T) {
	for n := 0; n <= 33; n++ {
		values := make([]int, n)
		for i := range values {
			values[i] = i * 2
		}
		for target := -1; target <= 2*n; target++ {
			last := search.Run(values, target).Last()
			present := target >= 0 && target%2 == 0 && target/2 < n

			if present {
				require.Equal(t, domain.PhaseFound, last.Phase, "n=%d target=%d", n, target)
				require.Equal(t, target, values[last.FoundIndex])
			} else {
				require.Equal(t, domain.PhaseNotFound, last.Phase, "n=%d target=%d", n, target)
				require.Equal(t, -1, last.FoundIndex)
			}
			require.LessOrEqual(t, last.Comparisons, maxComparisons(n), "n=%d target=%d", n, target)
		}
	}
}

func TestEmptyAndSingle(t *testing.T) {
	tr := search.Run(nil, 3)
	require.Len(t, tr.Steps, 1)
	assert.Equal(t, domain.PhaseNotFound, tr.Last().Phase)
	assert.Zero(t, tr.Last().Comparisons)

	hit := search.Run([]int{5}, 5).Last()
	assert.Equal(t, domain.PhaseFound, hit.Phase)
	assert.Equal(t, 1, hit.Comparisons)

	miss := search.Run([]int{5}, 6).Last()
	assert.Equal(t, domain.PhaseNotFound, miss.Phase)
	assert.Equal(t, 1, miss.Comparisons)
}

func TestSnapshotsAreIndependent(t *testing.T) {
	tr := search.Run([]int{1, 2, 3, 4, 5, 6, 7}, 7)
	first := tr.Steps[0]
	require.Equal(t, domain.TagEliminated, first.Tags[0])
	assert.Equal(t, domain.TagCandidate, tr.Initial.Tags[0])
	assert.Len(t, first.Log, 1)
	assert.Len(t, tr.Last().Log, tr.Last().Tick)
}

func TestPrepare(t *testing.T) {
	s := search.New()

	t.Run("presets", func(t *testing.T) {
		for _, p := range s.Presets() {
			inst, err := s.Prepare(p, sim.DefaultEnv(1))
			require.NoError(t, err, p.Name)
			states := sim.Drain(inst.Generate())
			assert.True(t, states[len(states)-1].Head().Phase.Terminal(), p.Name)
		}
	})

	t.Run("random is seeded", func(t *testing.T) {
		p, err := scenario.Find(s.Presets(), "random")
		require.NoError(t, err)

		a, err := s.Prepare(p, sim.DefaultEnv(42))
		require.NoError(t, err)
		b, err := s.Prepare(p, sim.DefaultEnv(42))
		require.NoError(t, err)
		assert.Equal(t, sim.Drain(a.Generate()), sim.Drain(b.Generate()))

		last := sim.Drain(a.Generate())
		assert.Equal(t, domain.PhaseFound, last[len(last)-1].Head().Phase)
	})

	t.Run("empty random array", func(t *testing.T) {
		inst, err := s.Prepare(scenario.Preset{Name: "none", Params: map[string]any{"size": 0, "random": true}}, sim.DefaultEnv(3))
		require.NoError(t, err)
		states := sim.Drain(inst.Generate())
		last := states[len(states)-1].(search.State)
		assert.Equal(t, domain.PhaseNotFound, last.Phase)
		assert.Zero(t, last.Comparisons)
	})

	t.Run("invalid params", func(t *testing.T) {
		cases := []map[string]any{
			{"values": []any{3, 1, 2}, "target": 1},
			{"values": []any{1, 2}},
			{"values": []any{1}, "target": 1, "bogus": true},
			{"size": -1, "random": true},
		}
		for _, params := range cases {
			_, err := s.Prepare(scenario.Preset{Name: "bad", Params: params}, sim.DefaultEnv(1))
			assert.ErrorIs(t, err, domain.ErrInvalidParameter, "%v", params)
		}
	})
}
