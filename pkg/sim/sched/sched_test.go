package sched_test

import (
	"fmt"
	"testing"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/scenario"
	"github.com/aretw0/algoviz/pkg/sim"
	"github.com/aretw0/algoviz/pkg/sim/sched"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render() []sched.Task {
	tasks := []sched.Task{{ID: "load", Work: 4}}
	var tiles []string
	for i := 1; i <= 8; i++ {
		id := fmt.Sprintf("tile-%d", i)
		tiles = append(tiles, id)
		tasks = append(tasks, sched.Task{ID: id, Work: 8, Deps: []string{"load"}})
	}
	return append(tasks, sched.Task{ID: "compose", Work: 4, Deps: tiles})
}

func batch(n, work int) []sched.Task {
	out := make([]sched.Task, n)
	for i := range out {
		out[i] = sched.Task{ID: fmt.Sprintf("b%d", i+1), Work: work}
	}
	return out
}

func TestRenderOnCPU(t *testing.T) {
	tr, err := sched.Run(render(), sched.CPU)
	require.NoError(t, err)

	last := tr.Last()
	assert.Equal(t, domain.PhaseComplete, last.Phase)
	assert.Equal(t, 6, last.Cycle)
	assert.Equal(t, 18, last.Busy)
	assert.InDelta(t, 0.75, last.Utilization, 1e-9)
	assert.InDelta(t, 1.0, last.Progress, 1e-9)
	assert.Len(t, tr.Steps, 6, "one cycle per tick")

	// Cores are filled in declaration order, the rest wait.
	second := tr.Steps[1]
	assert.Equal(t, []string{"tile-1", "tile-2", "tile-3", "tile-4"}, second.Cores)
	assert.Equal(t, domain.TagReady, second.Tasks[5].Tag)
}

func TestDependentsWaitOneCycle(t *testing.T) {
	tasks := []sched.Task{{ID: "a", Work: 1}, {ID: "b", Work: 1, Deps: []string{"a"}}}
	tr, err := sched.Run(tasks, sched.Device{Name: "x", Cores: 2, Speed: 1})
	require.NoError(t, err)

	last := tr.Last()
	assert.Equal(t, 2, last.Cycle)
	assert.Equal(t, 1, last.Tasks[0].Finish)
	assert.Equal(t, 2, last.Tasks[1].Start)
}

func TestCompareLockstep(t *testing.T) {
	tr, err := sched.RunCompare(render(), sched.CPU, sched.GPU)
	require.NoError(t, err)

	last := tr.Last()
	assert.Equal(t, domain.PhaseComplete, last.Phase)
	assert.Equal(t, 6, last.CPU.Cycle)
	assert.Equal(t, 16, last.GPU.Cycle)
	assert.Len(t, tr.Steps, 16)
	assert.InDelta(t, 6.0/16.0, last.Speedup, 1e-9)

	// The CPU stays frozen after it finishes.
	assert.Equal(t, tr.Steps[5].CPU, tr.Steps[10].CPU)
	assert.Equal(t, domain.PhaseComplete, tr.Steps[5].CPU.Phase)
	assert.Equal(t, domain.PhaseRunning, tr.Steps[5].Phase)
}

func TestCompareBatchFavorsGPU(t *testing.T) {
	tr, err := sched.RunCompare(batch(64, 4), sched.CPU, sched.GPU)
	require.NoError(t, err)

	last := tr.Last()
	assert.Equal(t, 16, last.CPU.Cycle)
	assert.Equal(t, 8, last.GPU.Cycle)
	assert.InDelta(t, 2.0, last.Speedup, 1e-9)
}

func TestEmptyTaskGraph(t *testing.T) {
	tr, err := sched.Run(nil, sched.CPU)
	require.NoError(t, err)
	require.Len(t, tr.Steps, 1)
	assert.Equal(t, domain.PhaseComplete, tr.Last().Phase)
	assert.Zero(t, tr.Last().Utilization)
}

func TestInvalidGraphs(t *testing.T) {
	cases := map[string]struct {
		tasks []sched.Task
		want  error
	}{
		"unknown dep": {[]sched.Task{{ID: "a", Work: 1, Deps: []string{"zz"}}}, sched.ErrUnknownDependency},
		"duplicate":   {[]sched.Task{{ID: "a", Work: 1}, {ID: "a", Work: 1}}, sched.ErrDuplicateTask},
		"cycle": {[]sched.Task{
			{ID: "a", Work: 1, Deps: []string{"b"}},
			{ID: "b", Work: 1, Deps: []string{"a"}},
		}, sched.ErrDependencyCycle},
	}
	for name, tc := range cases {
		_, err := sched.Run(tc.tasks, sched.CPU)
		assert.ErrorIs(t, err, tc.want, name)
		assert.ErrorIs(t, err, domain.ErrInvalidParameter, name)
	}

	_, err := sched.Run(batch(1, 1), sched.Device{Cores: 0, Speed: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestMachineStepAfterDoneIsNoop(t *testing.T) {
	m, err := sched.NewMachine(batch(1, 1), sched.CPU)
	require.NoError(t, err)
	done := m.Step()
	require.True(t, m.Done())
	assert.Equal(t, done, m.Step())
}

func TestPresets(t *testing.T) {
	for _, s := range []sim.Simulation{sched.New(), sched.NewCompare()} {
		for _, p := range s.Presets() {
			a, err := s.Prepare(p, sim.DefaultEnv(11))
			require.NoError(t, err, p.Name)
			b, err := s.Prepare(p, sim.DefaultEnv(11))
			require.NoError(t, err)
			sa, sb := sim.Drain(a.Generate()), sim.Drain(b.Generate())
			assert.Equal(t, sa, sb)
			assert.Equal(t, domain.PhaseComplete, sa[len(sa)-1].Head().Phase)
		}
	}

	_, err := sched.New().Prepare(scenario.Preset{Name: "bad", Params: map[string]any{
		"device": map[string]any{"cores": 0, "speed": 1},
	}}, sim.DefaultEnv(0))
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}
