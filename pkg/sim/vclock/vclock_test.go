package vclock_test

import (
	"testing"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/scenario"
	"github.com/aretw0/algoviz/pkg/sim"
	"github.com/aretw0/algoviz/pkg/sim/vclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b vclock.Clock
		want vclock.Relation
	}{
		{vclock.Clock{1, 0}, vclock.Clock{1, 0}, vclock.Equal},
		{vclock.Clock{1, 0}, vclock.Clock{1, 1}, vclock.Before},
		{vclock.Clock{2, 1}, vclock.Clock{1, 1}, vclock.After},
		{vclock.Clock{1, 0}, vclock.Clock{0, 1}, vclock.Concurrent},
		{vclock.Clock{1}, vclock.Clock{1, 0}, vclock.Equal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, vclock.Compare(tt.a, tt.b), "%v vs %v", tt.a, tt.b)
	}
	assert.True(t, vclock.HappensBefore(vclock.Clock{0, 1}, vclock.Clock{1, 1}))
	assert.True(t, vclock.IsConcurrent(vclock.Clock{0, 1}, vclock.Clock{1, 0}))
}

func TestMergeAndTickDoNotAlias(t *testing.T) {
	c := vclock.Clock{1, 2}
	ticked := c.Tick(0)
	merged := c.Merge(vclock.Clock{0, 5})

	assert.Equal(t, vclock.Clock{1, 2}, c)
	assert.Equal(t, vclock.Clock{2, 2}, ticked)
	assert.Equal(t, vclock.Clock{1, 5}, merged)
	assert.Equal(t, "[1,2]", c.String())
}

func chat(t *testing.T) *sim.Trace[vclock.State] {
	t.Helper()
	script := []vclock.Action{
		{Kind: vclock.Local, Process: 0},
		{Kind: vclock.Send, Process: 0, Message: "hello"},
		{Kind: vclock.Local, Process: 2},
		{Kind: vclock.Receive, Process: 1, Message: "hello"},
		{Kind: vclock.Send, Process: 1, Message: "reply"},
		{Kind: vclock.Local, Process: 0},
		{Kind: vclock.Receive, Process: 2, Message: "reply"},
		{Kind: vclock.Send, Process: 2, Message: "ack"},
		{Kind: vclock.Receive, Process: 0, Message: "ack"},
	}
	tr, err := vclock.Run(3, script, sim.NewSequence("e"))
	require.NoError(t, err)
	return tr
}

func TestChat(t *testing.T) {
	tr := chat(t)
	last := tr.Last()

	assert.Equal(t, domain.PhaseComplete, last.Phase)
	assert.Len(t, tr.Steps, 9, "one event per tick")
	assert.Equal(t, vclock.Clock{4, 2, 3}, last.Clocks[0])
	assert.Equal(t, vclock.Clock{2, 2, 0}, last.Clocks[1])
	assert.Equal(t, vclock.Clock{2, 2, 3}, last.Clocks[2])
	assert.Empty(t, last.InFlight)

	ev := last.Events
	assert.Equal(t, "e1", ev[0].ID)
	assert.Equal(t, "e9", ev[8].ID)
	assert.Equal(t, vclock.Before, vclock.Compare(ev[0].Clock, ev[8].Clock))
	assert.Equal(t, vclock.Concurrent, vclock.Compare(ev[2].Clock, ev[0].Clock))
	assert.Equal(t, vclock.Concurrent, vclock.Compare(ev[5].Clock, ev[4].Clock))

	cur, ok := last.Current()
	require.True(t, ok)
	assert.Equal(t, domain.TagCurrent, last.Tags[cur.ID])
	assert.Equal(t, domain.TagDependency, last.Tags["e1"])

	_, ok = tr.Initial.Current()
	assert.False(t, ok)
}

func TestExactlyOneRelation(t *testing.T) {
	s := vclock.New()
	p, err := scenario.Find(s.Presets(), "random")
	require.NoError(t, err)

	for seed := int64(0); seed < 10; seed++ {
		inst, err := s.Prepare(p, sim.DefaultEnv(seed))
		require.NoError(t, err)
		states := sim.Drain(inst.Generate())
		events := states[len(states)-1].(vclock.State).Events

		inverse := map[vclock.Relation]vclock.Relation{
			vclock.Before: vclock.After, vclock.After: vclock.Before,
			vclock.Concurrent: vclock.Concurrent, vclock.Equal: vclock.Equal,
		}
		for i, a := range events {
			for j, b := range events {
				r := vclock.Compare(a.Clock, b.Clock)
				if i == j {
					assert.Equal(t, vclock.Equal, r)
					continue
				}
				assert.NotEqual(t, vclock.Equal, r, "distinct events have distinct clocks")
				assert.Equal(t, inverse[r], vclock.Compare(b.Clock, a.Clock))
			}
		}
	}
}

func TestInvalidScripts(t *testing.T) {
	cases := map[string]struct {
		procs  int
		script []vclock.Action
		want   error
	}{
		"unknown process": {2, []vclock.Action{{Kind: vclock.Local, Process: 5}}, vclock.ErrUnknownProcess},
		"receive first":   {2, []vclock.Action{{Kind: vclock.Receive, Process: 1, Message: "m"}}, vclock.ErrReceiveBeforeSend},
		"label reused": {2, []vclock.Action{
			{Kind: vclock.Send, Process: 0, Message: "m"},
			{Kind: vclock.Send, Process: 1, Message: "m"},
		}, vclock.ErrDuplicateMessage},
	}
	for name, tc := range cases {
		_, err := vclock.Run(tc.procs, tc.script, sim.NewSequence("e"))
		assert.ErrorIs(t, err, tc.want, name)
		assert.ErrorIs(t, err, domain.ErrInvalidParameter, name)
	}

	_, err := vclock.New().Prepare(scenario.Preset{Name: "bad", Params: map[string]any{
		"processes": 2,
		"script":    []any{map[string]any{"kind": "send", "process": 0}},
	}}, sim.DefaultEnv(0))
	assert.ErrorIs(t, err, domain.ErrInvalidParameter, "send without a label")
}

func TestPresetsReplay(t *testing.T) {
	s := vclock.New()
	for _, p := range s.Presets() {
		a, err := s.Prepare(p, sim.DefaultEnv(3))
		require.NoError(t, err, p.Name)
		b, err := s.Prepare(p, sim.DefaultEnv(3))
		require.NoError(t, err)
		assert.Equal(t, sim.Drain(a.Generate()), sim.Drain(b.Generate()), p.Name)
	}
}
