package registry_test

import (
	"testing"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/registry"
	"github.com/aretw0/algoviz/pkg/scenario"
	"github.com/aretw0/algoviz/pkg/sim"
	"github.com/aretw0/algoviz/pkg/sim/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinEverySimulationRuns(t *testing.T) {
	r := registry.Builtin()
	infos := r.List()
	require.Len(t, infos, 12)

	for _, info := range infos {
		presets, err := r.Presets(info.ID)
		require.NoError(t, err)
		require.NotEmpty(t, presets, info.ID)

		for _, p := range presets {
			inst, _, err := r.Prepare(info.ID, p.Name, 1)
			require.NoError(t, err, "%s/%s", info.ID, p.Name)

			states := sim.Drain(inst.Generate())
			last := states[len(states)-1].Head()
			assert.True(t, last.Phase.Terminal(), "%s/%s ends terminal", info.ID, p.Name)
			for i, s := range states {
				assert.Equal(t, i, s.Head().Tick, "%s/%s tick order", info.ID, p.Name)
			}
		}
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := registry.NewRegistry().Get("nope")
	assert.ErrorIs(t, err, domain.ErrUnknownModule)
}

func TestRegisterKeepsOrder(t *testing.T) {
	r := registry.NewRegistry(search.New())
	r.Register(search.New())
	assert.Len(t, r.List(), 1)
}

func TestPrepare(t *testing.T) {
	r := registry.Builtin()

	_, p, err := r.Prepare(search.ID, "", 0)
	require.NoError(t, err)
	assert.Equal(t, "classic", p.Name, "empty scenario selects the first preset")

	_, _, err = r.Prepare(search.ID, "nope", 0)
	assert.ErrorIs(t, err, domain.ErrUnknownScenario)
}

func TestExtraPresets(t *testing.T) {
	r := registry.Builtin()
	r.SetExtra(map[string][]scenario.Preset{
		search.ID: {
			{Name: "classic", Params: map[string]any{"values": []any{1, 2, 3}, "target": 3}},
			{Name: "mine", Params: map[string]any{"values": []any{5}, "target": 5}},
			{Name: "broken", Params: map[string]any{"values": []any{3, 2}, "target": 5}},
		},
	})

	presets, err := r.Presets(search.ID)
	require.NoError(t, err)
	assert.Equal(t, "classic", presets[0].Name)
	assert.Equal(t, []any{1, 2, 3}, presets[0].Params["values"], "override replaces built-in")
	assert.Equal(t, "broken", presets[len(presets)-1].Name)

	_, _, err = r.Prepare(search.ID, "mine", 0)
	assert.NoError(t, err)

	_, _, err = r.Prepare(search.ID, "broken", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}
