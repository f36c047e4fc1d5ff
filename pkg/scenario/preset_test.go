package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchParams struct {
	Values []int `mapstructure:"values" validate:"max=64"`
	Target int   `mapstructure:"target"`
	Size   int   `mapstructure:"size" validate:"gte=0,lte=64"`
}

func TestDecode(t *testing.T) {
	t.Run("Weak Typing From JSON And CLI", func(t *testing.T) {
		var p searchParams
		err := scenario.Decode(map[string]any{
			"values": []any{float64(1), float64(2)},
			"target": "2",
		}, &p)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, p.Values)
		assert.Equal(t, 2, p.Target)
	})

	t.Run("Unknown Key Rejected", func(t *testing.T) {
		var p searchParams
		err := scenario.Decode(map[string]any{"tagret": 3}, &p)
		assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	})

	t.Run("Non Numeric Target Rejected", func(t *testing.T) {
		var p searchParams
		err := scenario.Decode(map[string]any{"target": "forty"}, &p)
		assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	})

	t.Run("Validation Failure", func(t *testing.T) {
		var p searchParams
		err := scenario.Decode(map[string]any{"size": 1000}, &p)
		assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	})

	t.Run("Nil Params", func(t *testing.T) {
		var p searchParams
		require.NoError(t, scenario.Decode(nil, &p))
	})
}

func TestPresetWith(t *testing.T) {
	base := scenario.Preset{Name: "a", Params: map[string]any{"target": 1, "size": 4}}
	over := base.With(map[string]any{"target": 9})

	assert.Equal(t, 9, over.Params["target"])
	assert.Equal(t, 4, over.Params["size"])
	assert.Equal(t, 1, base.Params["target"], "original preset must not change")
}

func TestFind(t *testing.T) {
	presets := []scenario.Preset{{Name: "a"}, {Name: "b"}}
	p, err := scenario.Find(presets, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", p.Name)

	_, err = scenario.Find(presets, "zzz")
	assert.ErrorIs(t, err, domain.ErrUnknownScenario)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing File Is Empty", func(t *testing.T) {
		got, err := scenario.LoadFile(filepath.Join(dir, "nope.yaml"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(dir, "scenarios.yaml")
		content := `
modules:
  binary-search:
    - name: tiny
      description: two elements
      params:
        values: [5, 9]
        target: 9
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		got, err := scenario.LoadFile(path)
		require.NoError(t, err)
		require.Len(t, got["binary-search"], 1)
		assert.Equal(t, "tiny", got["binary-search"][0].Name)
		assert.Equal(t, 9, got["binary-search"][0].Params["target"])
	})

	t.Run("Preset Without Name Rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"modules":{"bfs":[{"description":"x"}]}}`), 0o644))
		_, err := scenario.LoadFile(path)
		assert.Error(t, err)
	})
}
