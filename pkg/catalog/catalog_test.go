package catalog_test

import (
	"strings"
	"testing"

	"github.com/aretw0/algoviz/pkg/catalog"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := catalog.Default()
	require.NotEmpty(t, c.Domains)
	assert.Equal(t, "algorithms", c.Domains[0].ID)

	m, ok := c.Lookup("topological-sort")
	require.True(t, ok)
	assert.Equal(t, "/graphs/topological-sort", m.Path)

	_, ok = c.Lookup("nope")
	assert.False(t, ok)

	for _, m := range c.Available() {
		assert.Equal(t, domain.StatusAvailable, m.Status)
	}
}

func TestDefaultMatchesBuiltinRegistry(t *testing.T) {
	reg := registry.Builtin()
	known := func(id string) bool {
		_, err := reg.Get(id)
		return err == nil
	}
	assert.NoError(t, catalog.Default().CheckSimulations(known))
	assert.ErrorIs(t, catalog.Default().CheckSimulations(func(string) bool { return false }), catalog.ErrUnknownSimulation)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad status": `
domains:
  - id: a
    title: A
    modules:
      - {id: m, title: M, status: beta, path: /m}
`,
		"relative path": `
domains:
  - id: a
    title: A
    modules:
      - {id: m, title: M, status: available, path: m}
`,
		"unknown field": `
domains:
  - id: a
    title: A
    colour: red
`,
		"empty": `domains: []`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.Load(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad_DuplicateIDs(t *testing.T) {
	doc := `
domains:
  - id: a
    title: A
    modules:
      - {id: m, title: M, status: available, path: /m}
  - id: b
    title: B
    modules:
      - {id: m, title: M2, status: coming-soon, path: /m2}
`
	_, err := catalog.Load(strings.NewReader(doc))
	assert.ErrorIs(t, err, catalog.ErrDuplicateID)
}
