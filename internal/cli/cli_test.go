package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/driver"
	"github.com/aretw0/algoviz/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, opts Options) *App {
	t.Helper()
	a, err := NewApp(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestWriteTrace(t *testing.T) {
	a := newTestApp(t, Options{})

	var buf bytes.Buffer
	require.NoError(t, a.WriteTrace(&buf, RunRequest{Module: "binary-search"}))

	var states []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &states))
	require.NotEmpty(t, states)
	assert.Equal(t, string(domain.PhaseIdle), states[0]["phase"])
	last := states[len(states)-1]
	assert.True(t, domain.Phase(last["phase"].(string)).Terminal())
}

func TestTraceUnknownModule(t *testing.T) {
	a := newTestApp(t, Options{})
	_, err := a.Trace(RunRequest{Module: "bogosort"})
	assert.ErrorIs(t, err, domain.ErrUnknownModule)
}

func TestWriteGraph(t *testing.T) {
	a := newTestApp(t, Options{})

	var buf bytes.Buffer
	require.NoError(t, a.WriteGraph(&buf, RunRequest{Module: "kruskal"}, -1))
	assert.Contains(t, buf.String(), "graph LR")

	buf.Reset()
	require.NoError(t, a.WriteGraph(&buf, RunRequest{Module: "bfs"}, 0))
	assert.Contains(t, buf.String(), "graph LR")

	err := a.WriteGraph(&buf, RunRequest{Module: "bfs"}, 10_000)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	err = a.WriteGraph(&buf, RunRequest{Module: "binary-search"}, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestScenarios(t *testing.T) {
	a := newTestApp(t, Options{})
	names, err := a.Scenarios("topological-sort")
	require.NoError(t, err)
	assert.NotEmpty(t, names)
}

func TestExtraScenarios(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`modules:
  binary-search:
    - name: tiny
      description: two values
      params:
        values: [1, 2]
        target: 2
`), 0o600))

	a := newTestApp(t, Options{Scenarios: path})
	names, err := a.Scenarios("binary-search")
	require.NoError(t, err)
	assert.Contains(t, names, "tiny")

	states, err := a.Trace(RunRequest{Module: "binary-search", Scenario: "tiny"})
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFound, states[len(states)-1].Head().Phase)
}

func TestExtraScenariosUnknownModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`modules:
  bogosort:
    - name: x
`), 0o600))

	_, err := NewApp(Options{Scenarios: path})
	assert.ErrorIs(t, err, domain.ErrUnknownModule)
}

func TestPlayHeadless(t *testing.T) {
	a := newTestApp(t, Options{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var buf bytes.Buffer
	err := a.PlayHeadless(ctx, &buf, RunRequest{Module: "binary-search", Speed: 4},
		driver.WithMinInterval(time.Millisecond),
		driver.WithBaseInterval(4*time.Millisecond),
	)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), ">>> binary-search")
	assert.Contains(t, buf.String(), "ticks")
}

func TestPlayHeadlessCancelled(t *testing.T) {
	a := newTestApp(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := a.PlayHeadless(ctx, &buf, RunRequest{Module: "lcs"}, driver.WithBaseInterval(time.Hour))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, HandleExecutionError(err))
}

func TestNewHostStores(t *testing.T) {
	a := newTestApp(t, Options{Badger: t.TempDir()})
	host, err := a.NewHost()
	require.NoError(t, err)

	sess, err := host.Manager.Create(context.Background(), session.CreateRequest{Module: "bfs"})
	require.NoError(t, err)
	_, err = host.Manager.Store().Load(context.Background(), sess.ID)
	require.NoError(t, err)

	bad := newTestApp(t, Options{Badger: t.TempDir(), Redis: "redis://localhost:6379"})
	_, err = bad.NewHost()
	assert.Error(t, err)
}
