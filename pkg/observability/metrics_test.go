package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tick(module string, n int, phase domain.Phase) *domain.TickEvent {
	return &domain.TickEvent{
		EventBase: domain.EventBase{Type: domain.EventTick, Module: module},
		Tick:      n,
		Phase:     phase,
		Duration:  time.Millisecond,
	}
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	h := m.Hooks()
	ctx := context.Background()

	h.OnTick(ctx, tick("bfs", 1, domain.PhaseRunning))
	h.OnTick(ctx, tick("bfs", 2, domain.PhaseComplete))
	h.OnComplete(ctx, tick("bfs", 2, domain.PhaseComplete))
	h.OnStatusChange(ctx, &domain.StatusEvent{From: "idle", To: "running"})

	assert.InDelta(t, 2, testutil.ToFloat64(m.Ticks.WithLabelValues("bfs")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Completed.WithLabelValues("bfs", "complete")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Status.WithLabelValues("idle", "running")), 1e-9)
	assert.Equal(t, 1, testutil.CollectAndCount(m.Latency))

	m.DriverOpened("bfs")
	m.DriverOpened("bfs")
	m.DriverClosed("bfs")
	assert.InDelta(t, 1, testutil.ToFloat64(m.Active.WithLabelValues("bfs")), 1e-9)

	expected := `
# HELP algoviz_runs_completed_total Runs that reached a terminal phase, by phase.
# TYPE algoviz_runs_completed_total counter
algoviz_runs_completed_total{module="bfs",phase="complete"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "algoviz_runs_completed_total"))
}

func TestChain(t *testing.T) {
	var order []string
	a := domain.LifecycleHooks{OnTick: func(context.Context, *domain.TickEvent) { order = append(order, "a") }}
	b := domain.LifecycleHooks{
		OnTick:     func(context.Context, *domain.TickEvent) { order = append(order, "b") },
		OnComplete: func(context.Context, *domain.TickEvent) { order = append(order, "done") },
	}

	h := observability.Chain(a, domain.LifecycleHooks{}, b)
	require.NotNil(t, h.OnTick)
	assert.Nil(t, h.OnStatusChange)

	h.OnTick(context.Background(), tick("x", 1, domain.PhaseRunning))
	h.OnComplete(context.Background(), tick("x", 1, domain.PhaseComplete))
	assert.Equal(t, []string{"a", "b", "done"}, order)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := observability.LoggingHooks(logger)

	h.OnComplete(context.Background(), tick("prim", 7, domain.PhaseComplete))
	assert.Contains(t, buf.String(), "msg=complete")
	assert.Contains(t, buf.String(), "module=prim")
	assert.Contains(t, buf.String(), "ticks=7")
}
