package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/algoviz/pkg/adapters/memory"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/persistence/middleware"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore fails every Save.
type failingStore struct {
	ports.SessionStore
}

var errDisk = errors.New("disk full")

func (failingStore) Save(context.Context, *domain.Session) error { return errDisk }

func TestChainedStore_Contract(t *testing.T) {
	reg := prometheus.NewRegistry()
	store := middleware.Chain(memory.NewStore(),
		middleware.Logging(slog.New(slog.DiscardHandler)),
		middleware.Instrumented(middleware.NewStoreMetrics(reg, "memory")),
	)
	ports.RunSessionStoreContract(t, store)
}

func TestInstrumented(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := middleware.NewStoreMetrics(reg, "memory")
	store := middleware.Instrumented(m)(failingStore{memory.NewStore()})
	ctx := context.Background()

	assert.ErrorIs(t, store.Save(ctx, &domain.Session{ID: "a"}), errDisk)
	_, err := store.Load(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.InDelta(t, 1, testutil.ToFloat64(m.Errors.WithLabelValues("save")), 1e-9)
	assert.InDelta(t, 0, testutil.ToFloat64(m.Errors.WithLabelValues("load")), 1e-9, "not found is not an error")
	assert.Equal(t, 2, testutil.CollectAndCount(m.Duration))
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	store := middleware.Logging(logger)(failingStore{memory.NewStore()})
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Empty(t, buf.String())

	require.Error(t, store.Save(ctx, &domain.Session{ID: "s1"}))
	assert.Contains(t, buf.String(), "op=save")
	assert.Contains(t, buf.String(), "session_id=s1")
}
