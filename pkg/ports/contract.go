package ports

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	record := func(id string) *domain.Session {
		return &domain.Session{
			ID:        id,
			Module:    "binary-search",
			Scenario:  "classic",
			Seed:      42,
			Cursor:    3,
			Speed:     1.5,
			Status:    domain.RunPaused,
			UpdatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		s := record(sessionID)
		require.NoError(t, store.Save(ctx, s), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, s.Module, loaded.Module)
		assert.Equal(t, s.Scenario, loaded.Scenario)
		assert.Equal(t, s.Seed, loaded.Seed)
		assert.Equal(t, s.Cursor, loaded.Cursor)
		assert.InDelta(t, s.Speed, loaded.Speed, 1e-9)
		assert.Equal(t, s.Status, loaded.Status)
		assert.True(t, s.UpdatedAt.Equal(loaded.UpdatedAt))
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		s := record(sessionID)
		s.Cursor = 9
		require.NoError(t, store.Save(ctx, s))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 9, loaded.Cursor)
	})

	t.Run("Isolation", func(t *testing.T) {
		s := record(sessionID)
		require.NoError(t, store.Save(ctx, s))
		s.Cursor = 100

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 3, loaded.Cursor, "mutating the saved value must not change the store")

		loaded.Cursor = 200
		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 3, again.Cursor, "mutating a loaded value must not change the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, record(sessionID)))

		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, record(id1)))
		require.NoError(t, store.Save(ctx, record(id2)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// RunLockerContract verifies mutual exclusion and release of a DistributedLocker.
func RunLockerContract(t *testing.T, locker DistributedLocker) {
	ctx := context.Background()
	key := "contract-lock-" + time.Now().Format("20060102150405")

	t.Run("Lock and Unlock", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, key, 5*time.Second)
		require.NoError(t, err)
		require.NoError(t, unlock(ctx))

		unlock, err = locker.Lock(ctx, key, 5*time.Second)
		require.NoError(t, err, "lock is reusable after release")
		require.NoError(t, unlock(ctx))
	})

	t.Run("Mutual Exclusion", func(t *testing.T) {
		var (
			inside  atomic.Int32
			overlap atomic.Bool
			wg      sync.WaitGroup
		)
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := locker.Lock(ctx, key, 5*time.Second)
				if !assert.NoError(t, err) {
					return
				}
				if inside.Add(1) > 1 {
					overlap.Store(true)
				}
				time.Sleep(5 * time.Millisecond)
				inside.Add(-1)
				assert.NoError(t, unlock(ctx))
			}()
		}
		wg.Wait()
		assert.False(t, overlap.Load(), "two holders at once")
	})

	t.Run("Canceled Context", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, key, 5*time.Second)
		require.NoError(t, err)
		defer func() { _ = unlock(ctx) }()

		cctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_, err = locker.Lock(cctx, key, 5*time.Second)
		assert.Error(t, err, "waiting for a held lock must honor the context")
	})
}
