// Package tests provides a reusable contract suite for SnapshotStore
// implementations. Every adapter (memory, redis, future backends) runs the
// same suite so behavior stays interchangeable.
package tests

import (
	"context"
	"testing"
	"time"

	"github.com/scalsui/scals/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract verifies that a SnapshotStore implementation
// adheres to the interface contract.
func RunSnapshotStoreContract(t *testing.T, store ports.SnapshotStore) {
	ctx := context.Background()
	sessionID := "contract-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snapshot := map[string]any{
			"counter": int64(42),
			"user":    map[string]any{"name": "Ada"},
		}

		err := store.Save(ctx, sessionID, snapshot)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "Ada", loaded["user"].(map[string]any)["name"])
		// JSON-backed stores may not preserve integer width; only presence
		// and value identity after normalization are part of the contract.
		assert.NotNil(t, loaded["counter"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, ports.ErrSnapshotNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, map[string]any{"v": "first"}))
		require.NoError(t, store.Save(ctx, sessionID, map[string]any{"v": "second"}))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "second", loaded["v"])
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, map[string]any{}))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, ports.ErrSnapshotNotFound, "Load after Delete should report not found")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, map[string]any{})
		_ = store.Save(ctx, id2, map[string]any{})

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
