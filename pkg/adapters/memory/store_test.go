package memory_test

import (
	"context"
	"testing"

	"github.com/scalsui/scals/pkg/adapters/memory"
	"github.com/scalsui/scals/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	tests.RunSnapshotStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	snapshot := map[string]any{"user": map[string]any{"name": "Ada"}}
	require.NoError(t, store.Save(ctx, "s1", snapshot))

	// Mutating the original after Save must not leak into the store.
	snapshot["user"].(map[string]any)["name"] = "Eve"

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", loaded["user"].(map[string]any)["name"])

	// Mutating a loaded copy must not affect subsequent loads.
	loaded["user"].(map[string]any)["name"] = "Mallory"
	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", again["user"].(map[string]any)["name"])
}
