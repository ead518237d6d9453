package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_GetSet(t *testing.T) {
	ctx := context.Background()
	slot := memory.NewSlot(nil)

	_, found, err := slot.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, slot.Set(ctx, "k", "v1"))
	require.NoError(t, slot.Set(ctx, "k", "v2"))

	v, found, err := slot.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v2", v)
}

func TestSlot_SeedIsCopied(t *testing.T) {
	seed := map[string]string{"k": "seed"}
	slot := memory.NewSlot(seed)
	seed["k"] = "mutated"

	v, _, err := slot.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "seed", v)
}

func TestSlot_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slot := memory.NewSlot(nil)
	assert.ErrorIs(t, slot.Set(ctx, "k", "v"), context.Canceled)
}

func TestSlot_BacksStore(t *testing.T) {
	ctx := context.Background()
	slot := memory.NewSlot(nil)
	store := core.NewStore(slot)

	n := store.Create(ctx, core.NoteInput{Title: "hello"})

	// A second store over the same slot sees the write: no caching.
	other := core.NewStore(slot)
	got, ok := other.GetByID(ctx, n.ID)
	require.True(t, ok)
	assert.Equal(t, "hello", got.Title)

	state := store.State().(core.StoreState)
	assert.Equal(t, "memory", state.SlotType)
}
