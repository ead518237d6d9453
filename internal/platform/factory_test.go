package platform_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSlot struct{}

func (failingSlot) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func (failingSlot) Set(context.Context, string, string) error {
	return errors.New("disk on fire")
}

func TestNew_DefaultsToFS(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	store, err := platform.New(dir)
	require.NoError(t, err)

	n := store.Create(context.Background(), core.NoteInput{Title: "first"})

	_, err = os.Stat(filepath.Join(dir, core.DefaultKey+".json"))
	require.NoError(t, err, "collection file should exist")

	// A second store on the same directory sees the note.
	again, err := platform.New(dir)
	require.NoError(t, err)
	got, ok := again.GetByID(context.Background(), n.ID)
	require.True(t, ok)
	assert.Equal(t, n, got)
}

func TestNew_MustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := platform.New(missing, platform.WithMustExist(true))
	assert.Error(t, err)

	_, err = os.Stat(missing)
	assert.True(t, os.IsNotExist(err), "MustExist must not create the directory")
}

func TestNew_UnknownAdapter(t *testing.T) {
	_, err := platform.New("x", platform.WithAdapter("floppy"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floppy")
}

func TestNew_Memory(t *testing.T) {
	store, err := platform.New("", platform.WithAdapter("memory"))
	require.NoError(t, err)

	store.Create(context.Background(), core.NoteInput{Title: "volatile"})
	assert.Len(t, store.ListAll(context.Background()), 1)
	assert.Equal(t, "memory", store.State().(core.StoreState).SlotType)
}

func TestNew_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jot.db")

	store, slot, err := platform.Open(context.Background(), path,
		platform.WithAdapter("sqlite"),
		platform.WithSQLitePoolSize(2),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = slot.(interface{ Close() error }).Close() })

	store.Create(context.Background(), core.NoteInput{Title: "in a table"})
	assert.Len(t, store.ListAll(context.Background()), 1)
}

func TestNew_RejectsClosableAdapters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jot.db")

	_, err := platform.New(path, platform.WithAdapter("sqlite"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Open")

	// The pool was released, so the database can be opened again.
	store, slot, err := platform.Open(context.Background(), path, platform.WithAdapter("sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = slot.(interface{ Close() error }).Close() })
	assert.NotNil(t, store)
}

func TestNew_SQLDBRequiresDSN(t *testing.T) {
	_, err := platform.New("", platform.WithAdapter("postgres"))
	assert.Error(t, err)
}

func TestOpen_InjectedSlotAndStoreOptions(t *testing.T) {
	ctx := context.Background()
	slot := memory.NewSlot(nil)
	at := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	store, got, err := platform.Open(ctx, "ignored",
		platform.WithAdapter("floppy"), // skipped when a slot is injected
		platform.WithSlot(slot),
		platform.WithKey("custom"),
		platform.WithClock(func() time.Time { return at }),
		platform.WithIDGenerator(func() string { return "fixed" }),
	)
	require.NoError(t, err)
	assert.Same(t, slot, got)

	n := store.Create(ctx, core.NoteInput{Title: "t"})
	assert.Equal(t, "fixed", n.ID)
	assert.Equal(t, at, n.CreatedAt)

	_, found, _ := slot.Get(ctx, "custom")
	assert.True(t, found)
	_, found, _ = slot.Get(ctx, core.DefaultKey)
	assert.False(t, found)
}

func TestOpen_Diagnostics(t *testing.T) {
	var got []core.Diagnostic
	store, _, err := platform.Open(context.Background(), "",
		platform.WithSlot(failingSlot{}),
		platform.WithDiagnostics(func(d core.Diagnostic) { got = append(got, d) }),
	)
	require.NoError(t, err)

	store.Create(context.Background(), core.NoteInput{})

	require.Len(t, got, 2)
	assert.ErrorIs(t, got[0], core.ErrReadCorruption)
	assert.ErrorIs(t, got[1], core.ErrWriteFailure)
}
