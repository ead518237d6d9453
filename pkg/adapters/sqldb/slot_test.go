package sqldb_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/aretw0/jot/pkg/adapters/sqldb"
	"github.com/aretw0/jot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// sqliteSlot runs the generic adapter against an embedded database so the
// SQL paths are exercised without a MySQL or PostgreSQL server.
func sqliteSlot(t *testing.T) *sqldb.Slot {
	t.Helper()

	dialect, err := sqldb.LookupDialect("sqlite")
	require.NoError(t, err)

	db, err := sql.Open(dialect.Driver, filepath.Join(t.TempDir(), "slots.db"))
	require.NoError(t, err)

	slot := sqldb.New(db, dialect, nil)
	t.Cleanup(func() { _ = slot.Close() })
	require.NoError(t, slot.Initialize(context.Background()))
	return slot
}

func TestLookupDialect(t *testing.T) {
	for _, name := range []string{"mysql", "postgres", "sqlite"} {
		d, err := sqldb.LookupDialect(name)
		require.NoError(t, err)
		assert.Equal(t, name, d.Name)
		assert.NotEmpty(t, d.Schema)
		assert.NotEmpty(t, d.Select)
		assert.NotEmpty(t, d.Upsert)
	}

	_, err := sqldb.LookupDialect("oracle")
	assert.Error(t, err)
}

func TestLookupDialect_Drivers(t *testing.T) {
	mysql, _ := sqldb.LookupDialect("mysql")
	assert.Equal(t, "mysql", mysql.Driver)

	postgres, _ := sqldb.LookupDialect("postgres")
	assert.Equal(t, "pgx", postgres.Driver)
	assert.Contains(t, postgres.Select, "$1")
}

func TestOpen_Validation(t *testing.T) {
	_, err := sqldb.Open(sqldb.Config{Dialect: "mysql"})
	assert.Error(t, err, "missing DSN")

	_, err = sqldb.Open(sqldb.Config{Dialect: "nope", DSN: "x"})
	assert.Error(t, err, "unknown dialect")

	// sql.Open is lazy: a well-formed DSN opens without a server.
	slot, err := sqldb.Open(sqldb.Config{Dialect: "postgres", DSN: "postgres://u:p@127.0.0.1:1/jot?sslmode=disable"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", slot.ComponentType())
	require.NoError(t, slot.Close())
}

func TestSlot_GetSet(t *testing.T) {
	ctx := context.Background()
	slot := sqliteSlot(t)

	_, found, err := slot.Get(ctx, core.DefaultKey)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, slot.Set(ctx, core.DefaultKey, "[]"))
	require.NoError(t, slot.Set(ctx, core.DefaultKey, `[{"id":"1"}]`))

	v, found, err := slot.Get(ctx, core.DefaultKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"1"}]`, v)
}

func TestSlot_BacksStore(t *testing.T) {
	ctx := context.Background()
	store := core.NewStore(sqliteSlot(t))

	a := store.Create(ctx, core.NoteInput{Title: "a"})
	store.Create(ctx, core.NoteInput{Title: "b"})

	assert.True(t, store.Delete(ctx, a.ID))
	assert.False(t, store.Delete(ctx, a.ID))
	assert.Len(t, store.ListAll(ctx), 1)
}
