package localstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE local_storage (
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetItem(ctx, "userInfo", `{"name":"A"}`))

	v, ok, err := r.GetItem(ctx, "userInfo")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"name":"A"}`, v)
}

func TestGet_Missing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, ok, err := r.GetItem(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSet_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetItem(ctx, "k", "old"))
	require.NoError(t, r.SetItem(ctx, "k", "new"))

	v, _, err := r.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", v)

	keys, err := r.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)
}

func TestRemove_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetItem(ctx, "x", "1"))
	require.NoError(t, r.RemoveItem(ctx, "x"))

	_, ok, err := r.GetItem(ctx, "x")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.RemoveItem(ctx, "x"))
}

func TestKeys_Sorted(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetItem(ctx, "b", "2"))
	require.NoError(t, r.SetItem(ctx, "a", "1"))

	keys, err := r.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, _, err := r.GetItem(ctx, "k")
	require.ErrorContains(t, err, "failed to get item[k]")

	require.ErrorContains(t, r.SetItem(ctx, "k", "v"), "failed to set item[k]")
	require.ErrorContains(t, r.RemoveItem(ctx, "k"), "failed to remove item[k]")

	_, err = r.Keys(ctx)
	require.ErrorContains(t, err, "failed to list keys")
}
