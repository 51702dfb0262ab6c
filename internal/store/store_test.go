package store

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) KV {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Every pooled connection to :memory: is a distinct database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL, updated_at TEXT NOT NULL)`)
	require.NoError(t, err)
	return NewSQLite(db)
}

func kvImpls(t *testing.T) map[string]KV {
	return map[string]KV{
		"memory": NewMemory(),
		"sqlite": openTestSQLite(t),
	}
}

func TestKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvImpls(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Put(ctx, "a", []byte(`{"n":1}`)))
			v, ok, err := kv.Get(ctx, "a")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []byte(`{"n":1}`), v)

			// Upsert overwrites.
			require.NoError(t, kv.Put(ctx, "a", []byte(`{"n":2}`)))
			v, _, _ = kv.Get(ctx, "a")
			assert.Equal(t, []byte(`{"n":2}`), v)

			require.NoError(t, kv.Delete(ctx, "a"))
			_, ok, err = kv.Get(ctx, "a")
			require.NoError(t, err)
			assert.False(t, ok)

			// Deleting an absent key is a no-op.
			assert.NoError(t, kv.Delete(ctx, "a"))
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	in := []byte("abc")
	require.NoError(t, kv.Put(ctx, "k", in))
	in[0] = 'x'

	out, _, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	out[0] = 'y'
	again, _, _ := kv.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), again)
}

func TestNamespacedIsolation(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	alice := Namespaced(base, "owner-a")
	bob := Namespaced(base, "owner-b")

	require.NoError(t, alice.Put(ctx, "progress:loldle", []byte("a")))
	require.NoError(t, bob.Put(ctx, "progress:loldle", []byte("b")))

	v, ok, err := alice.Get(ctx, "progress:loldle")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("a"), v)

	require.NoError(t, alice.Delete(ctx, "progress:loldle"))
	_, ok, _ = alice.Get(ctx, "progress:loldle")
	assert.False(t, ok)

	v, ok, _ = bob.Get(ctx, "progress:loldle")
	require.True(t, ok)
	assert.Equal(t, []byte("b"), v)
}

func TestNamespacedNesting(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	inner := Namespaced(Namespaced(base, "owner"), "progress")

	require.NoError(t, inner.Put(ctx, "loldle", []byte("v")))
	v, ok, err := base.Get(ctx, "owner:progress:loldle")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)
}
