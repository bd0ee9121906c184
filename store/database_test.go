package store

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabaseStore(t *testing.T, path, namespace string) *DatabaseStore {
	t.Helper()
	ds, err := OpenDatabaseStore(sqlite.Open(path), namespace)
	require.NoError(t, err)
	t.Cleanup(func() { ds.Close() })
	return ds
}

func TestDatabaseStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) Store {
		return newTestDatabaseStore(t, filepath.Join(t.TempDir(), "stash.db"), "local")
	}, true)
}

func TestDatabaseStoreOverwriteKeepsPosition(t *testing.T) {
	ds := newTestDatabaseStore(t, filepath.Join(t.TempDir(), "stash.db"), "local")
	require.NoError(t, ds.Set("a", "1"))
	require.NoError(t, ds.Set("b", "2"))
	require.NoError(t, ds.Set("a", "3"))

	keys, err := ds.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	val, _, err := ds.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "3", val)
}

func TestDatabaseStoreNamespaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stash.db")
	local := newTestDatabaseStore(t, path, "local")
	session := newTestDatabaseStore(t, path, "session")

	require.NoError(t, local.Set("k", "durable"))
	require.NoError(t, session.Set("k", "scoped"))
	require.NoError(t, session.Clear())

	val, ok, err := local.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "durable", val)

	n, err := session.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
