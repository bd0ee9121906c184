package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreTests checks the behaviour every Store implementation shares.
// ordered is false for backends whose native ordering is not insertion order.
func runStoreTests(t *testing.T, newStore func(t *testing.T) Store, ordered bool) {
	t.Run("get missing key", func(t *testing.T) {
		s := newStore(t)
		_, ok, err := s.Get("missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set and get", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set("a", `{"count":5}`))

		val, ok, err := s.Get("a")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"count":5}`, val)
	})

	t.Run("overwrite keeps one entry", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set("a", "1"))
		require.NoError(t, s.Set("a", "2"))

		val, _, err := s.Get("a")
		require.NoError(t, err)
		assert.Equal(t, "2", val)

		n, err := s.Len()
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set("a", "1"))
		require.NoError(t, s.Delete("a"))
		require.NoError(t, s.Delete("a"), "deleting an absent key is not an error")

		_, ok, err := s.Get("a")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("keys and len", func(t *testing.T) {
		s := newStore(t)
		for _, k := range []string{"a", "b", "c"} {
			require.NoError(t, s.Set(k, "v"))
		}

		keys, err := s.Keys()
		require.NoError(t, err)
		if ordered {
			assert.Equal(t, []string{"a", "b", "c"}, keys)
		} else {
			assert.ElementsMatch(t, []string{"a", "b", "c"}, keys)
		}

		n, err := s.Len()
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("key by index", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set("a", "1"))
		require.NoError(t, s.Set("b", "2"))

		keys, err := s.Keys()
		require.NoError(t, err)
		for i, want := range keys {
			got, ok, err := s.Key(i)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, want, got)
		}

		_, ok, err := s.Key(2)
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = s.Key(-1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("clear twice", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set("a", "1"))
		require.NoError(t, s.Clear())
		require.NoError(t, s.Clear())

		n, err := s.Len()
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		keys, err := s.Keys()
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}
