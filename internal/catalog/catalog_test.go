package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeIndexFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid index", func(t *testing.T) {
		path := writeIndexFile(t, `{"b.json": "https://x/b", "a.json": "https://x/a"}`)

		store, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 2, store.Len())
		assert.Equal(t, []string{"a.json", "b.json"}, store.Identifiers())
		assert.Equal(t, "https://x/a", store.Lookup("a.json"))
		assert.Equal(t, "", store.Lookup("missing.json"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeIndexFile(t, `{"a.json": `)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("empty index", func(t *testing.T) {
		path := writeIndexFile(t, `{}`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("empty reference", func(t *testing.T) {
		path := writeIndexFile(t, `{"a.json": "  "}`)
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestIdentifiersAreACopy(t *testing.T) {
	path := writeIndexFile(t, `{"a.json": "https://x/a", "b.json": "https://x/b"}`)
	store, err := Load(path)
	require.NoError(t, err)

	ids := store.Identifiers()
	ids[0] = "mutated"
	assert.Equal(t, []string{"a.json", "b.json"}, store.Identifiers())
}
