package refs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minigit/internal/errors"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	store, err := NewStore(root)
	require.NoError(t, err)
	return store, root
}

func TestHead(t *testing.T) {
	t.Run("defaults to master when never written", func(t *testing.T) {
		store, _ := newTestStore(t)

		head, err := store.Head()
		require.NoError(t, err)
		branch, ok := head.Branch()
		assert.True(t, ok)
		assert.Equal(t, "master", branch)
	})

	t.Run("attached round-trip pairs branch and HEAD", func(t *testing.T) {
		store, root := newTestStore(t)
		require.NoError(t, store.Update(Attached("master"), "abc123"))

		data, err := os.ReadFile(filepath.Join(root, "HEAD"))
		require.NoError(t, err)
		assert.Equal(t, "ref: refs/heads/master\n", string(data))

		tip, exists, err := store.Tip("master")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, "abc123", tip)

		head, err := store.Head()
		require.NoError(t, err)
		branch, ok := head.Branch()
		assert.True(t, ok)
		assert.Equal(t, "master", branch)
	})

	t.Run("detached round-trip", func(t *testing.T) {
		store, root := newTestStore(t)
		require.NoError(t, store.Update(Detached("abc123"), ""))

		data, err := os.ReadFile(filepath.Join(root, "HEAD"))
		require.NoError(t, err)
		assert.Equal(t, "abc123\n", string(data))

		head, err := store.Head()
		require.NoError(t, err)
		assert.True(t, head.IsDetached())
		fingerprint, ok := head.Fingerprint()
		assert.True(t, ok)
		assert.Equal(t, "abc123", fingerprint)
	})

	t.Run("empty tip writes an empty ref file", func(t *testing.T) {
		store, root := newTestStore(t)
		require.NoError(t, store.Update(Attached("master"), ""))

		data, err := os.ReadFile(filepath.Join(root, "refs/heads/master"))
		require.NoError(t, err)
		assert.Empty(t, data)

		tip, exists, err := store.Tip("master")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Empty(t, tip)
	})
}

func TestBranches(t *testing.T) {
	store, _ := newTestStore(t)

	t.Run("create and list", func(t *testing.T) {
		require.NoError(t, store.Create("feature", "abc123"))
		require.NoError(t, store.Create("other", "def456"))

		branches, err := store.Branches()
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"feature": "abc123",
			"other":   "def456",
		}, branches)
		assert.True(t, store.Exists("feature"))
		assert.False(t, store.Exists("missing"))
	})

	t.Run("duplicate creation rejected", func(t *testing.T) {
		err := store.Create("feature", "abc123")
		assert.True(t, errors.IsType(err, errors.ErrorTypeDuplicateBranch))
	})

	t.Run("missing branch has no tip", func(t *testing.T) {
		_, exists, err := store.Tip("missing")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
