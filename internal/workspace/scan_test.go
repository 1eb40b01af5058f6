package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minigit/internal/logging"
	"minigit/shared/types"
	"minigit/shared/utils"
)

func TestListFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, MetaDir, "objects"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "subdir"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "subdir", "nested.txt"), []byte("n"), 0644))

	scanner := NewScanner(root, logging.NewNop())
	files, err := scanner.ListFiles()
	require.NoError(t, err)

	// Sorted, non-recursive, no dotfiles, no metadata directory.
	assert.Equal(t, []string{"a.txt", "b.txt"}, files)
}

func TestFingerprints(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello\n"), 0644))

	scanner := NewScanner(root, logging.NewNop())
	working, err := scanner.Fingerprints()
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"a.txt": utils.HashContent([]byte("hello\n")),
	}, working)
}

func TestClassify(t *testing.T) {
	hashA := utils.HashContent([]byte("a"))
	hashB := utils.HashContent([]byte("b"))
	hashC := utils.HashContent([]byte("c"))

	tests := []struct {
		name    string
		working map[string]string
		staged  map[string]string
		head    map[string]string
		check   func(t *testing.T, status shared.TreeStatus)
	}{
		{
			name:    "clean tree",
			working: map[string]string{"a.txt": hashA},
			staged:  map[string]string{},
			head:    map[string]string{"a.txt": hashA},
			check: func(t *testing.T, status shared.TreeStatus) {
				assert.True(t, status.Clean())
			},
		},
		{
			name:    "staged addition",
			working: map[string]string{"new.txt": hashA},
			staged:  map[string]string{"new.txt": hashA},
			head:    map[string]string{},
			check: func(t *testing.T, status shared.TreeStatus) {
				assert.Equal(t, []string{"new.txt"}, status.Staged.Added)
				assert.Empty(t, status.Unstaged.Untracked)
			},
		},
		{
			name:    "staged modification",
			working: map[string]string{"a.txt": hashB},
			staged:  map[string]string{"a.txt": hashB},
			head:    map[string]string{"a.txt": hashA},
			check: func(t *testing.T, status shared.TreeStatus) {
				assert.Equal(t, []string{"a.txt"}, status.Staged.Modified)
				assert.Empty(t, status.Unstaged.Modified)
			},
		},
		{
			name:    "staged deletion appears in both views",
			working: map[string]string{},
			staged:  map[string]string{},
			head:    map[string]string{"gone.txt": hashA},
			check: func(t *testing.T, status shared.TreeStatus) {
				assert.Equal(t, []string{"gone.txt"}, status.Staged.Deleted)
				assert.Equal(t, []string{"gone.txt"}, status.Unstaged.Deleted)
			},
		},
		{
			name:    "working differs from staged version",
			working: map[string]string{"a.txt": hashC},
			staged:  map[string]string{"a.txt": hashB},
			head:    map[string]string{"a.txt": hashA},
			check: func(t *testing.T, status shared.TreeStatus) {
				assert.Equal(t, []string{"a.txt"}, status.Unstaged.Modified)
			},
		},
		{
			name:    "working differs from HEAD and nothing staged",
			working: map[string]string{"a.txt": hashB},
			staged:  map[string]string{},
			head:    map[string]string{"a.txt": hashA},
			check: func(t *testing.T, status shared.TreeStatus) {
				assert.Equal(t, []string{"a.txt"}, status.Unstaged.Modified)
				assert.Empty(t, status.Staged.Modified)
			},
		},
		{
			name:    "untracked file",
			working: map[string]string{"stray.txt": hashA},
			staged:  map[string]string{},
			head:    map[string]string{},
			check: func(t *testing.T, status shared.TreeStatus) {
				assert.Equal(t, []string{"stray.txt"}, status.Unstaged.Untracked)
			},
		},
		{
			name:    "deleted from tree but still staged stays staged",
			working: map[string]string{},
			staged:  map[string]string{"a.txt": hashA},
			head:    map[string]string{"a.txt": hashA},
			check: func(t *testing.T, status shared.TreeStatus) {
				// No remove command exists: the index entry keeps the file
				// out of the deleted buckets.
				assert.Empty(t, status.Staged.Deleted)
				assert.Empty(t, status.Unstaged.Deleted)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, classify(tt.working, tt.staged, tt.head))
		})
	}
}
