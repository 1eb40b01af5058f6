// Package index holds the staging area: the filename -> blob fingerprint
// entries that will form the next commit. It lives in memory only and never
// outlives the process.
package index

import (
	"os"
	"path/filepath"
	"sync"

	"minigit/internal/content"
	"minigit/internal/errors"
	"minigit/shared/utils"
)

type Index struct {
	root    string
	blobs   *content.FileStore
	entries map[string]string
	mu      sync.RWMutex
}

// StageOutcome reports what Stage did with a file.
type StageOutcome struct {
	Fingerprint string
	Unchanged   bool // content already staged under the same fingerprint
}

func New(root string, blobs *content.FileStore) *Index {
	return &Index{
		root:    root,
		blobs:   blobs,
		entries: make(map[string]string),
	}
}

// Stage reads a file, writes its blob and records the mapping under the
// file's name in the repository root. Re-staging unchanged content is a
// no-op reported to the caller.
func (i *Index) Stage(path string) (StageOutcome, error) {
	name := filepath.Base(filepath.Clean(path))
	full := filepath.Join(i.root, name)

	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return StageOutcome{}, errors.NoSuchFile(name)
		}
		return StageOutcome{}, errors.ReadFailure(name, err)
	}
	if !info.Mode().IsRegular() {
		return StageOutcome{}, errors.NotRegularFile(name)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return StageOutcome{}, errors.ReadFailure(name, err)
	}

	hash := utils.HashContent(data)

	i.mu.RLock()
	staged, ok := i.entries[name]
	i.mu.RUnlock()
	if ok && staged == hash {
		return StageOutcome{Fingerprint: hash, Unchanged: true}, nil
	}

	if _, err := i.blobs.Put(data); err != nil {
		return StageOutcome{}, errors.WriteFailure(name, err)
	}

	i.mu.Lock()
	i.entries[name] = hash
	i.mu.Unlock()

	return StageOutcome{Fingerprint: hash}, nil
}

// Entries returns a copy of the current mapping.
func (i *Index) Entries() map[string]string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	entries := make(map[string]string, len(i.entries))
	for name, hash := range i.entries {
		entries[name] = hash
	}
	return entries
}

// Get returns the staged fingerprint for a filename.
func (i *Index) Get(name string) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	hash, ok := i.entries[name]
	return hash, ok
}

func (i *Index) IsEmpty() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries) == 0
}

// Clear drops every entry: on repository load, after a successful commit
// and after a successful checkout.
func (i *Index) Clear() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries = make(map[string]string)
}
