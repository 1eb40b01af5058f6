// Package workspace enumerates the working tree and classifies every file
// against the staging index and the HEAD snapshot.
package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"minigit/internal/logging"
	"minigit/shared/types"
	"minigit/shared/utils"
)

// MetaDir is the repository metadata directory at the root of the tree.
const MetaDir = ".minigit"

type Scanner struct {
	root string
	log  *logging.Logger
}

func NewScanner(root string, log *logging.Logger) *Scanner {
	return &Scanner{root: root, log: log}
}

// ListFiles returns the tracked candidates: regular files in the root
// directory, non-recursive, skipping the metadata directory and dotfiles.
func (s *Scanner) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if name == MetaDir || strings.HasPrefix(name, ".") {
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// Fingerprints hashes the current bytes of every candidate file. A file
// that cannot be read is warned about and skipped; the scan continues.
func (s *Scanner) Fingerprints() (map[string]string, error) {
	files, err := s.ListFiles()
	if err != nil {
		return nil, err
	}

	working := make(map[string]string, len(files))
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(s.root, name))
		if err != nil {
			s.log.Warn("skipping unreadable file", zap.String("path", name), zap.Error(err))
			continue
		}
		working[name] = utils.HashContent(data)
	}
	return working, nil
}

// Classify compares three views of the tree. staged is the index mapping,
// head the HEAD commit's file map (empty when there is no commit yet).
func (s *Scanner) Classify(staged, head map[string]string) (shared.TreeStatus, error) {
	working, err := s.Fingerprints()
	if err != nil {
		return shared.TreeStatus{}, err
	}
	return classify(working, staged, head), nil
}

func classify(working, staged, head map[string]string) shared.TreeStatus {
	var status shared.TreeStatus

	// Index versus HEAD snapshot.
	for _, name := range utils.SortedKeys(staged) {
		headHash, tracked := head[name]
		switch {
		case !tracked:
			status.Staged.Added = append(status.Staged.Added, name)
		case headHash != staged[name]:
			status.Staged.Modified = append(status.Staged.Modified, name)
		}
	}

	// Working tree versus index, falling back to HEAD for unstaged files.
	for _, name := range utils.SortedKeys(working) {
		hash := working[name]
		if stagedHash, ok := staged[name]; ok {
			if stagedHash != hash {
				status.Unstaged.Modified = append(status.Unstaged.Modified, name)
			}
			continue
		}
		if headHash, tracked := head[name]; tracked {
			if headHash != hash {
				status.Unstaged.Modified = append(status.Unstaged.Modified, name)
			}
			continue
		}
		status.Unstaged.Untracked = append(status.Unstaged.Untracked, name)
	}

	// Tracked files gone from both the working tree and the index are listed
	// as deleted in both views. A file gone from the working tree but still
	// in the index is not listed as deleted at all.
	for _, name := range utils.SortedKeys(head) {
		if _, ok := working[name]; ok {
			continue
		}
		if _, ok := staged[name]; ok {
			continue
		}
		status.Staged.Deleted = append(status.Staged.Deleted, name)
		status.Unstaged.Deleted = append(status.Unstaged.Deleted, name)
	}

	return status
}
