package repo

import (
	"sort"

	"minigit/internal/commit"
	"minigit/internal/errors"
)

// LogEntry is one commit in the HEAD-rooted history together with its
// decorations: "HEAD -> branch" or "HEAD, detached" first, then the names
// of other branches pointing at the commit.
type LogEntry struct {
	Commit      *commit.Record
	Decorations []string
}

// Log walks history from HEAD following first parents. A visited set makes
// the walk terminate even on a forged cycle. On a corrupt reference the
// entries collected so far are returned along with the error.
func (r *Repository) Log() ([]LogEntry, error) {
	start, err := r.HeadFingerprint()
	if err != nil {
		return nil, err
	}
	if start == "" {
		return nil, errors.EmptyHistory()
	}

	branches, err := r.Refs.Branches()
	if err != nil {
		return nil, err
	}
	headBranch, attached := r.head.Branch()

	var entries []LogEntry
	visited := make(map[string]bool)

	for current := start; current != "" && !visited[current]; {
		record, err := r.Commits.Load(current)
		if err != nil {
			return entries, err
		}

		var decorations []string
		if current == start {
			if attached {
				decorations = append(decorations, "HEAD -> "+headBranch)
			} else {
				decorations = append(decorations, "HEAD, detached")
			}
		}
		var others []string
		for name, tip := range branches {
			if tip == current && !(attached && name == headBranch) {
				others = append(others, name)
			}
		}
		sort.Strings(others)
		decorations = append(decorations, others...)

		entries = append(entries, LogEntry{Commit: record, Decorations: decorations})
		visited[current] = true

		if len(record.Parents) == 0 {
			break
		}
		current = record.Parents[0]
	}

	return entries, nil
}
