package repo

import (
	"time"

	"minigit/internal/commit"
	"minigit/internal/refs"
)

const timestampLayout = "2006-01-02 15:04:05"

// Commit freezes the staging index into a new commit. A nil record with a
// nil error means the index held no effective change against HEAD; the
// index is cleared either way.
//
// Write ordering protects the references: the commit file is persisted
// before the branch ref and HEAD move, so a failed write never leaves HEAD
// pointing at a half-written commit. Blobs were already written by add;
// at worst an aborted commit leaves orphan objects behind.
func (r *Repository) Commit(message string) (*commit.Record, error) {
	parent, err := r.HeadCommit()
	if err != nil {
		return nil, err
	}

	head := map[string]string{}
	if parent != nil {
		head = parent.Files
	}

	tree, err := r.Scanner.Classify(r.Index.Entries(), head)
	if err != nil {
		return nil, err
	}

	// A commit is the difference between the index and HEAD. Nothing staged
	// relative to HEAD means nothing to commit, even if the index is not
	// literally empty.
	if tree.Staged.Empty() {
		r.Index.Clear()
		return nil, nil
	}

	files := map[string]string{}
	if parent != nil {
		files = parent.CloneFiles()
	}
	for name, blob := range r.Index.Entries() {
		files[name] = blob
	}
	for _, name := range tree.Staged.Deleted {
		delete(files, name)
	}

	record := &commit.Record{
		Message:   message,
		Timestamp: time.Now().Format(timestampLayout),
		Files:     files,
	}
	if parent != nil {
		record.Parents = []string{parent.Fingerprint}
	}
	record.Seal()

	if err := r.Commits.Write(record); err != nil {
		return nil, err
	}

	if _, ok := r.head.Branch(); !ok {
		// Detached HEAD advances directly to the new commit.
		r.head = refs.Detached(record.Fingerprint)
	}
	if err := r.Refs.Update(r.head, record.Fingerprint); err != nil {
		return nil, err
	}

	r.Index.Clear()
	return record, nil
}
