package repo

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"minigit/internal/errors"
	"minigit/internal/refs"
)

// CheckoutResult describes what a checkout did.
type CheckoutResult struct {
	Head         refs.Head
	Fingerprint  string
	AlreadyThere bool
	EmptyBranch  bool     // named branch with no commit: tree cleared, nothing restored
	Removed      []string // working files deleted to match the snapshot
}

// Checkout moves HEAD to a branch or commit and reconciles the working
// tree to the target snapshot. The tree must be clean; resolution order is
// branch name, exact fingerprint, then a unique prefix of at least four
// characters.
func (r *Repository) Checkout(target string) (*CheckoutResult, error) {
	status, err := r.Status()
	if err != nil {
		return nil, err
	}
	if !status.Tree.Clean() {
		return nil, errors.DirtyWorkingTree()
	}

	if r.Refs.Exists(target) {
		return r.checkoutBranch(target)
	}

	fingerprint, err := r.Commits.Resolve(target)
	if err != nil {
		return nil, err
	}
	return r.checkoutDetached(fingerprint)
}

func (r *Repository) checkoutBranch(name string) (*CheckoutResult, error) {
	tip, _, err := r.Refs.Tip(name)
	if err != nil {
		return nil, err
	}

	current, attached := r.head.Branch()
	if attached && current == name {
		return &CheckoutResult{Head: r.head, Fingerprint: tip, AlreadyThere: true}, nil
	}

	head := refs.Attached(name)

	// A branch with no commit yet restores nothing: the tree is cleared
	// and HEAD moves over.
	if tip == "" {
		removed, err := r.clearWorkingTree()
		if err != nil {
			return nil, err
		}
		if err := r.Refs.Update(head, ""); err != nil {
			return nil, err
		}
		r.head = head
		r.Index.Clear()
		return &CheckoutResult{Head: head, EmptyBranch: true, Removed: removed}, nil
	}

	removed, err := r.restoreSnapshot(tip)
	if err != nil {
		return nil, err
	}
	if err := r.Refs.Update(head, tip); err != nil {
		return nil, err
	}
	r.head = head
	r.Index.Clear()
	return &CheckoutResult{Head: head, Fingerprint: tip, Removed: removed}, nil
}

func (r *Repository) checkoutDetached(fingerprint string) (*CheckoutResult, error) {
	if current, detached := r.head.Fingerprint(); detached && current == fingerprint {
		return &CheckoutResult{Head: r.head, Fingerprint: fingerprint, AlreadyThere: true}, nil
	}

	removed, err := r.restoreSnapshot(fingerprint)
	if err != nil {
		return nil, err
	}

	head := refs.Detached(fingerprint)
	if err := r.Refs.Update(head, ""); err != nil {
		return nil, err
	}
	r.head = head
	r.Index.Clear()
	return &CheckoutResult{Head: head, Fingerprint: fingerprint, Removed: removed}, nil
}

// restoreSnapshot writes every file of the target commit and then removes
// working files outside the snapshot. Writes precede deletions, and both
// precede the HEAD/ref update done by the caller.
func (r *Repository) restoreSnapshot(fingerprint string) ([]string, error) {
	record, err := r.Commits.Load(fingerprint)
	if err != nil {
		return nil, err
	}

	for name, blob := range record.Files {
		content, err := r.Blobs.Get(blob)
		if err != nil {
			r.log.Warn("blob missing, skipping file",
				zap.String("path", name), zap.String("blob", blob))
			continue
		}
		if err := os.WriteFile(filepath.Join(r.Root, name), content, 0644); err != nil {
			r.log.Warn("could not write file", zap.String("path", name), zap.Error(err))
		}
	}

	files, err := r.Scanner.ListFiles()
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, name := range files {
		if _, ok := record.Files[name]; ok {
			continue
		}
		if err := os.Remove(filepath.Join(r.Root, name)); err != nil {
			r.log.Warn("could not remove file", zap.String("path", name), zap.Error(err))
			continue
		}
		removed = append(removed, name)
	}
	return removed, nil
}

func (r *Repository) clearWorkingTree() ([]string, error) {
	files, err := r.Scanner.ListFiles()
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, name := range files {
		if err := os.Remove(filepath.Join(r.Root, name)); err != nil {
			r.log.Warn("could not remove file", zap.String("path", name), zap.Error(err))
			continue
		}
		removed = append(removed, name)
	}
	return removed, nil
}
