package repo

import (
	"minigit/internal/refs"
	"minigit/shared/types"
)

// StatusReport is everything the status command shows: where HEAD is and
// the scanner's classification of pending work.
type StatusReport struct {
	Head            refs.Head
	HeadFingerprint string // empty when the branch has no commit
	Tree            shared.TreeStatus
}

// Status classifies the working tree against the staging index and the
// HEAD snapshot.
func (r *Repository) Status() (*StatusReport, error) {
	fingerprint, err := r.HeadFingerprint()
	if err != nil {
		return nil, err
	}

	head, err := r.headFiles()
	if err != nil {
		return nil, err
	}

	tree, err := r.Scanner.Classify(r.Index.Entries(), head)
	if err != nil {
		return nil, err
	}

	return &StatusReport{
		Head:            r.head,
		HeadFingerprint: fingerprint,
		Tree:            tree,
	}, nil
}
