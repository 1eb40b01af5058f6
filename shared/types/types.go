// Classification results shared between the scanner and the front-end.
package shared

// StagedChanges compares the staging index against the HEAD snapshot.
type StagedChanges struct {
	Added    []string
	Modified []string
	Deleted  []string
}

func (c StagedChanges) Empty() bool {
	return len(c.Added) == 0 && len(c.Modified) == 0 && len(c.Deleted) == 0
}

// UnstagedChanges compares the working tree against the staging index
// and the HEAD snapshot.
type UnstagedChanges struct {
	Modified  []string
	Deleted   []string
	Untracked []string
}

func (c UnstagedChanges) Empty() bool {
	return len(c.Modified) == 0 && len(c.Deleted) == 0 && len(c.Untracked) == 0
}

// TreeStatus is the full classification of pending work in a repository.
type TreeStatus struct {
	Staged   StagedChanges
	Unstaged UnstagedChanges
}

// Clean reports whether nothing is staged, modified, deleted or untracked.
func (s TreeStatus) Clean() bool {
	return s.Staged.Empty() && s.Unstaged.Empty()
}
