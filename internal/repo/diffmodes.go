package repo

import (
	"bytes"
	"fmt"
	"sort"

	"minigit/internal/diff"
	"minigit/internal/errors"
)

// FileDiff is the per-file report of one diff mode.
type FileDiff struct {
	Name       string
	Annotation string // e.g. "new file staged", "deleted from WD"
	Result     *diff.Result
}

// DiffReport is the output of one diff mode: a heading, the files that
// differ, and the message to show when nothing does.
type DiffReport struct {
	Title        string
	Files        []FileDiff
	EmptyMessage string
}

// Diff dispatches on the command arguments: no arguments compares working
// tree to staging, the --staged/--cached sentinel compares staging to HEAD,
// one commit compares it to the working tree, two commits compare each
// other.
func (r *Repository) Diff(args ...string) (*DiffReport, error) {
	switch len(args) {
	case 0:
		return r.DiffWorkingIndex()
	case 1:
		if args[0] == "--staged" || args[0] == "--cached" {
			return r.DiffIndexHead()
		}
		return r.DiffWorkingCommit(args[0])
	case 2:
		return r.DiffCommits(args[0], args[1])
	default:
		return nil, fmt.Errorf("diff takes at most two arguments")
	}
}

// DiffWorkingIndex reports unstaged changes: the working tree compared to
// staged content, falling back to the HEAD snapshot for tracked files that
// were never staged. Untracked files are not shown here.
func (r *Repository) DiffWorkingIndex() (*DiffReport, error) {
	head, err := r.headFiles()
	if err != nil {
		return nil, err
	}

	old := overlaySource{r, head}
	names, err := old.Names()
	if err != nil {
		return nil, err
	}

	files, err := r.compare(old, workingSource{r}, names, func(inOld, inNew bool) string {
		if inOld && !inNew {
			return "deleted from WD"
		}
		return ""
	})
	if err != nil {
		return nil, err
	}

	return &DiffReport{
		Title:        "Diff: Working Directory vs Staging Area (unstaged changes)",
		Files:        files,
		EmptyMessage: "No differences in working directory compared to staged area.",
	}, nil
}

// DiffIndexHead reports staged changes: the staging index compared to the
// HEAD snapshot.
func (r *Repository) DiffIndexHead() (*DiffReport, error) {
	head, err := r.HeadCommit()
	if err != nil {
		return nil, err
	}
	if head == nil {
		return nil, errors.EmptyHistory()
	}

	old := commitSource{head, r.Blobs}
	staged := indexSource{r}
	names, err := unionNames(old, staged)
	if err != nil {
		return nil, err
	}

	files, err := r.compare(old, staged, names, func(inOld, inNew bool) string {
		switch {
		case !inOld:
			return "new file staged"
		case !inNew:
			return "deleted from staged"
		}
		return ""
	})
	if err != nil {
		return nil, err
	}

	return &DiffReport{
		Title:        "Diff: Staging Area vs HEAD commit (staged changes)",
		Files:        files,
		EmptyMessage: "No staged changes to show.",
	}, nil
}

// DiffWorkingCommit compares the working tree against a named commit.
func (r *Repository) DiffWorkingCommit(target string) (*DiffReport, error) {
	fingerprint, err := r.Commits.Resolve(target)
	if err != nil {
		return nil, err
	}
	record, err := r.Commits.Load(fingerprint)
	if err != nil {
		return nil, err
	}

	old := commitSource{record, r.Blobs}
	working := workingSource{r}
	names, err := unionNames(old, working)
	if err != nil {
		return nil, err
	}

	files, err := r.compare(old, working, names, func(inOld, inNew bool) string {
		switch {
		case !inOld:
			return "new in WD"
		case !inNew:
			return "deleted in WD"
		}
		return ""
	})
	if err != nil {
		return nil, err
	}

	short := shortFingerprint(fingerprint)
	return &DiffReport{
		Title:        "Diff: Working Directory vs Commit " + short,
		Files:        files,
		EmptyMessage: fmt.Sprintf("No differences in working directory compared to commit %s.", short),
	}, nil
}

// DiffCommits compares two commit snapshots.
func (r *Repository) DiffCommits(target1, target2 string) (*DiffReport, error) {
	fp1, err := r.Commits.Resolve(target1)
	if err != nil {
		return nil, err
	}
	fp2, err := r.Commits.Resolve(target2)
	if err != nil {
		return nil, err
	}
	rec1, err := r.Commits.Load(fp1)
	if err != nil {
		return nil, err
	}
	rec2, err := r.Commits.Load(fp2)
	if err != nil {
		return nil, err
	}

	old := commitSource{rec1, r.Blobs}
	other := commitSource{rec2, r.Blobs}
	names, err := unionNames(old, other)
	if err != nil {
		return nil, err
	}

	files, err := r.compare(old, other, names, func(inOld, inNew bool) string {
		switch {
		case !inOld:
			return "new file"
		case !inNew:
			return "deleted"
		}
		return ""
	})
	if err != nil {
		return nil, err
	}

	return &DiffReport{
		Title:        fmt.Sprintf("Diff between %s and %s", shortFingerprint(fp1), shortFingerprint(fp2)),
		Files:        files,
		EmptyMessage: "No differences between commits.",
	}, nil
}

// compare loads both sides for each name, skips equal content, and runs
// the diff engine over the rest. An absent side reads as empty.
func (r *Repository) compare(oldSide, newSide diff.Source, names []string, annotate func(inOld, inNew bool) string) ([]FileDiff, error) {
	oldNames, err := nameSet(oldSide)
	if err != nil {
		return nil, err
	}
	newNames, err := nameSet(newSide)
	if err != nil {
		return nil, err
	}

	engine := diff.NewEngine()
	var files []FileDiff
	for _, name := range names {
		oldContent, err := oldSide.Content(name)
		if err != nil {
			return nil, err
		}
		newContent, err := newSide.Content(name)
		if err != nil {
			return nil, err
		}
		if bytes.Equal(oldContent, newContent) {
			continue
		}

		files = append(files, FileDiff{
			Name:       name,
			Annotation: annotate(oldNames[name], newNames[name]),
			Result:     engine.Compare(oldContent, newContent),
		})
	}
	return files, nil
}

func nameSet(s diff.Source) (map[string]bool, error) {
	names, err := s.Names()
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set, nil
}

func unionNames(a, b diff.Source) ([]string, error) {
	aNames, err := a.Names()
	if err != nil {
		return nil, err
	}
	bNames, err := b.Names()
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(aNames)+len(bNames))
	for _, name := range aNames {
		set[name] = true
	}
	for _, name := range bNames {
		set[name] = true
	}

	union := make([]string, 0, len(set))
	for name := range set {
		union = append(union, name)
	}
	sort.Strings(union)
	return union, nil
}

// shortFingerprint abbreviates a fingerprint for display.
func shortFingerprint(fingerprint string) string {
	if len(fingerprint) > 7 {
		return fingerprint[:7]
	}
	return fingerprint
}
