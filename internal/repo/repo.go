// Package repo ties the stores together behind a single repository handle.
// One handle is constructed per command and injected into everything that
// needs it; there is no module-level mutable state.
package repo

import (
	"os"
	"path/filepath"

	"minigit/internal/commit"
	"minigit/internal/config"
	"minigit/internal/content"
	"minigit/internal/errors"
	"minigit/internal/index"
	"minigit/internal/logging"
	"minigit/internal/refs"
	"minigit/internal/workspace"
)

const (
	objectsDir = "objects"
	commitsDir = "commits"
	configFile = "config.json"
)

type Repository struct {
	Root    string
	Blobs   *content.FileStore
	Commits *commit.Store
	Refs    *refs.Store
	Index   *index.Index
	Scanner *workspace.Scanner
	Config  *config.Config

	head refs.Head
	log  *logging.Logger
}

// MetaPath returns the metadata directory for a working directory root.
func MetaPath(root string) string {
	return filepath.Join(root, workspace.MetaDir)
}

// ConfigPath returns the optional repo-local config file location.
func ConfigPath(root string) string {
	return filepath.Join(MetaPath(root), configFile)
}

// Initialize creates the on-disk layout for a new repository rooted at dir.
// It reports (without error) when the layout is already present.
func Initialize(dir string) (already bool, err error) {
	meta := MetaPath(dir)
	if _, err := os.Stat(meta); err == nil {
		return true, nil
	}

	if _, err := content.NewFileStore(filepath.Join(meta, objectsDir)); err != nil {
		return false, err
	}
	if _, err := commit.NewStore(filepath.Join(meta, commitsDir)); err != nil {
		return false, err
	}

	refStore, err := refs.NewStore(meta)
	if err != nil {
		return false, err
	}
	// HEAD attaches to master; master starts with an empty tip.
	if err := refStore.Update(refs.Attached("master"), ""); err != nil {
		return false, err
	}
	return false, nil
}

// Open loads an existing repository. The staging index starts empty: it is
// owned by this process and never persisted.
func Open(dir string, cfg *config.Config, log *logging.Logger) (*Repository, error) {
	meta := MetaPath(dir)
	if _, err := os.Stat(meta); err != nil {
		return nil, errors.NotARepository()
	}

	blobs, err := content.NewFileStore(filepath.Join(meta, objectsDir))
	if err != nil {
		return nil, err
	}
	commits, err := commit.NewStore(filepath.Join(meta, commitsDir))
	if err != nil {
		return nil, err
	}
	refStore, err := refs.NewStore(meta)
	if err != nil {
		return nil, err
	}
	head, err := refStore.Head()
	if err != nil {
		return nil, err
	}

	return &Repository{
		Root:    dir,
		Blobs:   blobs,
		Commits: commits,
		Refs:    refStore,
		Index:   index.New(dir, blobs),
		Scanner: workspace.NewScanner(dir, log),
		Config:  cfg,
		head:    head,
		log:     log,
	}, nil
}

// Head returns the current HEAD pointer.
func (r *Repository) Head() refs.Head {
	return r.head
}

// HeadFingerprint resolves HEAD to a commit fingerprint, empty when the
// current branch has no commit yet.
func (r *Repository) HeadFingerprint() (string, error) {
	if branch, ok := r.head.Branch(); ok {
		tip, _, err := r.Refs.Tip(branch)
		return tip, err
	}
	fingerprint, _ := r.head.Fingerprint()
	return fingerprint, nil
}

// HeadCommit loads the commit HEAD points at, nil when there is none.
func (r *Repository) HeadCommit() (*commit.Record, error) {
	fingerprint, err := r.HeadFingerprint()
	if err != nil || fingerprint == "" {
		return nil, err
	}
	return r.Commits.Load(fingerprint)
}

// headFiles returns the HEAD snapshot's file map, empty without a commit.
func (r *Repository) headFiles() (map[string]string, error) {
	head, err := r.HeadCommit()
	if err != nil {
		return nil, err
	}
	if head == nil {
		return map[string]string{}, nil
	}
	return head.Files, nil
}

// Add stages a file for the next commit.
func (r *Repository) Add(path string) (index.StageOutcome, error) {
	return r.Index.Stage(path)
}

// CreateBranch points a new branch at the current HEAD commit.
func (r *Repository) CreateBranch(name string) (string, error) {
	fingerprint, err := r.HeadFingerprint()
	if err != nil {
		return "", err
	}
	if fingerprint == "" {
		return "", errors.EmptyHistory()
	}
	if err := r.Refs.Create(name, fingerprint); err != nil {
		return "", err
	}
	return fingerprint, nil
}
