package repo

import (
	"errors"
	"os"
	"path/filepath"

	"minigit/internal/commit"
	"minigit/internal/content"
	"minigit/internal/diff"
	"minigit/shared/utils"
)

// The three snapshot sources a diff can draw from. Each is a read-only
// filename -> bytes mapping; an absent file reads as nil.

type workingSource struct {
	r *Repository
}

func (s workingSource) Names() ([]string, error) {
	return s.r.Scanner.ListFiles()
}

func (s workingSource) Content(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.r.Root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

type indexSource struct {
	r *Repository
}

func (s indexSource) Names() ([]string, error) {
	return utils.SortedKeys(s.r.Index.Entries()), nil
}

func (s indexSource) Content(name string) ([]byte, error) {
	fingerprint, ok := s.r.Index.Get(name)
	if !ok {
		return nil, nil
	}
	return blobContent(s.r.Blobs, fingerprint)
}

type commitSource struct {
	record *commit.Record
	blobs  *content.FileStore
}

func (s commitSource) Names() ([]string, error) {
	return utils.SortedKeys(s.record.Files), nil
}

func (s commitSource) Content(name string) ([]byte, error) {
	fingerprint, ok := s.record.Files[name]
	if !ok {
		return nil, nil
	}
	return blobContent(s.blobs, fingerprint)
}

// overlaySource is the staging index laid over the HEAD snapshot: staged
// content wins, tracked-but-unstaged files fall back to their committed
// blobs. Untracked files exist on neither layer.
type overlaySource struct {
	r    *Repository
	head map[string]string
}

func (s overlaySource) Names() ([]string, error) {
	names := s.r.Index.Entries()
	for name, blob := range s.head {
		if _, ok := names[name]; !ok {
			names[name] = blob
		}
	}
	return utils.SortedKeys(names), nil
}

func (s overlaySource) Content(name string) ([]byte, error) {
	if fingerprint, ok := s.r.Index.Get(name); ok {
		return blobContent(s.r.Blobs, fingerprint)
	}
	if fingerprint, ok := s.head[name]; ok {
		return blobContent(s.r.Blobs, fingerprint)
	}
	return nil, nil
}

// blobContent treats a missing blob as empty content so a diff can still
// be produced around it.
func blobContent(blobs *content.FileStore, fingerprint string) ([]byte, error) {
	data, err := blobs.Get(fingerprint)
	if err != nil {
		if errors.Is(err, content.ErrContentNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

var _ diff.Source = workingSource{}
var _ diff.Source = indexSource{}
var _ diff.Source = commitSource{}
var _ diff.Source = overlaySource{}
