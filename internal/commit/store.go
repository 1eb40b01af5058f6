package commit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"minigit/internal/errors"
)

const cacheSize = 256

// Store keeps one file per commit under its fingerprint. Records are
// immutable, so the cache can evict and reload freely.
type Store struct {
	root  string
	cache *lru.Cache[string, *Record]
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating commit store directory: %w", err)
	}

	cache, err := lru.New[string, *Record](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating commit cache: %w", err)
	}

	return &Store{root: root, cache: cache}, nil
}

// Write persists a sealed record. The caller must not touch the record
// afterwards.
func (s *Store) Write(r *Record) error {
	if r.Fingerprint == "" {
		return fmt.Errorf("refusing to write unsealed commit")
	}

	path := filepath.Join(s.root, r.Fingerprint)
	if err := os.WriteFile(path, Marshal(r), 0644); err != nil {
		return errors.WriteFailure(path, err)
	}

	s.cache.Add(r.Fingerprint, r)
	return nil
}

// Load returns the record for a fingerprint, reading it from disk on the
// first access. A missing or unparsable file is a corrupt reference.
func (s *Store) Load(fingerprint string) (*Record, error) {
	if r, ok := s.cache.Get(fingerprint); ok {
		return r, nil
	}

	data, err := os.ReadFile(filepath.Join(s.root, fingerprint))
	if err != nil {
		return nil, errors.CorruptReference(fingerprint, err)
	}

	r, err := Parse(fingerprint, data)
	if err != nil {
		return nil, errors.CorruptReference(fingerprint, err)
	}

	s.cache.Add(fingerprint, r)
	return r, nil
}

// Exists reports whether a commit with this exact fingerprint is stored.
func (s *Store) Exists(fingerprint string) bool {
	if fingerprint == "" {
		return false
	}
	if s.cache.Contains(fingerprint) {
		return true
	}
	_, err := os.Stat(filepath.Join(s.root, fingerprint))
	return err == nil
}

// List returns the fingerprints of every stored commit.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("listing commits: %w", err)
	}

	fingerprints := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			fingerprints = append(fingerprints, entry.Name())
		}
	}
	return fingerprints, nil
}

// minimum prefix length accepted by Resolve
const minPrefixLen = 4

// Resolve maps a target string to a full commit fingerprint: an exact match
// wins, otherwise a prefix of at least four characters that extends to
// exactly one stored commit. Ambiguous prefixes are rejected.
func (s *Store) Resolve(target string) (string, error) {
	if s.Exists(target) {
		return target, nil
	}

	if len(target) < minPrefixLen {
		return "", errors.UnknownTarget(target)
	}

	fingerprints, err := s.List()
	if err != nil {
		return "", err
	}

	var match string
	for _, fingerprint := range fingerprints {
		if !strings.HasPrefix(fingerprint, target) {
			continue
		}
		if match != "" {
			return "", errors.AmbiguousTarget(target)
		}
		match = fingerprint
	}
	if match == "" {
		return "", errors.UnknownTarget(target)
	}
	return match, nil
}
