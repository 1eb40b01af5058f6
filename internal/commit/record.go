// Package commit persists and retrieves commit records. A record is the
// complete snapshot of the tracked tree at one point in history, not a delta.
package commit

import (
	"strings"

	"minigit/shared/utils"
)

// Record is an immutable commit once written.
type Record struct {
	Fingerprint string
	Message     string
	Timestamp   string
	Parents     []string
	Files       map[string]string // filename -> blob fingerprint
}

// ComputeFingerprint derives the identity of the record from every field
// except the fingerprint itself. File entries are folded in sorted name
// order so the result is stable for a given snapshot.
func (r *Record) ComputeFingerprint() string {
	var b strings.Builder
	b.WriteString(r.Message)
	b.WriteString(r.Timestamp)
	for _, parent := range r.Parents {
		b.WriteString(parent)
	}
	for _, name := range utils.SortedKeys(r.Files) {
		b.WriteString(name)
		b.WriteString(r.Files[name])
	}
	return utils.HashContent([]byte(b.String()))
}

// Seal fills in the fingerprint; call once the other fields are final.
func (r *Record) Seal() {
	r.Fingerprint = r.ComputeFingerprint()
}

// CloneFiles returns a copy of the file map safe to mutate.
func (r *Record) CloneFiles() map[string]string {
	files := make(map[string]string, len(r.Files))
	for name, blob := range r.Files {
		files[name] = blob
	}
	return files
}
