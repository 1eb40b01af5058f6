package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"golang.org/x/exp/maps"
)

// HashContent returns the hex fingerprint of a byte buffer. Blobs and
// commits share this one identity function.
func HashContent(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// SortedKeys returns the keys of a map in lexical order.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	keys := maps.Keys(m)
	sort.Strings(keys)
	return keys
}
