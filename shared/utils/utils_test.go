package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashContent(t *testing.T) {
	a := HashContent([]byte("hello\n"))
	b := HashContent([]byte("hello\n"))
	c := HashContent([]byte("hello"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)

	// The empty byte sequence has a fingerprint too.
	assert.NotEmpty(t, HashContent(nil))
	assert.Equal(t, HashContent(nil), HashContent([]byte{}))
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))
	assert.Empty(t, SortedKeys(map[string]int{}))
}
