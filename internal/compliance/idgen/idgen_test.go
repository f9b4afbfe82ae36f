package idgen

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-z]+$`)
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := New()
		assert.Len(t, id, Length)
		assert.Regexp(t, pattern, id)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
