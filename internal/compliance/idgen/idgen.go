// Package idgen produces the opaque identities assigned to stored records.
package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// Length is the number of characters in a generated identity.
const Length = 12

// New returns a short lowercase alphanumeric token taken from a random UUID.
// Tokens are unique enough for a single local dataset; the store still
// checks for collisions inside a collection.
func New() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:Length]
}
