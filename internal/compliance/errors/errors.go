// Package errors holds the sentinel errors shared by the compliance packages.
// Callers wrap them with fmt.Errorf("%w: ...") and test with errors.Is.
package errors

import (
	"fmt"
)

var (
	// ErrNotFound is returned when an identity does not match any record.
	ErrNotFound = fmt.Errorf("not found")
	// ErrInvalidInput is returned when a record fails validation.
	ErrInvalidInput = fmt.Errorf("invalid input")
	// ErrPersistence is returned when the snapshot could not be written or read
	// from the storage medium.
	ErrPersistence = fmt.Errorf("persistence failure")
	// ErrUnsupportedVersion is returned when a snapshot carries a schema version
	// this build does not know how to read.
	ErrUnsupportedVersion = fmt.Errorf("unsupported snapshot version")
)
