// Package tserrors defines the error taxonomy used across this module,
// built on top of github.com/grailbio/base/errors the way
// encoding/pam/pamutil reports errors in the teacher repo.
package tserrors

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// The four error classes a Simplify call can surface, expressed as
// errors.Kind values passed as the first argument to errors.E.
const (
	// InvalidArgument means the caller-supplied sample list was malformed
	// (duplicate ids, or an id outside the input tree sequence).
	InvalidArgument = errors.Invalid

	// InvalidInput means the input tree sequence itself violates a
	// structural invariant (e.g. an edgeset with left >= right, or with
	// empty/overlapping children).
	InvalidInput = errors.Invalid

	// OutOfMemory means segment allocation failed.
	OutOfMemory = errors.ResourcesExhausted

	// InternalError means an invariant was violated that should never
	// occur in a correct implementation (e.g. a nonzero outstanding
	// segment count after simplify returns).
	InternalError = errors.Precondition
)

// InvalidArgumentf wraps a formatted message as an InvalidArgument error.
func InvalidArgumentf(format string, args ...interface{}) error {
	return errors.E(InvalidArgument, fmt.Sprintf(format, args...))
}

// InvalidInputf wraps a formatted message as an InvalidInput error.
func InvalidInputf(format string, args ...interface{}) error {
	return errors.E(InvalidInput, fmt.Sprintf(format, args...))
}

// Internalf wraps a formatted message as an InternalError.
func Internalf(format string, args ...interface{}) error {
	return errors.E(InternalError, fmt.Sprintf(format, args...))
}
