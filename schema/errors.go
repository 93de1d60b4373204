package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Resolution errors.
var (
	// ErrMissingValue indicates a leaf's environment variable is absent or empty.
	ErrMissingValue = errors.New("schema: environment value missing")

	// ErrInvalidValue indicates a transform rejected a defined value.
	ErrInvalidValue = errors.New("schema: environment value invalid")
)

// ResolveError describes one failed leaf.
type ResolveError struct {
	// Key is the environment variable name the leaf reads.
	Key string

	// Path is the dotted location of the leaf in the resolved tree.
	Path string

	// Err is the error kind: ErrMissingValue or ErrInvalidValue.
	Err error

	// Cause is the transform's error for invalid leaves, nil otherwise.
	Cause error
}

// Error renders the stable, user-facing message for this leaf.
func (e *ResolveError) Error() string {
	if errors.Is(e.Err, ErrInvalidValue) {
		return fmt.Sprintf("environment value %s is invalid at %s: %v", e.Key, e.Path, e.Cause)
	}
	return fmt.Sprintf("environment value %s is missing from config object at %s", e.Key, e.Path)
}

// Unwrap exposes the error kind and, for invalid leaves, the transform's
// error, so errors.Is matches both.
func (e *ResolveError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

func missingError(key, path string) *ResolveError {
	return &ResolveError{Key: key, Path: path, Err: ErrMissingValue}
}

func invalidError(key, path string, cause error) *ResolveError {
	return &ResolveError{Key: key, Path: path, Err: ErrInvalidValue, Cause: cause}
}

// MissingConfigError aggregates every resolution failure for strict
// verification.
type MissingConfigError struct {
	// Messages holds one message per failed leaf, in schema order.
	Messages []string
}

// Error joins the leaf messages under a single stable heading.
func (e *MissingConfigError) Error() string {
	return "Missing configuration values: " + strings.Join(e.Messages, "\n")
}
