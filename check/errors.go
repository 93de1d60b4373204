package check

import "errors"

var (
	// ErrCheckTimeout indicates a readiness check timed out.
	ErrCheckTimeout = errors.New("check: check timeout")

	// ErrCheckerNotFound indicates a checker was not found.
	ErrCheckerNotFound = errors.New("check: checker not found")
)
