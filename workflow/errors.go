package workflow

import "errors"

// Error taxonomy for workflow operations. All are local, synchronous and
// non-retryable; controllers map them onto HTTP statuses.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid state")
	ErrLocked          = errors.New("locked")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrMissingEvidence = errors.New("missing evidence")
	ErrValidation      = errors.New("validation failed")
)
