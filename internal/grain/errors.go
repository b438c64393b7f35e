package grain

import "errors"

var (
	// ErrInvalidArgument is returned when an operation is called with
	// arguments it cannot honor. The grid is left untouched.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvariantViolation signals broken internal bookkeeping. It is never
	// expected in a correct run and callers should treat it as fatal.
	ErrInvariantViolation = errors.New("invariant violation")
)
