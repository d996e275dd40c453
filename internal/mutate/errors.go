package mutate

import "errors"

// Coordinator errors
var (
	// ErrConfirmTimeout indicates the confirmation call exceeded its bound.
	// The optimistic state has been rolled back, but the remote side-effect
	// may still have applied; the board converges on the next fetch.
	ErrConfirmTimeout = errors.New("confirmation timed out")
)
