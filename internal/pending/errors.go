package pending

import "errors"

// Pending-move errors
var (
	// ErrMoveAlreadyPending indicates a second blocked move was attempted on
	// a task that already has an outstanding pending move
	ErrMoveAlreadyPending = errors.New("a move is already pending for this task")

	// ErrNoPendingMove indicates a commit or abandon was requested for a task
	// with no outstanding pending move
	ErrNoPendingMove = errors.New("no pending move for this task")
)
