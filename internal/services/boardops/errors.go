package boardops

import "errors"

// Validation errors
var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrNameTooLong     = errors.New("name cannot exceed 255 characters")
	ErrInvalidPriority = errors.New("invalid priority")
)

// Business logic errors
var (
	// ErrPermissionDenied indicates the actor may not move or edit the task.
	// Nothing was attempted remotely and nothing needs rolling back.
	ErrPermissionDenied = errors.New("you do not have permission to move this task")

	// ErrInvalidTarget indicates a relocation referenced a group that is not
	// on the board; rejected before any optimistic mutation
	ErrInvalidTarget = errors.New("destination group is not on this board")

	// ErrTaskAlreadyInGroup indicates the task already lives in the
	// destination group
	ErrTaskAlreadyInGroup = errors.New("task is already in the destination group")

	// ErrNoCompleteGroup indicates the board has no designated complete
	// group, so toggle-complete has no destination
	ErrNoCompleteGroup = errors.New("board has no complete group")

	// ErrCannotDeleteDefaultGroup guards the intake column every board must
	// keep so unset-group tasks always have somewhere to land
	ErrCannotDeleteDefaultGroup = errors.New("the default group cannot be deleted")
)
