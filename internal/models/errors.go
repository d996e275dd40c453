package models

import "errors"

// Domain-specific errors shared across board operations
var (
	// ErrTaskNotFound indicates the referenced task is not on the board
	ErrTaskNotFound = errors.New("task not found")

	// ErrGroupNotFound indicates the referenced group is not on the board
	ErrGroupNotFound = errors.New("group not found")
)
