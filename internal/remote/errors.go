package remote

import (
	"errors"
	"fmt"
)

// Remote store errors
var (
	// ErrNotFound indicates the server has no entity with the requested ID
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the server rejected the client's credentials
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is returned for unexpected HTTP statuses.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Body)
}
