package domain

import (
	"errors"
	"fmt"
)

// Domain errors surfaced to clients by the HTTP handlers.
var (
	// ErrDuplicateUsername is returned when registering a username that
	// already exists. Matching is case-sensitive.
	ErrDuplicateUsername = errors.New("username already registered")

	// ErrUserNotFound is returned by login when the username is not
	// registered.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmptyField is returned when a submitted message is missing its
	// username or body.
	ErrEmptyField = errors.New("username and message must be non-empty")
)

// StorageError wraps a failure of the durable store. It distinguishes
// infrastructure faults from the domain errors above.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
