package errors

import "errors"

var (
	// ErrEmailExists is returned when the unique index on email rejects a
	// registration insert.
	ErrEmailExists = errors.New("email already registered")

	ErrNotFound = errors.New("user not found")

	ErrInvalidID = errors.New("invalid user ID format")
)
