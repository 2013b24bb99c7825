package errors

import "errors"

var (
	// ErrDuplicateSlot is returned when the unique index on slot_start_time
	// rejects an insert: another booking already owns that slot.
	ErrDuplicateSlot = errors.New("slot already booked")

	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")
)
