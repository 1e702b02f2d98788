package usecase

import "errors"

// Sentinel errors for the booking taxonomy. Services wrap these with context
// via fmt.Errorf("...: %w", Err...); handlers map them to HTTP status with
// errors.Is so every failure is attributable to exactly one kind.
var (
	// ErrNotFound means the room type or reservation does not exist
	ErrNotFound = errors.New("not found")

	// ErrRoomInactive means the room type is not bookable
	ErrRoomInactive = errors.New("room type is not bookable")

	// ErrInvalidDateRange means checkout <= checkin or checkin in the past
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrCapacityExceeded means the requested quantity exceeds free units
	ErrCapacityExceeded = errors.New("not enough units available")

	// ErrGuestCountExceeded means guests exceed capacity x quantity
	ErrGuestCountExceeded = errors.New("guest count exceeds room capacity")

	// ErrInvalidTransition means the status change is not in the allowed table
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyTerminal means the reservation reached a terminal status
	ErrAlreadyTerminal = errors.New("reservation is already in a terminal status")
)
