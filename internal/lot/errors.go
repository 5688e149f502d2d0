package lot

import "errors"

// Errors returned by Lot operations. A failed operation never mutates the lot.
var (
	// ErrCapacityUnderflow is returned when a lot is created with a non-positive capacity
	ErrCapacityUnderflow = errors.New("capacity must be a positive integer")

	// ErrCapacityOverflow is returned when parking into a full (or uncreated) lot
	ErrCapacityOverflow = errors.New("parking lot is full")

	// ErrDuplicateEntry is returned when the registration number is already parked
	ErrDuplicateEntry = errors.New("registration number is already parked")

	// ErrNotExist is returned when no occupied slot matches a slot id, registration number or age
	ErrNotExist = errors.New("no matching parked vehicle")
)
