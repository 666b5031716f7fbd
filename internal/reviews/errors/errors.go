package errors

import "errors"

var (
	ErrInvalidID = errors.New("invalid review ID format")

	// ErrDuplicate is returned when the parent already reviewed the babysitter.
	ErrDuplicate = errors.New("review already exists for this parent and babysitter")

	ErrBabysitterNotFound = errors.New("babysitter not found")
)
