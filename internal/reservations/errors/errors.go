package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrInvalidID = errors.New("invalid reservation ID format")

	// ErrStatusChanged means the stored status no longer matches the one the
	// transition was checked against.
	ErrStatusChanged = errors.New("reservation status changed concurrently")
)
