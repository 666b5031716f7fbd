package errors

import "errors"

var (
	ErrNotFound = errors.New("babysitter not found")

	ErrInvalidID = errors.New("invalid babysitter ID format")
)
