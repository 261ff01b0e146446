package models

import "errors"

var (
	// ErrNotFound is returned when an id does not resolve to a record
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEntity is returned when a uniqueness constraint would be violated
	ErrDuplicateEntity = errors.New("duplicate entity")
	// ErrPermissionDenied is returned when the acting user's role does not allow the action
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidTransition is returned for game status changes the lifecycle does not define
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrValidation is returned when a request is malformed
	ErrValidation = errors.New("validation failed")
)
