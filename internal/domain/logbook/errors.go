package logbook

import "errors"

// Domain errors for meal log operations

var (
	ErrMissingUser        = errors.New("meal log requires a user")
	ErrEmptyMacros        = errors.New("meal log requires at least one non-zero macro")
	ErrMissingTimestamp   = errors.New("meal log requires the time it was eaten")
	ErrDescriptionTooLong = errors.New("meal description must not exceed 500 characters")

	ErrLogNotFound = errors.New("meal log not found")
)
