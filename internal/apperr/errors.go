package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrOverlap           = errors.New("time range overlaps an existing event")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotSchedulable    = errors.New("note is not ready to be scheduled")
	ErrDifferentDay      = errors.New("events are on different days")
	ErrNoPending         = errors.New("no pending event creation")
	ErrReadOnlyField     = errors.New("field cannot be edited directly")
	ErrInvalidInput      = errors.New("invalid input")
)
