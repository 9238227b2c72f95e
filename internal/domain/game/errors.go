package game

import "errors"

var (
	// ErrIllegalPhase is returned when an operation is not allowed in the current phase.
	ErrIllegalPhase = errors.New("operation not allowed in current phase")
	// ErrValidation is returned for blank required text or an invalid tone.
	ErrValidation = errors.New("validation failed")
	// ErrUnknownReference is returned when an id does not resolve.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrBookendExists is returned when a bookend period is created twice.
	ErrBookendExists = errors.New("bookend period already exists")
	// ErrInvalidPlacement is returned when a period would fall outside the bookends.
	ErrInvalidPlacement = errors.New("invalid placement")
	// ErrNoCurrentFocus is returned when an operation needs a focus and none is set.
	ErrNoCurrentFocus = errors.New("no current focus")
)
