package engine

import (
	"errors"

	"github.com/danieljhkim/escala/internal/conflict"
	"github.com/danieljhkim/escala/internal/limiter"
)

var (
	// ErrValidation indicates a validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrDataUnavailable indicates reference or roster data needed for a
	// conflict scan could not be loaded. It is the conflict package's
	// sentinel so either can be matched with errors.Is.
	ErrDataUnavailable = conflict.ErrDataUnavailable

	// ErrLimitExceeded indicates a placement would exceed the monthly cap.
	// Rejections carry a *limiter.LimitExceededError with the count.
	ErrLimitExceeded = limiter.ErrLimitExceeded

	// ErrDuplicateInRow indicates the person already holds another slot of
	// the same row.
	ErrDuplicateInRow = errors.New("person already in this row")

	// ErrAlreadyOnDay indicates the person already serves in another
	// operation on the same day.
	ErrAlreadyOnDay = errors.New("person already scheduled on this day")

	// ErrStale indicates the confirmed roster changed after the draft started.
	ErrStale = errors.New("confirmed roster changed since draft was started")

	// ErrNoDraft indicates there are no pending edits.
	ErrNoDraft = errors.New("no pending changes")
)
