package calendar

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateName   = errors.New("a routine with this name already exists")
	ErrEmptyName       = errors.New("routine name is empty")
	ErrNotFound        = errors.New("routine not found")
	ErrUnknownCategory = errors.New("unknown routine")
	ErrFutureDate      = errors.New("cannot log workouts for the future")
	ErrInvalidFormat   = errors.New("invalid data format")
	ErrPersistence     = errors.New("could not save data")
)

// PersistenceError reports that a mutation was applied in memory but could
// not be written to the blob store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrPersistence, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

func invalidFormat(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFormat, fmt.Sprintf(format, args...))
}
