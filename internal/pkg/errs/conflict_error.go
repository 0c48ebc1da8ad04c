package errs

import (
	"errors"
	"fmt"
)

var ErrConflict = errors.New("concurrent modification conflict")

// ConflictError reports that another transaction changed or locked the same
// rows first. The caller may retry the whole operation.
type ConflictError struct {
	Resource string
	Cause    error
}

func NewConflictErrorWithCause(resource string, cause error) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Cause:    cause,
	}
}

func NewConflictError(resource string) *ConflictError {
	return &ConflictError{
		Resource: resource,
	}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrConflict, e.Resource, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConflict, e.Resource)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
