package errs

import (
	"fmt"
)

// RejectedBatchError is returned when one or more entries of a batch create
// failed validation; nothing was persisted. Positions are zero-based entry
// indexes and IDs the matching entry ids (zero when the entry had no usable id).
type RejectedBatchError struct {
	Entity    string
	Positions []int
	IDs       []int64
}

func NewRejectedBatchError(entity string, positions []int, ids []int64) *RejectedBatchError {
	return &RejectedBatchError{
		Entity:    entity,
		Positions: positions,
		IDs:       ids,
	}
}

func (e *RejectedBatchError) Error() string {
	return fmt.Sprintf("%s: %s %v", ErrValueIsInvalid, e.Entity, e.IDs)
}

func (e *RejectedBatchError) Unwrap() error {
	return ErrValueIsInvalid
}
