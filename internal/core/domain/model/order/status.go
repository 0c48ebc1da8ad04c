package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Unassigned ──> Assigned ──> Completed
//	     ^            │
//	     └────────────┘
//	  (evicted on courier profile change)
//
// Completed is terminal.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Unassigned orders sit in the pool waiting for a courier.
	Unassigned

	// Assigned orders belong to exactly one courier's active batch.
	Assigned

	// Completed orders were delivered. They keep their delivery reference.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Unassigned: "Unassigned",
		Assigned:   "Assigned",
		Completed:  "Completed",
	}
}

// Validate checks that s is one of Unassigned, Assigned or Completed.
func (s Status) Validate() error {
	if s != Unassigned && s != Assigned && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateCanHaveDelivery checks status against the presence of a delivery
// reference: Unassigned orders have none, Assigned and Completed orders have one.
func (s Status) ValidateCanHaveDelivery(delivery bool) error {
	if delivery && s == Unassigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a delivery", s),
		)
	}

	if !delivery && (s == Assigned || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no delivery", s),
		)
	}

	return nil
}

// Assign moves an Unassigned order into a batch. Assigned orders cannot be
// stolen by another courier.
func (s Status) Assign() (Status, error) {
	if s != Unassigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s),
		)
	}
	return Assigned, nil
}

// Unassign returns an Assigned order to the pool.
func (s Status) Unassign() (Status, error) {
	if s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to unassign", s),
		)
	}
	return Unassigned, nil
}

// Complete marks an Assigned order delivered.
func (s Status) Complete() (Status, error) {
	if s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s),
		)
	}
	return Completed, nil
}
