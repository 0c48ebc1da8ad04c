package courier

import (
	"time"
)

// Delivery is the courier's single, reused batch slot. Its id equals the
// courier id. The slot is created by the first assignment and survives every
// later batch.
//
// completeTime is a rolling cursor, not a fixed creation time: it starts at the
// first batch's assignment and moves forward on every completion. The duration
// of a completed order is measured from the previous cursor position, and a new
// batch does not reset it.
type Delivery struct {
	assignTime       time.Time
	completeTime     time.Time
	typeAtAssignment Type
}

func RestoreDelivery(assignTime, completeTime time.Time, typeAtAssignment Type) (*Delivery, error) {
	if err := typeAtAssignment.Validate(); err != nil {
		return nil, err
	}
	return &Delivery{
		assignTime:       assignTime,
		completeTime:     completeTime,
		typeAtAssignment: typeAtAssignment,
	}, nil
}

func (d *Delivery) AssignTime() time.Time {
	return d.assignTime
}

func (d *Delivery) CompleteTime() time.Time {
	return d.completeTime
}

// CourierTypeAtAssignment is the courier type snapshotted when the current
// batch was formed. Earnings for the batch use it.
func (d *Delivery) CourierTypeAtAssignment() Type {
	return d.typeAtAssignment
}

func (d *Delivery) startBatch(now time.Time, t Type) {
	d.assignTime = now
	d.typeAtAssignment = t
	if d.completeTime.IsZero() {
		d.completeTime = now
	}
}

// advance moves the cursor to at and returns the time elapsed since the
// previous position.
func (d *Delivery) advance(at time.Time) time.Duration {
	elapsed := at.Sub(d.completeTime)
	d.completeTime = at
	return elapsed
}
