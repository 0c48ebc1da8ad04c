package commands

import (
	"dispatch/internal/core/domain/model/courier"
)

// CourierProfile is the courier's public profile after a change.
type CourierProfile struct {
	CourierID    int64
	CourierType  string
	Regions      []int
	WorkingHours []string
}

func newCourierProfile(c *courier.Courier) CourierProfile {
	hours := make([]string, 0, len(c.WorkingHours()))
	for _, h := range c.WorkingHours() {
		hours = append(hours, h.String())
	}

	return CourierProfile{
		CourierID:    c.ID(),
		CourierType:  c.Type().String(),
		Regions:      c.RegionNumbers(),
		WorkingHours: hours,
	}
}
