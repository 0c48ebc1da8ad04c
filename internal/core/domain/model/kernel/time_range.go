package kernel

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

var (
	ErrTimeRangeIsNotConstructed = errors.New("TimeRange must be created via NewTimeRange or ParseTimeRange")

	timeRangePattern = regexp.MustCompile(`^([0-9]{2}):([0-9]{2})-([0-9]{2}):([0-9]{2})$`)
)

// TimeRange is a time-of-day window written as "HH:MM-HH:MM" and held as
// minutes of day. Both bounds are inclusive; a window never wraps past
// midnight.
type TimeRange struct {
	start int
	end   int
	guard guard.ConstructorGuard
}

// NewTimeRange builds a window from minutes of day. Both bounds must lie in
// [0, 1439] and start must not exceed end.
func NewTimeRange(start, end int) (TimeRange, error) {
	if start < 0 || start >= minutesPerDay {
		return TimeRange{}, errs.NewValueIsOutOfRangeError("start", start, 0, minutesPerDay-1)
	}
	if end < 0 || end >= minutesPerDay {
		return TimeRange{}, errs.NewValueIsOutOfRangeError("end", end, 0, minutesPerDay-1)
	}
	if end < start {
		return TimeRange{}, errs.NewValueIsInvalidErrorWithCause(
			"time range",
			fmt.Errorf("end %s is before start %s", formatClock(end), formatClock(start)),
		)
	}

	return TimeRange{
		start: start,
		end:   end,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ParseTimeRange parses the "HH:MM-HH:MM" wire form.
func ParseTimeRange(s string) (TimeRange, error) {
	m := timeRangePattern.FindStringSubmatch(s)
	if m == nil {
		return TimeRange{}, errs.NewValueIsInvalidErrorWithCause(
			"time range", fmt.Errorf("%q does not match HH:MM-HH:MM", s))
	}

	start, err := clockMinutes(m[1], m[2])
	if err != nil {
		return TimeRange{}, errs.NewValueIsInvalidErrorWithCause("time range", err)
	}
	end, err := clockMinutes(m[3], m[4])
	if err != nil {
		return TimeRange{}, errs.NewValueIsInvalidErrorWithCause("time range", err)
	}

	return NewTimeRange(start, end)
}

// ParseTimeRanges parses every element and joins all failures.
func ParseTimeRanges(values []string) ([]TimeRange, error) {
	ranges := make([]TimeRange, 0, len(values))
	var errList []error
	for _, v := range values {
		r, err := ParseTimeRange(v)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		ranges = append(ranges, r)
	}
	if len(errList) > 0 {
		return nil, errors.Join(errList...)
	}
	return ranges, nil
}

func (r TimeRange) Validate() error {
	return r.guard.Validate(ErrTimeRangeIsNotConstructed)
}

func (r TimeRange) Start() int {
	return r.start
}

func (r TimeRange) End() int {
	return r.end
}

func (r TimeRange) IsEqual(other TimeRange) bool {
	return r.start == other.start && r.end == other.end
}

func (r TimeRange) String() string {
	return formatClock(r.start) + "-" + formatClock(r.end)
}

// Overlaps reports whether any courier window is compatible with any order
// window. An empty list on either side never overlaps.
//
// The order window is shifted one minute earlier before the comparison:
// courier [s1,e1] and order [s2,e2] overlap iff s1 <= e2-1 and s2-1 <= e1.
// A courier finishing at exactly the order window's start still qualifies,
// while a courier starting exactly at the order window's end does not.
// Matching outcomes depend on this rule, keep it stable.
func Overlaps(courierWindows, orderWindows []TimeRange) bool {
	for _, c := range courierWindows {
		if c.Validate() != nil {
			continue
		}
		for _, o := range orderWindows {
			if o.Validate() != nil {
				continue
			}
			if c.start <= o.end-1 && o.start-1 <= c.end {
				return true
			}
		}
	}
	return false
}

func clockMinutes(hh, mm string) (int, error) {
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, err
	}
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%s:%s is not a valid time of day", hh, mm)
	}
	return h*minutesPerHour + m, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/minutesPerHour, minutes%minutesPerHour)
}
