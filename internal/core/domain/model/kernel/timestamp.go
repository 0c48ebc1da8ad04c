package kernel

import (
	"fmt"
	"regexp"
	"time"

	"dispatch/internal/pkg/errs"
)

const (
	// TimestampLayout is the wire form of assign and complete times,
	// e.g. 2021-01-10T09:32:14.420000Z.
	TimestampLayout = "2006-01-02T15:04:05.000000Z"

	// time.Parse accepts any fractional second after the seconds field.
	timestampParseLayout = "2006-01-02T15:04:05Z"
)

// Inputs carry one to six fraction digits after a dot.
var timestampPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}\.[0-9]{1,6}Z$`)

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func ParseTimestamp(s string) (time.Time, error) {
	if !timestampPattern.MatchString(s) {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(
			"timestamp", fmt.Errorf("%q does not match YYYY-MM-DDTHH:MM:SS.ffffffZ", s))
	}

	t, err := time.Parse(timestampParseLayout, s)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("timestamp", err)
	}
	return t.UTC(), nil
}
