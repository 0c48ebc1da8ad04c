package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRanges(t *testing.T, values ...string) []kernel.TimeRange {
	t.Helper()
	ranges, err := kernel.ParseTimeRanges(values)
	require.NoError(t, err)
	return ranges
}

func TestParseTimeRange(t *testing.T) {
	t.Run("parses_valid_window", func(t *testing.T) {
		// When
		r, err := kernel.ParseTimeRange("09:05-18:30")

		// Then
		require.NoError(t, err)
		assert.Equal(t, 9*60+5, r.Start())
		assert.Equal(t, 18*60+30, r.End())
		assert.Equal(t, "09:05-18:30", r.String())
		require.NoError(t, r.Validate())
	})

	t.Run("accepts_single_minute_window", func(t *testing.T) {
		r, err := kernel.ParseTimeRange("12:00-12:00")

		require.NoError(t, err)
		assert.Equal(t, r.Start(), r.End())
	})

	invalid := []string{
		"",
		"9:00-18:00",
		"09:00 - 18:00",
		"09:00-24:00",
		"25:00-26:00",
		"09:60-10:00",
		"18:00-09:00",
		"09:00-18:00-19:00",
		"aa:bb-cc:dd",
	}
	for _, v := range invalid {
		t.Run("rejects_"+v, func(t *testing.T) {
			_, err := kernel.ParseTimeRange(v)

			require.Error(t, err)
		})
	}
}

func TestNewTimeRange(t *testing.T) {
	t.Run("rejects_out_of_day_bounds", func(t *testing.T) {
		_, err := kernel.NewTimeRange(-1, 10)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = kernel.NewTimeRange(0, 1440)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero_value_is_not_constructed", func(t *testing.T) {
		var r kernel.TimeRange

		assert.ErrorIs(t, r.Validate(), kernel.ErrTimeRangeIsNotConstructed)
	})
}

func TestParseTimeRanges(t *testing.T) {
	t.Run("joins_all_failures", func(t *testing.T) {
		_, err := kernel.ParseTimeRanges([]string{"09:00-10:00", "bad", "also bad"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), `"bad"`)
		assert.Contains(t, err.Error(), `"also bad"`)
	})

	t.Run("empty_input_gives_empty_result", func(t *testing.T) {
		ranges, err := kernel.ParseTimeRanges(nil)

		require.NoError(t, err)
		assert.Empty(t, ranges)
	})
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name    string
		courier []string
		order   []string
		want    bool
	}{
		{"courier_inside_order", []string{"10:00-11:00"}, []string{"09:00-18:00"}, true},
		{"order_inside_courier", []string{"09:00-18:00"}, []string{"10:00-11:00"}, true},
		{"courier_ends_when_order_starts", []string{"09:00-11:00"}, []string{"11:00-11:05"}, true},
		{"courier_ends_one_minute_before_order", []string{"09:00-10:59"}, []string{"11:00-11:05"}, true},
		{"courier_ends_two_minutes_before_order", []string{"09:00-10:58"}, []string{"11:00-11:05"}, false},
		{"courier_starts_when_order_ends", []string{"11:05-12:00"}, []string{"11:00-11:05"}, false},
		{"courier_starts_one_minute_before_order_end", []string{"11:04-12:00"}, []string{"11:00-11:05"}, true},
		{"disjoint", []string{"06:00-07:00"}, []string{"12:00-13:00"}, false},
		{"any_of_any", []string{"06:00-07:00", "16:00-17:00"}, []string{"12:00-13:00", "16:30-18:00"}, true},
		{"two_windows_each_side", []string{"11:35-14:05", "09:00-11:00"}, []string{"09:00-12:00", "16:00-21:30"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			courier := mustRanges(t, tt.courier...)
			order := mustRanges(t, tt.order...)

			// When
			got := kernel.Overlaps(courier, order)

			// Then
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("empty_lists_never_overlap", func(t *testing.T) {
		windows := mustRanges(t, "00:00-23:59")

		assert.False(t, kernel.Overlaps(nil, windows))
		assert.False(t, kernel.Overlaps(windows, nil))
		assert.False(t, kernel.Overlaps(nil, nil))
	})

	t.Run("zero_value_windows_are_ignored", func(t *testing.T) {
		windows := mustRanges(t, "00:00-23:59")

		assert.False(t, kernel.Overlaps([]kernel.TimeRange{{}}, windows))
	})
}
