package courier_test

import (
	"testing"

	"dispatch/internal/core/domain/model/courier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func region(t *testing.T, number int, count int64, sum float64) *courier.Region {
	t.Helper()
	r, err := courier.RestoreRegion(number, count, sum)
	require.NoError(t, err)
	return r
}

func TestRating(t *testing.T) {
	t.Run("absent_without_earnings", func(t *testing.T) {
		_, ok := courier.Rating(0, []*courier.Region{region(t, 1, 2, 1800)})

		assert.False(t, ok)
	})

	t.Run("fastest_region_average", func(t *testing.T) {
		rating, ok := courier.Rating(1000, []*courier.Region{
			region(t, 1, 2, 1800),
			region(t, 2, 1, 3000),
		})

		require.True(t, ok)
		assert.InDelta(t, 3.75, rating, 1e-9)
	})

	t.Run("regions_without_orders_are_ignored", func(t *testing.T) {
		rating, ok := courier.Rating(1000, []*courier.Region{
			region(t, 1, 0, 0),
			region(t, 2, 1, 3000),
		})

		require.True(t, ok)
		assert.InDelta(t, 0.83, rating, 1e-9)
	})

	t.Run("averages_above_an_hour_score_zero", func(t *testing.T) {
		rating, ok := courier.Rating(500, []*courier.Region{region(t, 1, 1, 7200)})

		require.True(t, ok)
		assert.Zero(t, rating)
	})

	t.Run("instant_delivery_scores_five", func(t *testing.T) {
		rating, ok := courier.Rating(1000, []*courier.Region{region(t, 1, 2, 0)})

		require.True(t, ok)
		assert.InDelta(t, 5.0, rating, 1e-9)
	})
}

func TestCourierType(t *testing.T) {
	tests := []struct {
		name        string
		typ         courier.Type
		capacity    int64
		coefficient int64
	}{
		{"foot", courier.Foot, 10, 2},
		{"bike", courier.Bike, 15, 5},
		{"car", courier.Car, 50, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := courier.ParseType(tt.name)

			require.NoError(t, err)
			assert.Equal(t, tt.typ, parsed)
			assert.Equal(t, tt.name, parsed.String())
			assert.Equal(t, tt.capacity, parsed.Capacity().IntPart())
			assert.Equal(t, tt.coefficient, parsed.Coefficient())
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := courier.ParseType("plane")

		require.Error(t, err)
		assert.Equal(t, "unknown", courier.UnknownType.String())
		assert.Error(t, courier.UnknownType.Validate())
	})
}
