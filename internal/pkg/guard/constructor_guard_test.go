package guard_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_Embedded(t *testing.T) {
	errWindowNotConstructed := errors.New("Window must be created via newWindow")

	type window struct {
		guard.ConstructorGuard
		from, to int
	}

	newWindow := func(from, to int) (window, error) {
		if to < from {
			return window{}, errors.New("window ends before it starts")
		}
		return window{ConstructorGuard: guard.NewConstructorGuard(), from: from, to: to}, nil
	}

	t.Run("constructed_value_passes", func(t *testing.T) {
		// When
		w, err := newWindow(540, 660)

		// Then
		require.NoError(t, err)
		require.NoError(t, w.Validate(errWindowNotConstructed))
	})

	t.Run("struct_literal_fails", func(t *testing.T) {
		// Given
		w := window{from: 540, to: 660}

		// When
		err := w.Validate(errWindowNotConstructed)

		// Then
		assert.Equal(t, errWindowNotConstructed, err)
	})

	t.Run("copy_keeps_state", func(t *testing.T) {
		// Given
		w, err := newWindow(0, 10)
		require.NoError(t, err)

		// When
		cp := w

		// Then
		require.NoError(t, cp.Validate(nil))
	})
}

func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 50 {
		go func() {
			for range 200 {
				assert.NoError(t, g.Validate(validationError))
			}
			done <- true
		}()
	}

	for range 50 {
		<-done
	}
}
