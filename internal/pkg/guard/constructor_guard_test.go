package guard_test

import (
	"errors"
	"testing"

	"quickdrop/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()
		customError := errors.New("not constructed")

		// When
		err := g.Validate(customError)

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample shows the intended embedding pattern.
func TestConstructorGuardUsageExample(t *testing.T) {
	type trackingRef struct {
		orderID string
		guard   guard.ConstructorGuard
	}

	var errTrackingRefNotConstructed = errors.New("trackingRef must be created via newTrackingRef")

	newTrackingRef := func(orderID string) (trackingRef, error) {
		if orderID == "" {
			return trackingRef{}, errors.New("orderID is required")
		}
		return trackingRef{
			orderID: orderID,
			guard:   guard.NewConstructorGuard(),
		}, nil
	}

	validate := func(r trackingRef) error {
		return r.guard.Validate(errTrackingRefNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		ref, err := newTrackingRef("o-1")
		require.NoError(t, err)
		require.NoError(t, validate(ref))
		assert.Equal(t, "o-1", ref.orderID)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var ref trackingRef

		err := validate(ref)

		require.Error(t, err)
		assert.Equal(t, errTrackingRefNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		_, err := newTrackingRef("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "orderID is required")
	})
}

func TestConstructorGuardDefaultError(t *testing.T) {
	t.Run("default_error_constant_has_meaningful_message", func(t *testing.T) {
		require.Error(t, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuardConcurrency verifies that a guard can be validated from
// many goroutines at once.
func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for i := 0; i < 50; i++ {
		go func() {
			for j := 0; j < 1000; j++ {
				assert.NoError(t, g.Validate(validationError))
			}
			done <- true
		}()
	}

	for i := 0; i < 50; i++ {
		<-done
	}
}
