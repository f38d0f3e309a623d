package errs_test

import (
	"errors"
	"testing"

	"quickdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("status")

		assert.Equal(t, "status", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: status", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("status", cause)

		assert.Equal(t, "status", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: status (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("lat", 150, -90, 90)

		assert.Equal(t, "lat", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, -90, err.Min)
		assert.Equal(t, 90, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is lat, min value is -90, max value is 90", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("quantity", -5, 0, 100, cause)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is quantity, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("customerId")

		assert.Equal(t, "customerId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: customerId", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("customerId", cause)

		assert.Equal(t, "customerId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: customerId (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("order", "o-1")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "o-1", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "conflict: o-1", err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("already claimed by another partner")
		err := errs.NewConflictErrorWithCause("order", "o-1", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"conflict: param is: order, ID is: o-1 (cause: already claimed by another partner)",
			err.Error())
		assert.Equal(t, errs.ErrConflict, err.Unwrap())
	})
}

func TestForbiddenError(t *testing.T) {
	t.Run("NewForbiddenError", func(t *testing.T) {
		err := errs.NewForbiddenError("partnerId")

		assert.Equal(t, "partnerId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "forbidden: partnerId", err.Error())
		assert.Equal(t, errs.ErrForbidden, err.Unwrap())
	})

	t.Run("NewForbiddenErrorWithCause", func(t *testing.T) {
		cause := errors.New("caller is not the assigned partner")
		err := errs.NewForbiddenErrorWithCause("partnerId", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "forbidden: partnerId (cause: caller is not the assigned partner)", err.Error())
		assert.Equal(t, errs.ErrForbidden, err.Unwrap())
	})
}

func TestIllegalTransitionError(t *testing.T) {
	err := errs.NewIllegalTransitionError("accepted", "delivered")

	assert.Equal(t, "accepted", err.From)
	assert.Equal(t, "delivered", err.To)
	assert.Equal(t, "illegal transition: accepted -> delivered", err.Error())
	assert.Equal(t, errs.ErrIllegalTransition, err.Unwrap())
}

func TestNoOpError(t *testing.T) {
	err := errs.NewNoOpError("accepted")

	assert.Equal(t, "accepted", err.Status)
	assert.Equal(t, "no-op: status is already accepted", err.Error())
	assert.Equal(t, errs.ErrNoOp, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrConflict)
		require.Error(t, errs.ErrForbidden)
		require.Error(t, errs.ErrIllegalTransition)
		require.Error(t, errs.ErrNoOp)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "conflict", errs.ErrConflict.Error())
		assert.Equal(t, "forbidden", errs.ErrForbidden.Error())
		assert.Equal(t, "illegal transition", errs.ErrIllegalTransition.Error())
		assert.Equal(t, "no-op", errs.ErrNoOp.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("status"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("lat", 150, -90, 90), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("customerId"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewConflictError("order", "o-1"), errs.ErrConflict)
		require.ErrorIs(t, errs.NewForbiddenError("partnerId"), errs.ErrForbidden)
		require.ErrorIs(t, errs.NewIllegalTransitionError("placed", "delivered"), errs.ErrIllegalTransition)
		require.ErrorIs(t, errs.NewNoOpError("accepted"), errs.ErrNoOp)
	})
}
