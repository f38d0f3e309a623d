package order_test

import (
	"testing"

	"quickdrop/internal/core/domain/model/order"
	"quickdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Placed, "placed"},
		{order.Accepted, "accepted"},
		{order.PickedUp, "picked_up"},
		{order.InTransit, "in_transit"},
		{order.Delivered, "delivered"},
		{order.Cancelled, "cancelled"},
		{order.Unknown, "unknown"},
		{order.Status(99), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("parses_all_wire_names", func(t *testing.T) {
		for _, name := range []string{"placed", "accepted", "picked_up", "in_transit", "delivered", "cancelled"} {
			status, err := order.StatusFromString(name)
			require.NoError(t, err)
			assert.Equal(t, name, status.String())
		}
	})

	t.Run("rejects_unknown_names", func(t *testing.T) {
		_, err := order.StatusFromString("preparing")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_empty_string", func(t *testing.T) {
		_, err := order.StatusFromString("")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid_statuses", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Placed, order.Accepted, order.PickedUp,
			order.InTransit, order.Delivered, order.Cancelled,
		} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("invalid_statuses", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	type transition struct {
		from order.Status
		to   order.Status
	}

	legal := []transition{
		{order.Placed, order.Accepted},
		{order.Placed, order.Cancelled},
		{order.Accepted, order.PickedUp},
		{order.Accepted, order.Cancelled},
		{order.PickedUp, order.InTransit},
		{order.InTransit, order.Delivered},
	}

	t.Run("legal_transitions", func(t *testing.T) {
		for _, tr := range legal {
			next, err := tr.from.TransitionTo(tr.to)
			require.NoError(t, err, "%s -> %s", tr.from, tr.to)
			assert.Equal(t, tr.to, next)
		}
	})

	t.Run("every_other_pair_is_illegal_or_noop", func(t *testing.T) {
		all := []order.Status{
			order.Placed, order.Accepted, order.PickedUp,
			order.InTransit, order.Delivered, order.Cancelled,
		}

		isLegal := func(from, to order.Status) bool {
			for _, tr := range legal {
				if tr.from == from && tr.to == to {
					return true
				}
			}
			return false
		}

		for _, from := range all {
			for _, to := range all {
				if isLegal(from, to) {
					continue
				}

				_, err := from.TransitionTo(to)
				if from == to {
					require.ErrorIs(t, err, errs.ErrNoOp, "%s -> %s", from, to)
				} else {
					require.ErrorIs(t, err, errs.ErrIllegalTransition, "%s -> %s", from, to)
				}
			}
		}
	})

	t.Run("noop_is_distinct_from_illegal_transition", func(t *testing.T) {
		_, noopErr := order.Accepted.TransitionTo(order.Accepted)
		_, illegalErr := order.Accepted.TransitionTo(order.Delivered)

		require.ErrorIs(t, noopErr, errs.ErrNoOp)
		require.NotErrorIs(t, noopErr, errs.ErrIllegalTransition)
		require.ErrorIs(t, illegalErr, errs.ErrIllegalTransition)
		require.NotErrorIs(t, illegalErr, errs.ErrNoOp)
	})

	t.Run("terminal_statuses_admit_nothing", func(t *testing.T) {
		for _, terminal := range []order.Status{order.Delivered, order.Cancelled} {
			for _, to := range []order.Status{
				order.Placed, order.Accepted, order.PickedUp, order.InTransit,
			} {
				_, err := terminal.TransitionTo(to)
				require.ErrorIs(t, err, errs.ErrIllegalTransition)
			}
		}
	})

	t.Run("invalid_target_is_rejected", func(t *testing.T) {
		_, err := order.Placed.TransitionTo(order.Unknown)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Placed.IsTerminal())
	assert.False(t, order.Accepted.IsTerminal())
	assert.False(t, order.PickedUp.IsTerminal())
	assert.False(t, order.InTransit.IsTerminal())
}

func TestStatus_IsClaimable(t *testing.T) {
	assert.True(t, order.Placed.IsClaimable())
	for _, s := range []order.Status{
		order.Accepted, order.PickedUp, order.InTransit, order.Delivered, order.Cancelled,
	} {
		assert.False(t, s.IsClaimable(), s.String())
	}
}

func TestStatus_ValidateCanHaveAssignee(t *testing.T) {
	t.Run("placed_must_be_unassigned", func(t *testing.T) {
		require.NoError(t, order.Placed.ValidateCanHaveAssignee(false))
		require.Error(t, order.Placed.ValidateCanHaveAssignee(true))
	})

	t.Run("active_and_delivered_must_be_assigned", func(t *testing.T) {
		for _, s := range []order.Status{order.Accepted, order.PickedUp, order.InTransit, order.Delivered} {
			require.NoError(t, s.ValidateCanHaveAssignee(true), s.String())
			require.Error(t, s.ValidateCanHaveAssignee(false), s.String())
		}
	})

	t.Run("cancelled_allows_both", func(t *testing.T) {
		require.NoError(t, order.Cancelled.ValidateCanHaveAssignee(true))
		require.NoError(t, order.Cancelled.ValidateCanHaveAssignee(false))
	})
}
