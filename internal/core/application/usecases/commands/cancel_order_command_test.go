package commands_test

import (
	"testing"

	"quickdrop/internal/core/application/usecases/commands"
	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/principal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCancelOrderCommand(t *testing.T) {
	t.Run("creates_valid_command", func(t *testing.T) {
		// Given
		orderID := kernel.NewUUID()
		actor, err := principal.NewPrincipal(kernel.NewUUID(), principal.RoleCustomer)
		require.NoError(t, err)

		// When
		cmd, err := commands.NewCancelOrderCommand(orderID, actor)

		// Then
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.Equal(t, actor, cmd.Actor())
	})

	t.Run("rejects_zero_order_id", func(t *testing.T) {
		var zero kernel.UUID
		actor, err := principal.NewPrincipal(kernel.NewUUID(), principal.RoleAdmin)
		require.NoError(t, err)

		_, err = commands.NewCancelOrderCommand(zero, actor)
		require.Error(t, err)
	})

	t.Run("rejects_unconstructed_actor", func(t *testing.T) {
		var actor principal.Principal
		_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), actor)
		require.Error(t, err)
	})
}

func TestCancelOrderCommand_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var cmd commands.CancelOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCancelOrderCommandIsNotConstructed)
	})
}
