package commands_test

import (
	"testing"

	"quickdrop/internal/core/application/usecases/commands"
	"quickdrop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClaimOrderCommand(t *testing.T) {
	t.Run("creates_valid_command", func(t *testing.T) {
		// Given
		orderID := kernel.NewUUID()
		partnerID := kernel.NewUUID()

		// When
		cmd, err := commands.NewClaimOrderCommand(orderID, partnerID)

		// Then
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.PartnerID().IsEqual(partnerID))
	})

	t.Run("rejects_zero_order_id", func(t *testing.T) {
		var zero kernel.UUID
		_, err := commands.NewClaimOrderCommand(zero, kernel.NewUUID())
		require.Error(t, err)
	})

	t.Run("rejects_zero_partner_id", func(t *testing.T) {
		var zero kernel.UUID
		_, err := commands.NewClaimOrderCommand(kernel.NewUUID(), zero)
		require.Error(t, err)
	})
}

func TestClaimOrderCommand_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var cmd commands.ClaimOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrClaimOrderCommandIsNotConstructed)
	})
}
