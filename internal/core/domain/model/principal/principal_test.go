package principal_test

import (
	"testing"

	"quickdrop/internal/core/domain/model/kernel"
	"quickdrop/internal/core/domain/model/principal"
	"quickdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	t.Run("parses_known_roles", func(t *testing.T) {
		testCases := []struct {
			name     string
			expected principal.Role
		}{
			{"customer", principal.RoleCustomer},
			{"partner", principal.RolePartner},
			{"admin", principal.RoleAdmin},
		}

		for _, tc := range testCases {
			role, err := principal.RoleFromString(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, role)
			assert.Equal(t, tc.name, role.String())
		}
	})

	t.Run("rejects_unknown_role", func(t *testing.T) {
		_, err := principal.RoleFromString("superuser")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_unknown_literal", func(t *testing.T) {
		_, err := principal.RoleFromString("unknown")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewPrincipal(t *testing.T) {
	t.Run("creates_valid_principal", func(t *testing.T) {
		// Given
		id := kernel.NewUUID()

		// When
		p, err := principal.NewPrincipal(id, principal.RolePartner)

		// Then
		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(id))
		assert.Equal(t, principal.RolePartner, p.Role())
		assert.True(t, p.IsPartner())
		assert.False(t, p.IsCustomer())
		assert.False(t, p.IsAdmin())
	})

	t.Run("rejects_zero_id", func(t *testing.T) {
		var zero kernel.UUID
		_, err := principal.NewPrincipal(zero, principal.RoleCustomer)
		require.Error(t, err)
	})

	t.Run("rejects_invalid_role", func(t *testing.T) {
		_, err := principal.NewPrincipal(kernel.NewUUID(), principal.RoleUnknown)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPrincipal_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var p principal.Principal
		require.Error(t, p.Validate())
	})
}
