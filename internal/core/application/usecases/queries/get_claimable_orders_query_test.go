package queries_test

import (
	"testing"

	"quickdrop/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetClaimableOrdersQuery_Valid(t *testing.T) {
	query := queries.NewGetClaimableOrdersQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetClaimableOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetClaimableOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetClaimableOrdersQueryIsNotConstructed)
}
