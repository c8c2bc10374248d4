package queries_test

import (
	"testing"

	"commerce/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetIncompleteOrdersQuery_Constructed(t *testing.T) {
	query := queries.NewGetIncompleteOrdersQuery()
	require.NoError(t, query.Validate())
}

func TestGetIncompleteOrdersQuery_Validate_NotConstructed(t *testing.T) {
	var query queries.GetIncompleteOrdersQuery
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetIncompleteOrdersQueryIsNotConstructed)
}
