package commands_test

import (
	"testing"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddLineItemCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	lineItemID := kernel.NewUUID()
	variantID := kernel.NewUUID()

	cmd, err := commands.NewAddLineItemCommand(orderID, lineItemID, variantID, mustMoney("10.00"), 2)

	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, lineItemID, cmd.LineItemID())
	assert.Equal(t, variantID, cmd.VariantID())
	assert.True(t, cmd.Price().IsEqual(mustMoney("10.00")))
	assert.Equal(t, 2, cmd.Quantity())
}

func TestNewAddLineItemCommand_ZeroQuantity(t *testing.T) {
	_, err := commands.NewAddLineItemCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), mustMoney("10.00"), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrQuantityIsInvalid)
}

func TestNewAddLineItemCommand_NegativePrice(t *testing.T) {
	_, err := commands.NewAddLineItemCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), mustMoney("-1.00"), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrPriceIsInvalid)
}

func TestNewAddLineItemCommand_InvalidIDs(t *testing.T) {
	var invalidID kernel.UUID
	_, err := commands.NewAddLineItemCommand(invalidID, invalidID, invalidID, mustMoney("10.00"), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestAddLineItemCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.AddLineItemCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrAddLineItemCommandIsNotConstructed)
}
