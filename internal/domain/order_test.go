package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmPlacedOrder(t *testing.T) {
	o := &Order{Status: OrderStatusPlaced}

	require.NoError(t, o.Confirm())
	assert.Equal(t, OrderStatusConfirmed, o.Status)
}

func TestConfirmTwiceIsRejected(t *testing.T) {
	o := &Order{Status: OrderStatusPlaced}
	require.NoError(t, o.Confirm())

	err := o.Confirm()

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidStateTransition))
	assert.Equal(t, OrderStatusConfirmed, o.Status)
}

func TestConfirmNonPlacedOrderIsRejected(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusConfirmed, OrderStatusFulfilled, OrderStatusCancelled} {
		o := &Order{Status: status}
		err := o.Confirm()
		require.Error(t, err, "status %s", status)
		assert.True(t, errors.Is(err, ErrInvalidStateTransition), "status %s", status)
	}
}

func TestCalculateTotalSumsLineTotals(t *testing.T) {
	o := &Order{Items: []OrderItem{
		{Quantity: 2, UnitPrice: decimal.RequireFromString("5.99")},
		{Quantity: 1, UnitPrice: decimal.RequireFromString("3.49")},
	}}

	total := o.CalculateTotal()

	assert.True(t, total.Equal(decimal.RequireFromString("15.47")), "total: got %s", total)
}

func TestCalculateTotalWithNoItemsIsZero(t *testing.T) {
	o := &Order{}

	assert.True(t, o.CalculateTotal().IsZero())
}
