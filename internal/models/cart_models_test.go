package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(menuID int64, qty int, price string) CartLine {
	return CartLine{MenuID: menuID, Quantity: qty, UnitPrice: decimal.RequireFromString(price), Name: "item"}
}

func TestCart_AddKeepsDuplicateLines(t *testing.T) {
	cart := NewCart(7)
	require.True(t, cart.IsEmpty())

	cart.Add(line(1, 2, "10.00"))
	cart.Add(line(1, 1, "10.00"))

	assert.Equal(t, 2, cart.Size())
	assert.False(t, cart.IsEmpty())
	assert.Equal(t, int64(7), cart.CustomerID)
}

func TestCart_TotalSumsSubtotals(t *testing.T) {
	cart := NewCart(1)
	cart.Add(line(1, 2, "10.00"))
	cart.Add(line(2, 1, "5.00"))

	assert.True(t, decimal.RequireFromString("25.00").Equal(cart.Total()))
	assert.True(t, decimal.Zero.Equal(NewCart(1).Total()))
}

func TestCart_RemoveDropsFirstMatchOnly(t *testing.T) {
	cart := NewCart(1)
	cart.Add(line(1, 2, "10.00"))
	cart.Add(line(2, 1, "5.00"))
	cart.Add(line(1, 3, "10.00"))

	require.True(t, cart.Remove(1))
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, int64(2), cart.Lines[0].MenuID)
	assert.Equal(t, 3, cart.Lines[1].Quantity)

	assert.False(t, cart.Remove(99))
	assert.Equal(t, 2, cart.Size())
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart(1)
	cart.Add(line(1, 1, "1.00"))
	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.NotNil(t, cart.Lines)
}
