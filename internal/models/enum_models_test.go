package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusOutForDelivery, OrderStatusArrived, OrderStatusCompleted,
	} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("Cancelled").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatus_RiderSettable(t *testing.T) {
	assert.True(t, OrderStatusPreparing.RiderSettable())
	assert.True(t, OrderStatusOutForDelivery.RiderSettable())
	assert.True(t, OrderStatusArrived.RiderSettable())

	assert.False(t, OrderStatusPending.RiderSettable())
	assert.False(t, OrderStatusConfirmed.RiderSettable())
	assert.False(t, OrderStatusCompleted.RiderSettable())
}

func TestParsePaymentMethod(t *testing.T) {
	m, ok := ParsePaymentMethod(" e-wallet ")
	assert.True(t, ok)
	assert.Equal(t, PaymentMethodEWallet, m)

	m, ok = ParsePaymentMethod("ONLINE BANKING")
	assert.True(t, ok)
	assert.Equal(t, PaymentMethodOnlineBanking, m)

	_, ok = ParsePaymentMethod("Bitcoin")
	assert.False(t, ok)
}

func TestPaymentStatus(t *testing.T) {
	st, ok := ParsePaymentStatus("paid")
	assert.True(t, ok)
	assert.Equal(t, PaymentStatusPaid, st)

	_, ok = ParsePaymentStatus("refunded")
	assert.False(t, ok)

	assert.True(t, PaymentStatusPaid.Settled())
	assert.True(t, PaymentStatusCompleted.Settled())
	assert.False(t, PaymentStatusPending.Settled())
}

func TestMenuItem_InStock(t *testing.T) {
	item := MenuItem{Stock: 3}
	assert.True(t, item.InStock(3))
	assert.False(t, item.InStock(4))
}
