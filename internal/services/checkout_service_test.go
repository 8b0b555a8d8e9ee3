package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodie_express_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	svc       CheckoutService
	store     CartStore
	orders    *fakeOrderService
	payments  *fakePaymentService
	receipts  *fakeReceiptService
	publisher *recordingPublisher
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{
		store:     NewMemoryCartStore(0),
		orders:    &fakeOrderService{orderID: 42},
		payments:  &fakePaymentService{},
		receipts:  &fakeReceiptService{},
		publisher: &recordingPublisher{},
	}
	f.svc = NewCheckoutService(f.store, f.orders, f.payments, f.receipts, NewMemoryIdempotencyGuard(time.Hour), f.publisher)

	cart := models.NewCart(7)
	cart.Add(models.CartLine{MenuID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")})
	cart.Add(models.CartLine{MenuID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")})
	require.NoError(t, f.store.Save(context.Background(), cart))
	return f
}

func TestCheckout_Success(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	result, err := f.svc.Checkout(ctx, 7, CheckoutRequest{PaymentMethod: "cash"}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(42), result.OrderID)
	assert.Equal(t, models.PaymentMethodCash, result.Payment.Method)
	require.Len(t, f.payments.created, 1)
	assert.True(t, decimal.RequireFromString("25.00").Equal(f.payments.created[0]))

	cart, err := f.store.Load(ctx, 7)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	events := f.publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventOrderCreated, events[0].Type)
	assert.Equal(t, int64(42), events[0].OrderID)
	assert.Len(t, events[0].Items, 2)
}

func TestCheckout_InvalidPaymentMethod(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.Checkout(context.Background(), 7, CheckoutRequest{PaymentMethod: "Bitcoin"}, "")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
	assert.Zero(t, f.orders.calls)
}

func TestCheckout_DuplicateIdempotencyKey(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.svc.Checkout(ctx, 7, CheckoutRequest{PaymentMethod: "Cash"}, "abc")
	require.NoError(t, err)

	_, err = f.svc.Checkout(ctx, 7, CheckoutRequest{PaymentMethod: "Cash"}, "abc")
	assert.ErrorIs(t, err, ErrDuplicateRequest)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, f.orders.calls)
}

func TestCheckout_FailedOrderReleasesKeyAndKeepsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.orders.err = &InsufficientStockError{MenuID: 1, Available: 1, Required: 2}

	_, err := f.svc.Checkout(ctx, 7, CheckoutRequest{PaymentMethod: "Cash"}, "abc")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	cart, err := f.store.Load(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Size())

	f.orders.err = nil
	_, err = f.svc.Checkout(ctx, 7, CheckoutRequest{PaymentMethod: "Cash"}, "abc")
	assert.NoError(t, err)
}

func TestCheckout_PaymentFailureIsIncomplete(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.payments.err = errors.New("payment table locked")

	_, err := f.svc.Checkout(ctx, 7, CheckoutRequest{PaymentMethod: "Cash"}, "")
	var incomplete *CheckoutIncompleteError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, int64(42), incomplete.OrderID)
	assert.Equal(t, "payment", incomplete.Stage)

	cart, err := f.store.Load(ctx, 7)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Empty(t, f.publisher.Events())
}

func TestCheckout_ReceiptFailureIsIncomplete(t *testing.T) {
	f := newCheckoutFixture(t)
	f.receipts.err = ErrCustomerNotFound

	_, err := f.svc.Checkout(context.Background(), 7, CheckoutRequest{PaymentMethod: "Cash"}, "")
	var incomplete *CheckoutIncompleteError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, "receipt", incomplete.Stage)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCheckout_CartStoreFailure(t *testing.T) {
	f := newCheckoutFixture(t)
	svc := NewCheckoutService(failingCartStore{}, f.orders, f.payments, f.receipts, nil, f.publisher)

	_, err := svc.Checkout(context.Background(), 7, CheckoutRequest{PaymentMethod: "Cash"}, "abc")
	assert.ErrorIs(t, err, ErrStorage)
	assert.Zero(t, f.orders.calls)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	require.NoError(t, f.store.Delete(context.Background(), 7))

	_, err := f.svc.Checkout(context.Background(), 7, CheckoutRequest{PaymentMethod: "Cash"}, "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}
