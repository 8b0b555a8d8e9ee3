package services

import (
	"context"
	"errors"
	"testing"

	"foodie_express_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartService() (CartService, CartStore) {
	repo := &fakeMenuRepo{items: map[int64]*models.MenuItem{
		1: {ID: 1, Name: "Nasi Lemak", Price: decimal.RequireFromString("10.00"), Stock: 5},
		2: {ID: 2, Name: "Teh Tarik", Price: decimal.RequireFromString("5.00"), Stock: 0},
	}}
	store := NewMemoryCartStore(0)
	return NewCartService(repo, store), store
}

func TestCartService_AddItemSnapshotsCatalog(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, 7, AddCartItemRequest{MenuID: 1, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "Nasi Lemak", cart.Lines[0].Name)
	assert.True(t, decimal.RequireFromString("20.00").Equal(cart.Total()))

	cart, err = svc.AddItem(ctx, 7, AddCartItemRequest{MenuID: 1, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Size())
}

func TestCartService_AddItemRejects(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 7, AddCartItemRequest{MenuID: 1, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddItem(ctx, 7, AddCartItemRequest{MenuID: 99, Quantity: 1})
	assert.ErrorIs(t, err, ErrMenuItemNotFound)

	_, err = svc.AddItem(ctx, 7, AddCartItemRequest{MenuID: 1, Quantity: 6})
	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 6, stockErr.Required)

	_, err = svc.AddItem(ctx, 7, AddCartItemRequest{MenuID: 2, Quantity: 1})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	cart, err := svc.GetCart(ctx, 7)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_RemoveAndClear(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 7, AddCartItemRequest{MenuID: 1, Quantity: 1})
	require.NoError(t, err)

	_, err = svc.RemoveItem(ctx, 7, 2)
	assert.ErrorIs(t, err, ErrCartLineNotFound)

	cart, err := svc.RemoveItem(ctx, 7, 1)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	_, err = svc.AddItem(ctx, 7, AddCartItemRequest{MenuID: 1, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, svc.ClearCart(ctx, 7))
	cart, err = svc.GetCart(ctx, 7)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_CartsArePerCustomer(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 7, AddCartItemRequest{MenuID: 1, Quantity: 1})
	require.NoError(t, err)

	other, err := svc.GetCart(ctx, 8)
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}
