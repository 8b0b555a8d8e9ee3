package services

import (
	"context"
	"fmt"
	"testing"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryService_AcceptOrder(t *testing.T) {
	repo := &fakeDeliveryRepo{}
	publisher := &recordingPublisher{}
	svc := NewDeliveryService(repo, publisher, nil)

	require.NoError(t, svc.AcceptOrder(context.Background(), 42, 3))
	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, models.OrderStatusOutForDelivery, events[0].Status)
	require.NotNil(t, events[0].RiderID)
	assert.Equal(t, int64(3), *events[0].RiderID)

	repo.assignErr = fmt.Errorf("%w: taken", repositories.ErrConflict)
	err := svc.AcceptOrder(context.Background(), 42, 4)
	assert.ErrorIs(t, err, ErrOrderUnavailable)
	assert.Len(t, publisher.Events(), 1)
}

func TestDeliveryService_UpdateDeliveryStatus(t *testing.T) {
	repo := &fakeDeliveryRepo{}
	svc := NewDeliveryService(repo, &recordingPublisher{}, nil)
	ctx := context.Background()

	require.NoError(t, svc.UpdateDeliveryStatus(ctx, 42, 3, "Arrived"))
	require.NoError(t, svc.UpdateDeliveryStatus(ctx, 42, 3, "Preparing"))

	for _, status := range []string{"Completed", "Pending", "Confirmed", "Lost"} {
		assert.ErrorIs(t, svc.UpdateDeliveryStatus(ctx, 42, 3, status), ErrInvalidStatus, status)
	}

	require.NoError(t, svc.CompleteDelivery(ctx, 42, 3))
	assert.Equal(t, []models.OrderStatus{
		models.OrderStatusArrived, models.OrderStatusPreparing, models.OrderStatusCompleted,
	}, repo.updated)
}

func TestDeliveryService_UpdateOtherRidersOrder(t *testing.T) {
	repo := &fakeDeliveryRepo{updateErr: repositories.ErrNotFound}
	svc := NewDeliveryService(repo, &recordingPublisher{}, nil)

	err := svc.CompleteDelivery(context.Background(), 42, 9)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
