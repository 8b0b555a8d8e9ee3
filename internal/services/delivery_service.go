package services

import (
	"context"
	"database/sql"
	"errors"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/internal/repositories"
	"foodie_express_backend/pkg/utils"
)

// UpdateDeliveryStatusRequest DTO
type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// DeliveryService is the rider's workflow.
type DeliveryService interface {
	ListAvailableOrders() ([]models.DeliveryOrder, error)
	AcceptOrder(ctx context.Context, orderID, riderID int64) error
	ListMyDeliveries(riderID int64) ([]models.DeliveryOrder, error)
	UpdateDeliveryStatus(ctx context.Context, orderID, riderID int64, status string) error
	CompleteDelivery(ctx context.Context, orderID, riderID int64) error
	DeliveryHistory(riderID int64) ([]models.DeliveryOrder, error)
}

type deliveryService struct {
	deliveryRepo repositories.DeliveryRepository
	publisher    EventPublisher
	db           *sql.DB
}

// NewDeliveryService creates a new instance of DeliveryService.
func NewDeliveryService(dr repositories.DeliveryRepository, publisher EventPublisher, db *sql.DB) DeliveryService {
	return &deliveryService{deliveryRepo: dr, publisher: publisher, db: db}
}

func (s *deliveryService) ListAvailableOrders() ([]models.DeliveryOrder, error) {
	orders, err := s.deliveryRepo.ListAvailable()
	if err != nil {
		return nil, storageError("listing available orders", err)
	}
	return orders, nil
}

// AcceptOrder assigns an unassigned order to the rider and marks it Out for
// Delivery. Only one rider can win.
func (s *deliveryService) AcceptOrder(ctx context.Context, orderID, riderID int64) error {
	if err := s.deliveryRepo.AssignRider(s.db, orderID, riderID); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return ErrOrderUnavailable
		}
		return storageError("accepting order", err)
	}
	s.statusChanged(ctx, orderID, riderID, models.OrderStatusOutForDelivery)
	return nil
}

func (s *deliveryService) ListMyDeliveries(riderID int64) ([]models.DeliveryOrder, error) {
	orders, err := s.deliveryRepo.ListByRider(riderID, false)
	if err != nil {
		return nil, storageError("listing rider deliveries", err)
	}
	return orders, nil
}

// UpdateDeliveryStatus accepts Preparing, Out for Delivery and Arrived in
// any order.
func (s *deliveryService) UpdateDeliveryStatus(ctx context.Context, orderID, riderID int64, status string) error {
	next := models.OrderStatus(status)
	if !next.RiderSettable() {
		return ErrInvalidStatus
	}
	return s.setStatus(ctx, orderID, riderID, next)
}

func (s *deliveryService) CompleteDelivery(ctx context.Context, orderID, riderID int64) error {
	return s.setStatus(ctx, orderID, riderID, models.OrderStatusCompleted)
}

func (s *deliveryService) setStatus(ctx context.Context, orderID, riderID int64, status models.OrderStatus) error {
	if err := s.deliveryRepo.UpdateStatusForRider(s.db, orderID, riderID, status); err != nil {
		return mapNotFound(err, ErrOrderNotFound, "updating delivery status")
	}
	s.statusChanged(ctx, orderID, riderID, status)
	return nil
}

func (s *deliveryService) statusChanged(ctx context.Context, orderID, riderID int64, status models.OrderStatus) {
	utils.LogInfo("Delivery status changed", map[string]interface{}{
		"order_id": orderID, "rider_id": riderID, "status": string(status),
	})
	rider := riderID
	publishBestEffort(ctx, s.publisher, OrderEvent{
		Type:    EventOrderStatusChanged,
		OrderID: orderID,
		RiderID: &rider,
		Status:  status,
	})
}

func (s *deliveryService) DeliveryHistory(riderID int64) ([]models.DeliveryOrder, error) {
	orders, err := s.deliveryRepo.ListByRider(riderID, true)
	if err != nil {
		return nil, storageError("listing delivery history", err)
	}
	return orders, nil
}
