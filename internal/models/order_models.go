package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the closed set of order states. Values match what is stored
// in orders.status.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "Pending"
	OrderStatusConfirmed      OrderStatus = "Confirmed"
	OrderStatusPreparing      OrderStatus = "Preparing"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusArrived        OrderStatus = "Arrived"
	OrderStatusCompleted      OrderStatus = "Completed"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusOutForDelivery, OrderStatusArrived, OrderStatusCompleted:
		return true
	}
	return false
}

// RiderSettable reports whether a rider may set s through a status update.
// Completion goes through its own operation.
func (s OrderStatus) RiderSettable() bool {
	switch s {
	case OrderStatusPreparing, OrderStatusOutForDelivery, OrderStatusArrived:
		return true
	}
	return false
}

// Order is the persisted order header.
type Order struct {
	ID           int64       `json:"id" db:"id"`
	CustomerID   int64       `json:"customer_id" db:"customer_id"`
	CustomerName string      `json:"customer_name,omitempty"`
	Status       OrderStatus `json:"status" db:"status"`
	DeliveryID   *int64      `json:"delivery_id,omitempty" db:"delivery_id"`
	RiderName    *string     `json:"rider_name,omitempty"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	OrderItems   []OrderItem `json:"order_items,omitempty"`
}

// OrderItem is one immutable row of an order. Name and UnitPrice are read
// from the live menu when the row is loaded.
type OrderItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"order_id" db:"order_id"`
	MenuID    int64           `json:"menu_id" db:"menu_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Name      string          `json:"name,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Subtotal is quantity x live unit price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderFilters defines the available filters for querying orders.
type OrderFilters struct {
	CustomerID *int64
	Status     *OrderStatus
	Page       int
	PageSize   int
}

// OrderHistoryEntry is one element of a customer's order history.
type OrderHistoryEntry struct {
	Order Order           `json:"order"`
	Rider string          `json:"rider"`
	Total decimal.Decimal `json:"total"`
}

// DeliveryOrder is an order as a rider sees it.
type DeliveryOrder struct {
	OrderID         int64       `json:"order_id"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	CustomerName    string      `json:"customer_name"`
	CustomerAddress string      `json:"customer_address,omitempty"`
}
