package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups menu items (e.g. "Rice", "Drinks").
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name" binding:"required"`
}

// MenuItem is a sellable dish with its live stock level.
type MenuItem struct {
	ID           int64           `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Description  string          `json:"description" db:"description"`
	Stock        int             `json:"stock" db:"stock"`
	CategoryID   int64           `json:"category_id" db:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
}

// InStock reports whether at least quantity units are available.
func (m MenuItem) InStock(quantity int) bool {
	return m.Stock >= quantity
}

// StockMovementKind distinguishes why a stock level changed.
type StockMovementKind string

const (
	StockMovementSale       StockMovementKind = "sale"
	StockMovementAdjustment StockMovementKind = "adjustment"
)

// StockMovement is one audit row for a stock change. QuantityChanged is
// negative for sales.
type StockMovement struct {
	ID              int64             `json:"id" db:"id"`
	MenuID          int64             `json:"menu_id" db:"menu_id"`
	MenuName        string            `json:"menu_name,omitempty"`
	OrderID         *int64            `json:"order_id,omitempty" db:"order_id"`
	Kind            StockMovementKind `json:"kind" db:"kind"`
	QuantityChanged int               `json:"quantity_changed" db:"quantity_changed"`
	Reason          *string           `json:"reason,omitempty" db:"reason"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
}
