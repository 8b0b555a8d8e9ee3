package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptBreakdown is the numeric part of a receipt.
type ReceiptBreakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ServiceTax  decimal.Decimal `json:"service_tax"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// Receipt is a write-once snapshot stored in receipt_history.
type Receipt struct {
	ID           int64         `json:"id" db:"id"`
	OrderID      int64         `json:"order_id" db:"order_id"`
	CustomerID   int64         `json:"customer_id" db:"customer_id"`
	CustomerName string        `json:"customer_name,omitempty"`
	Method       PaymentMethod `json:"method" db:"method"`
	ReceiptBreakdown
	Content     string      `json:"content" db:"content"`
	GeneratedAt time.Time   `json:"generated_at" db:"generated_at"`
	Items       []OrderItem `json:"items,omitempty"`
}
