package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentMethodCash          PaymentMethod = "Cash"
	PaymentMethodOnlineBanking PaymentMethod = "Online Banking"
	PaymentMethodCreditCard    PaymentMethod = "Credit Card"
	PaymentMethodEWallet       PaymentMethod = "E-Wallet"
)

// PaymentMethods lists the supported methods in menu order.
var PaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodOnlineBanking,
	PaymentMethodCreditCard,
	PaymentMethodEWallet,
}

// ParsePaymentMethod matches case-insensitively against the known methods.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	for _, m := range PaymentMethods {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, true
		}
	}
	return "", false
}

// PaymentStatus is the state of a payment row.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusPaid      PaymentStatus = "Paid"
	PaymentStatusCompleted PaymentStatus = "Completed"
)

// ParsePaymentStatus matches case-insensitively against the known statuses.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	for _, st := range []PaymentStatus{PaymentStatusPending, PaymentStatusPaid, PaymentStatusCompleted} {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}

// Settled reports whether the payment counts as received.
func (s PaymentStatus) Settled() bool {
	return s == PaymentStatusPaid || s == PaymentStatusCompleted
}

// Payment is one payment transaction against an order.
type Payment struct {
	ID          int64           `json:"id" db:"id"`
	OrderID     int64           `json:"order_id" db:"order_id"`
	Method      PaymentMethod   `json:"method" db:"method"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Status      PaymentStatus   `json:"status" db:"status"`
	PaymentDate *time.Time      `json:"payment_date,omitempty" db:"payment_date"`
}
