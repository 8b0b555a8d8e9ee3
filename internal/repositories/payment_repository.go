package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"foodie_express_backend/internal/models"
)

// PaymentRepository defines the interface for payment-related database operations.
type PaymentRepository interface {
	CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error)
	GetPaymentByID(paymentID int64) (*models.Payment, error)
	GetPaymentByOrderID(orderID int64) (*models.Payment, error)
	UpdatePaymentStatus(executor SQLExecutor, paymentID int64, status models.PaymentStatus, paidAt time.Time) (int64, error)
}

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func scanPayment(s scanner, p *models.Payment) error {
	var method, status string
	var paymentDate sql.NullTime
	if err := s.Scan(&p.ID, &p.OrderID, &method, &p.Amount, &status, &paymentDate); err != nil {
		return err
	}
	p.Method = models.PaymentMethod(method)
	p.Status = models.PaymentStatus(status)
	if paymentDate.Valid {
		t := paymentDate.Time
		p.PaymentDate = &t
	}
	return nil
}

func (r *paymentRepository) CreatePayment(executor SQLExecutor, payment *models.Payment) (int64, error) {
	query := `INSERT INTO payment (order_id, method, amount, status)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}
	err := executor.QueryRow(query,
		payment.OrderID, string(payment.Method), payment.Amount, string(payment.Status),
	).Scan(&payment.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: order %d", ErrNotFound, payment.OrderID)
		}
		return 0, fmt.Errorf("%w: creating payment: %v", ErrDatabaseError, err)
	}
	return payment.ID, nil
}

func (r *paymentRepository) GetPaymentByID(paymentID int64) (*models.Payment, error) {
	p := &models.Payment{}
	query := `SELECT id, order_id, method, amount, status, payment_date FROM payment WHERE id = $1`
	if err := scanPayment(r.db.QueryRow(query, paymentID), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting payment by ID %d: %v", ErrDatabaseError, paymentID, err)
	}
	return p, nil
}

// GetPaymentByOrderID returns the most recent payment recorded for an order.
func (r *paymentRepository) GetPaymentByOrderID(orderID int64) (*models.Payment, error) {
	p := &models.Payment{}
	query := `SELECT id, order_id, method, amount, status, payment_date
	          FROM payment
	          WHERE order_id = $1
	          ORDER BY id DESC
	          LIMIT 1`
	if err := scanPayment(r.db.QueryRow(query, orderID), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting payment for order %d: %v", ErrDatabaseError, orderID, err)
	}
	return p, nil
}

// UpdatePaymentStatus sets the status and payment date and returns the id of
// the order the payment belongs to.
func (r *paymentRepository) UpdatePaymentStatus(executor SQLExecutor, paymentID int64, status models.PaymentStatus, paidAt time.Time) (int64, error) {
	query := `UPDATE payment SET status = $1, payment_date = $2 WHERE id = $3 RETURNING order_id`
	var orderID int64
	if err := executor.QueryRow(query, string(status), paidAt, paymentID).Scan(&orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: updating payment %d: %v", ErrDatabaseError, paymentID, err)
	}
	return orderID, nil
}
