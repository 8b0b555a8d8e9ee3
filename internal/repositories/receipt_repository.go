package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/pkg/utils"
)

// ReceiptRepository stores and reads receipt snapshots.
type ReceiptRepository interface {
	CreateReceipt(executor SQLExecutor, receipt *models.Receipt) (int64, error)
	GetReceiptByID(receiptID int64) (*models.Receipt, error)
	ListReceipts() ([]models.Receipt, error)
	SearchByCustomerName(name string) ([]models.Receipt, error)
}

type receiptRepository struct {
	db *sql.DB
}

// NewReceiptRepository creates a new instance of ReceiptRepository.
func NewReceiptRepository(db *sql.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

const receiptColumns = `rh.id, rh.order_id, rh.customer_id, cu.name, rh.method,
	rh.subtotal, rh.service_tax, rh.delivery_fee, rh.total, rh.content, rh.generated_at`

func scanReceipt(s scanner, rc *models.Receipt) error {
	var method string
	err := s.Scan(&rc.ID, &rc.OrderID, &rc.CustomerID, &rc.CustomerName, &method,
		&rc.Subtotal, &rc.ServiceTax, &rc.DeliveryFee, &rc.Total, &rc.Content, &rc.GeneratedAt)
	if err != nil {
		return err
	}
	rc.Method = models.PaymentMethod(method)
	return nil
}

func (r *receiptRepository) CreateReceipt(executor SQLExecutor, receipt *models.Receipt) (int64, error) {
	query := `INSERT INTO receipt_history
	            (order_id, customer_id, method, subtotal, service_tax, delivery_fee, total, content, generated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`
	if receipt.GeneratedAt.IsZero() {
		receipt.GeneratedAt = time.Now()
	}
	err := executor.QueryRow(query,
		receipt.OrderID, receipt.CustomerID, string(receipt.Method),
		receipt.Subtotal, receipt.ServiceTax, receipt.DeliveryFee, receipt.Total,
		receipt.Content, receipt.GeneratedAt,
	).Scan(&receipt.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: order %d or customer %d", ErrNotFound, receipt.OrderID, receipt.CustomerID)
		}
		return 0, fmt.Errorf("%w: creating receipt: %v", ErrDatabaseError, err)
	}
	return receipt.ID, nil
}

func (r *receiptRepository) GetReceiptByID(receiptID int64) (*models.Receipt, error) {
	rc := &models.Receipt{}
	query := `SELECT ` + receiptColumns + `
	          FROM receipt_history rh
	          JOIN customer cu ON cu.id = rh.customer_id
	          WHERE rh.id = $1`
	if err := scanReceipt(r.db.QueryRow(query, receiptID), rc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting receipt by ID %d: %v", ErrDatabaseError, receiptID, err)
	}
	return rc, nil
}

func (r *receiptRepository) queryReceipts(op, query string, args ...interface{}) ([]models.Receipt, error) {
	receipts := []models.Receipt{}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDatabaseError, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rc models.Receipt
		if err := scanReceipt(rows, &rc); err != nil {
			return nil, fmt.Errorf("%w: scanning receipt: %v", ErrDatabaseError, err)
		}
		receipts = append(receipts, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating receipts: %v", ErrDatabaseError, err)
	}
	return receipts, nil
}

func (r *receiptRepository) ListReceipts() ([]models.Receipt, error) {
	query := `SELECT ` + receiptColumns + `
	          FROM receipt_history rh
	          JOIN customer cu ON cu.id = rh.customer_id
	          ORDER BY rh.generated_at DESC, rh.id DESC`
	return r.queryReceipts("listing receipts", query)
}

func (r *receiptRepository) SearchByCustomerName(name string) ([]models.Receipt, error) {
	query := `SELECT ` + receiptColumns + `
	          FROM receipt_history rh
	          JOIN customer cu ON cu.id = rh.customer_id
	          WHERE cu.name ILIKE $1
	          ORDER BY rh.generated_at DESC, rh.id DESC`
	return r.queryReceipts("searching receipts", query, utils.LikePattern(name))
}
