package services

import (
	"context"
	"database/sql"
	"time"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/internal/repositories"
	"foodie_express_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// ProcessPaymentRequest is the owner's payment status update.
type ProcessPaymentRequest struct {
	Status string `json:"status" binding:"required"`
}

// PaymentService records and settles payments.
type PaymentService interface {
	CreatePayment(orderID int64, method models.PaymentMethod, amount decimal.Decimal) (*models.Payment, error)
	ProcessPayment(ctx context.Context, paymentID int64, status models.PaymentStatus) (*models.Payment, error)
	GetPaymentByOrder(orderID int64) (*models.Payment, error)
	GetCustomerPaymentByOrder(customerID, orderID int64) (*models.Payment, error)
	PaymentMethods() []models.PaymentMethod
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	orderRepo   repositories.OrderRepository
	publisher   EventPublisher
	db          *sql.DB
	now         func() time.Time
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(
	pr repositories.PaymentRepository,
	or repositories.OrderRepository,
	publisher EventPublisher,
	db *sql.DB,
) PaymentService {
	return &paymentService{paymentRepo: pr, orderRepo: or, publisher: publisher, db: db, now: time.Now}
}

// CreatePayment inserts a Pending payment. The amount is stored as given and
// is not compared with the order total.
func (s *paymentService) CreatePayment(orderID int64, method models.PaymentMethod, amount decimal.Decimal) (*models.Payment, error) {
	if _, ok := models.ParsePaymentMethod(string(method)); !ok {
		return nil, ErrInvalidPaymentMethod
	}
	payment := &models.Payment{
		OrderID: orderID,
		Method:  method,
		Amount:  amount,
		Status:  models.PaymentStatusPending,
	}
	if _, err := s.paymentRepo.CreatePayment(s.db, payment); err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound, "creating payment")
	}
	return payment, nil
}

// ProcessPayment sets the status and payment date. A settled payment moves
// its order to Confirmed in the same transaction.
func (s *paymentService) ProcessPayment(ctx context.Context, paymentID int64, status models.PaymentStatus) (*models.Payment, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, storageError("starting payment transaction", err)
	}
	defer tx.Rollback()

	orderID, err := s.paymentRepo.UpdatePaymentStatus(tx, paymentID, status, s.now())
	if err != nil {
		return nil, mapNotFound(err, ErrPaymentNotFound, "updating payment")
	}
	if status.Settled() {
		if err := s.orderRepo.UpdateOrderStatus(tx, orderID, models.OrderStatusConfirmed); err != nil {
			return nil, mapNotFound(err, ErrOrderNotFound, "confirming order")
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, storageError("committing payment", err)
	}

	payment, err := s.paymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		return nil, mapNotFound(err, ErrPaymentNotFound, "reloading payment")
	}

	event := OrderEvent{Type: EventOrderPaymentProcessed, OrderID: orderID, Total: &payment.Amount}
	if status.Settled() {
		event.Status = models.OrderStatusConfirmed
	}
	publishBestEffort(ctx, s.publisher, event)

	utils.LogInfo("Payment processed", map[string]interface{}{
		"payment_id": paymentID, "order_id": orderID, "status": string(status),
	})
	return payment, nil
}

func (s *paymentService) GetPaymentByOrder(orderID int64) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetPaymentByOrderID(orderID)
	if err != nil {
		return nil, mapNotFound(err, ErrPaymentNotFound, "getting payment")
	}
	return payment, nil
}

func (s *paymentService) GetCustomerPaymentByOrder(customerID, orderID int64) (*models.Payment, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound, "getting order")
	}
	if order.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}
	return s.GetPaymentByOrder(orderID)
}

func (s *paymentService) PaymentMethods() []models.PaymentMethod {
	methods := make([]models.PaymentMethod, len(models.PaymentMethods))
	copy(methods, models.PaymentMethods)
	return methods
}

