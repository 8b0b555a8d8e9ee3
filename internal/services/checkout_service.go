package services

import (
	"context"
	"fmt"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/pkg/utils"
)

// CheckoutRequest is the body of POST /checkout.
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// CheckoutResult is what a successful checkout returns.
type CheckoutResult struct {
	OrderID int64           `json:"order_id"`
	Payment *models.Payment `json:"payment"`
	Receipt *models.Receipt `json:"receipt"`
}

// CheckoutService runs the place-order flow for a customer's cart.
type CheckoutService interface {
	Checkout(ctx context.Context, customerID int64, req CheckoutRequest, idempotencyKey string) (*CheckoutResult, error)
}

type checkoutService struct {
	carts     CartStore
	orders    OrderService
	payments  PaymentService
	receipts  ReceiptService
	guard     IdempotencyGuard
	publisher EventPublisher
}

// NewCheckoutService creates a new instance of CheckoutService.
func NewCheckoutService(
	carts CartStore,
	orders OrderService,
	payments PaymentService,
	receipts ReceiptService,
	guard IdempotencyGuard,
	publisher EventPublisher,
) CheckoutService {
	return &checkoutService{
		carts:     carts,
		orders:    orders,
		payments:  payments,
		receipts:  receipts,
		guard:     guard,
		publisher: publisher,
	}
}

func checkoutKey(customerID int64, key string) string {
	return fmt.Sprintf("checkout:%d:%s", customerID, key)
}

// Checkout creates the order, records a Pending payment for the cart total,
// generates the receipt and clears the cart. Once the order is committed it
// is kept even if a later step fails; that failure is reported as a
// *CheckoutIncompleteError carrying the order id.
func (s *checkoutService) Checkout(ctx context.Context, customerID int64, req CheckoutRequest, idempotencyKey string) (*CheckoutResult, error) {
	method, ok := models.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		return nil, ErrInvalidPaymentMethod
	}

	if idempotencyKey != "" && s.guard != nil {
		claimed, err := s.guard.Claim(ctx, checkoutKey(customerID, idempotencyKey))
		if err != nil {
			return nil, storageError("claiming idempotency key", err)
		}
		if !claimed {
			return nil, ErrDuplicateRequest
		}
	}

	cart, err := s.carts.Load(ctx, customerID)
	if err != nil {
		s.release(ctx, customerID, idempotencyKey)
		return nil, storageError("loading cart", err)
	}

	orderID, err := s.orders.CreateOrder(customerID, cart)
	if err != nil {
		s.release(ctx, customerID, idempotencyKey)
		return nil, err
	}

	// The stock is gone with the commit, so the cart must not be reused.
	if err := s.carts.Delete(ctx, customerID); err != nil {
		utils.LogWarn("Failed to clear cart after checkout", map[string]interface{}{
			"customer_id": customerID, "order_id": orderID, "error": err.Error(),
		})
	}

	total := cart.Total()
	payment, err := s.payments.CreatePayment(orderID, method, total)
	if err != nil {
		return nil, &CheckoutIncompleteError{OrderID: orderID, Stage: "payment", Err: err}
	}

	receipt, err := s.receipts.Generate(orderID, customerID, method, total)
	if err != nil {
		return nil, &CheckoutIncompleteError{OrderID: orderID, Stage: "receipt", Err: err}
	}

	publishBestEffort(ctx, s.publisher, OrderEvent{
		Type:       EventOrderCreated,
		OrderID:    orderID,
		CustomerID: customerID,
		Status:     models.OrderStatusPending,
		Total:      &receipt.Total,
		Items:      cart.Lines,
	})

	return &CheckoutResult{OrderID: orderID, Payment: payment, Receipt: receipt}, nil
}

func (s *checkoutService) release(ctx context.Context, customerID int64, key string) {
	if key == "" || s.guard == nil {
		return
	}
	if err := s.guard.Release(ctx, checkoutKey(customerID, key)); err != nil {
		utils.LogWarn("Failed to release idempotency key", map[string]interface{}{"error": err.Error()})
	}
}
