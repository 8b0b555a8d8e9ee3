package services

import (
	"context"
	"errors"
	"sync"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []OrderEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Events() []OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]OrderEvent(nil), p.events...)
}

// fakeMenuRepo only implements the lookups the cart needs.
type fakeMenuRepo struct {
	repositories.MenuRepository
	items map[int64]*models.MenuItem
	err   error
}

func (r *fakeMenuRepo) GetItemByID(id int64) (*models.MenuItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	item, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

type fakeOrderService struct {
	OrderService
	orderID int64
	err     error
	calls   int
}

func (s *fakeOrderService) CreateOrder(_ int64, cart *models.Cart) (int64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	if cart.IsEmpty() {
		return 0, ErrEmptyCart
	}
	return s.orderID, nil
}

type fakePaymentService struct {
	PaymentService
	err     error
	created []decimal.Decimal
}

func (s *fakePaymentService) CreatePayment(orderID int64, method models.PaymentMethod, amount decimal.Decimal) (*models.Payment, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, amount)
	return &models.Payment{ID: 1, OrderID: orderID, Method: method, Amount: amount, Status: models.PaymentStatusPending}, nil
}

type fakeReceiptService struct {
	ReceiptService
	err error
}

func (s *fakeReceiptService) Generate(orderID, customerID int64, method models.PaymentMethod, _ decimal.Decimal) (*models.Receipt, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Receipt{ID: 9, OrderID: orderID, CustomerID: customerID, Method: method,
		ReceiptBreakdown: models.ReceiptBreakdown{Total: decimal.RequireFromString("31.50")}}, nil
}

type fakeDeliveryRepo struct {
	repositories.DeliveryRepository
	assignErr error
	updateErr error
	updated   []models.OrderStatus
}

func (r *fakeDeliveryRepo) AssignRider(_ repositories.SQLExecutor, _, _ int64) error {
	return r.assignErr
}

func (r *fakeDeliveryRepo) UpdateStatusForRider(_ repositories.SQLExecutor, _, _ int64, status models.OrderStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = append(r.updated, status)
	return nil
}

type failingCartStore struct {
	CartStore
}

func (failingCartStore) Load(context.Context, int64) (*models.Cart, error) {
	return nil, errors.New("connection refused")
}
