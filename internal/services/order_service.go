package services

import (
	"database/sql"
	"errors"
	"fmt"
	"iter"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/internal/repositories"
	"foodie_express_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// NoRiderAssigned is shown in history for orders without a rider.
const NoRiderAssigned = "Not Assigned"

// ListOrdersQuery carries the owner's order list filters.
type ListOrdersQuery struct {
	CustomerID *int64 `form:"customer_id"`
	Status     string `form:"status"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// --- OrderService Interface ---
type OrderService interface {
	CreateOrder(customerID int64, cart *models.Cart) (int64, error)
	OrderHistory(customerID int64) iter.Seq2[models.OrderHistoryEntry, error]
	GetOrderByID(orderID int64) (*models.Order, error)
	GetCustomerOrder(customerID, orderID int64) (*models.Order, error)
	ListOrders(query ListOrdersQuery) ([]models.Order, int, error)
}

// --- orderService Implementation ---
type orderService struct {
	orderRepo    repositories.OrderRepository
	menuRepo     repositories.MenuRepository
	movementRepo repositories.StockMovementRepository
	db           *sql.DB // For managing transactions
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	or repositories.OrderRepository,
	mr repositories.MenuRepository,
	smr repositories.StockMovementRepository,
	db *sql.DB,
) OrderService {
	return &orderService{
		orderRepo:    or,
		menuRepo:     mr,
		movementRepo: smr,
		db:           db,
	}
}

// CreateOrder turns the cart into an order in a single transaction. Every
// referenced menu row is locked, stock is re-validated, and each decrement
// is guarded so that stock never goes negative. On any failure nothing is
// persisted.
func (s *orderService) CreateOrder(customerID int64, cart *models.Cart) (int64, error) {
	if cart == nil || cart.IsEmpty() {
		return 0, ErrEmptyCart
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, storageError("starting order transaction", err)
	}
	defer tx.Rollback()

	remaining := make(map[int64]int, cart.Size())
	names := make(map[int64]string, cart.Size())
	for _, line := range cart.Lines {
		if line.Quantity <= 0 {
			return 0, ErrInvalidQuantity
		}
		if _, seen := remaining[line.MenuID]; !seen {
			item, err := s.menuRepo.GetItemForUpdate(tx, line.MenuID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return 0, fmt.Errorf("%w: id %d", ErrMenuItemNotFound, line.MenuID)
				}
				return 0, storageError("locking menu item", err)
			}
			remaining[line.MenuID] = item.Stock
			names[line.MenuID] = item.Name
		}
		if line.Quantity > remaining[line.MenuID] {
			return 0, &InsufficientStockError{
				MenuID:    line.MenuID,
				Name:      names[line.MenuID],
				Available: remaining[line.MenuID],
				Required:  line.Quantity,
			}
		}
	}

	order := &models.Order{CustomerID: customerID, Status: models.OrderStatusPending}
	orderID, err := s.orderRepo.CreateOrder(tx, order)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrCustomerNotFound
		}
		return 0, storageError("creating order", err)
	}

	for _, line := range cart.Lines {
		item := &models.OrderItem{OrderID: orderID, MenuID: line.MenuID, Quantity: line.Quantity}
		if _, err := s.orderRepo.CreateOrderItem(tx, item); err != nil {
			return 0, storageError("creating order item", err)
		}

		ok, err := s.menuRepo.DecrementStock(tx, line.MenuID, line.Quantity)
		if err != nil {
			return 0, storageError("decrementing stock", err)
		}
		if !ok {
			return 0, &InsufficientStockError{
				MenuID:    line.MenuID,
				Name:      names[line.MenuID],
				Available: remaining[line.MenuID],
				Required:  line.Quantity,
			}
		}
		remaining[line.MenuID] -= line.Quantity

		movement := &models.StockMovement{
			MenuID:          line.MenuID,
			OrderID:         &orderID,
			Kind:            models.StockMovementSale,
			QuantityChanged: -line.Quantity,
		}
		if _, err := s.movementRepo.CreateMovement(tx, movement); err != nil {
			return 0, storageError("recording stock movement", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, storageError("committing order", err)
	}

	utils.LogInfo("Order created", map[string]interface{}{
		"order_id": orderID, "customer_id": customerID, "lines": cart.Size(),
	})
	return orderID, nil
}

// OrderHistory yields the customer's orders newest first. Headers are read
// when iteration starts; items are loaded per entry as it is yielded. Each
// range over the sequence runs the queries again.
func (s *orderService) OrderHistory(customerID int64) iter.Seq2[models.OrderHistoryEntry, error] {
	return func(yield func(models.OrderHistoryEntry, error) bool) {
		orders, err := s.orderRepo.GetOrdersByCustomer(customerID)
		if err != nil {
			yield(models.OrderHistoryEntry{}, storageError("loading order history", err))
			return
		}
		for _, order := range orders {
			items, err := s.orderRepo.GetOrderItemsByOrderID(order.ID)
			if err != nil {
				yield(models.OrderHistoryEntry{}, storageError("loading order items", err))
				return
			}
			order.OrderItems = items
			entry := models.OrderHistoryEntry{
				Order: order,
				Rider: riderLabel(order.RiderName),
				Total: itemsTotal(items),
			}
			if !yield(entry, nil) {
				return
			}
		}
	}
}

func riderLabel(name *string) string {
	if name == nil || *name == "" {
		return NoRiderAssigned
	}
	return *name
}

func itemsTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (s *orderService) GetOrderByID(orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound, "getting order")
	}
	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return nil, storageError("getting order items", err)
	}
	order.OrderItems = items
	return order, nil
}

// GetCustomerOrder hides orders that belong to other customers behind
// ErrOrderNotFound.
func (s *orderService) GetCustomerOrder(customerID, orderID int64) (*models.Order, error) {
	order, err := s.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListOrders(query ListOrdersQuery) ([]models.Order, int, error) {
	filters := models.OrderFilters{CustomerID: query.CustomerID, Page: query.Page, PageSize: query.PageSize}
	if query.Status != "" {
		status := models.OrderStatus(query.Status)
		if !status.Valid() {
			return nil, 0, ErrInvalidStatus
		}
		filters.Status = &status
	}
	orders, total, err := s.orderRepo.GetOrders(filters)
	if err != nil {
		return nil, 0, storageError("listing orders", err)
	}
	return orders, total, nil
}
