package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodie_express_backend/internal/models"
)

// OrderRepository defines the interface for order-related database operations.
type OrderRepository interface {
	// Order methods
	CreateOrder(executor SQLExecutor, order *models.Order) (int64, error)
	GetOrderByID(orderID int64) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error) // orders, total count, error
	GetOrdersByCustomer(customerID int64) ([]models.Order, error)
	UpdateOrderStatus(executor SQLExecutor, orderID int64, newStatus models.OrderStatus) error

	// OrderItem methods
	CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (int64, error)
	GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderHeaderColumns = `o.id, o.customer_id, o.status, o.delivery_id, o.created_at, cu.name, d.rider_name`

const orderHeaderFrom = `FROM orders o
	JOIN customer cu ON cu.id = o.customer_id
	LEFT JOIN delivery d ON d.id = o.delivery_id`

func scanOrderHeader(s scanner, o *models.Order, extra ...interface{}) error {
	var status string
	var deliveryID sql.NullInt64
	var riderName sql.NullString
	dest := []interface{}{&o.ID, &o.CustomerID, &status, &deliveryID, &o.CreatedAt, &o.CustomerName, &riderName}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	o.Status = models.OrderStatus(status)
	if deliveryID.Valid {
		id := deliveryID.Int64
		o.DeliveryID = &id
	}
	if riderName.Valid {
		name := riderName.String
		o.RiderName = &name
	}
	return nil
}

// --- Order Methods ---

func (r *orderRepository) CreateOrder(executor SQLExecutor, order *models.Order) (int64, error) {
	query := `INSERT INTO orders (customer_id, status, created_at)
	          VALUES ($1, $2, $3)
	          RETURNING id`

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}

	err := executor.QueryRow(query, order.CustomerID, string(order.Status), order.CreatedAt).Scan(&order.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: customer %d", ErrNotFound, order.CustomerID)
		}
		return 0, fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	return order.ID, nil
}

func (r *orderRepository) GetOrderByID(orderID int64) (*models.Order, error) {
	order := &models.Order{}
	query := `SELECT ` + orderHeaderColumns + ` ` + orderHeaderFrom + ` WHERE o.id = $1`
	if err := scanOrderHeader(r.db.QueryRow(query, orderID), order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order by ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return order, nil
}

func (r *orderRepository) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	orders := []models.Order{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + orderHeaderColumns + `, COUNT(*) OVER() AS total_count ` + orderHeaderFrom)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("o.customer_id = $%d", argCounter))
		args = append(args, *filters.CustomerID)
		argCounter++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", argCounter))
		args = append(args, string(*filters.Status))
		argCounter++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY o.created_at DESC, o.id DESC")

	limit, offset := pagination(filters.Page, filters.PageSize)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCounter, argCounter+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.Order
		if err := scanOrderHeader(rows, &o, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, totalCount, nil
}

// GetOrdersByCustomer returns every order header for a customer, newest first.
func (r *orderRepository) GetOrdersByCustomer(customerID int64) ([]models.Order, error) {
	orders := []models.Order{}
	query := `SELECT ` + orderHeaderColumns + ` ` + orderHeaderFrom + `
	          WHERE o.customer_id = $1
	          ORDER BY o.created_at DESC, o.id DESC`

	rows, err := r.db.Query(query, customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders for customer %d: %v", ErrDatabaseError, customerID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.Order
		if err := scanOrderHeader(rows, &o); err != nil {
			return nil, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(executor SQLExecutor, orderID int64, newStatus models.OrderStatus) error {
	result, err := executor.Exec(`UPDATE orders SET status = $1 WHERE id = $2`, string(newStatus), orderID)
	if err != nil {
		return fmt.Errorf("%w: updating order status for ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return expectOneRow(result, "updating order status")
}

// --- OrderItem Methods ---

func (r *orderRepository) CreateOrderItem(executor SQLExecutor, item *models.OrderItem) (int64, error) {
	query := `INSERT INTO order_item (order_id, menu_id, quantity)
	          VALUES ($1, $2, $3)
	          RETURNING id`
	err := executor.QueryRow(query, item.OrderID, item.MenuID, item.Quantity).Scan(&item.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: menu item %d", ErrNotFound, item.MenuID)
		}
		return 0, fmt.Errorf("%w: creating order item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

// GetOrderItemsByOrderID loads the items of an order with the current menu
// name and price.
func (r *orderRepository) GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	query := `SELECT oi.id, oi.order_id, oi.menu_id, oi.quantity, m.name, m.price
	          FROM order_item oi
	          JOIN menu m ON m.id = oi.menu_id
	          WHERE oi.order_id = $1
	          ORDER BY oi.id`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuID, &item.Quantity, &item.Name, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("%w: scanning order item for order ID %d: %v", ErrDatabaseError, orderID, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order item rows for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return items, nil
}
