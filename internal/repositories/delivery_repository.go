package repositories

import (
	"database/sql"
	"fmt"

	"foodie_express_backend/internal/models"
)

// DeliveryRepository covers the rider's view of orders.
type DeliveryRepository interface {
	ListAvailable() ([]models.DeliveryOrder, error)
	AssignRider(executor SQLExecutor, orderID, riderID int64) error
	ListByRider(riderID int64, completed bool) ([]models.DeliveryOrder, error)
	UpdateStatusForRider(executor SQLExecutor, orderID, riderID int64, status models.OrderStatus) error
}

type deliveryRepository struct {
	db *sql.DB
}

// NewDeliveryRepository creates a new instance of DeliveryRepository.
func NewDeliveryRepository(db *sql.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) queryDeliveries(op, query string, args ...interface{}) ([]models.DeliveryOrder, error) {
	orders := []models.DeliveryOrder{}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDatabaseError, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var d models.DeliveryOrder
		var status string
		if err := rows.Scan(&d.OrderID, &status, &d.CreatedAt, &d.CustomerName, &d.CustomerAddress); err != nil {
			return nil, fmt.Errorf("%w: scanning delivery order: %v", ErrDatabaseError, err)
		}
		d.Status = models.OrderStatus(status)
		orders = append(orders, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating delivery orders: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

// ListAvailable returns unassigned orders that are still waiting for a rider.
func (r *deliveryRepository) ListAvailable() ([]models.DeliveryOrder, error) {
	query := `SELECT o.id, o.status, o.created_at, cu.name, cu.address
	          FROM orders o
	          JOIN customer cu ON cu.id = o.customer_id
	          WHERE o.status IN ($1, $2) AND o.delivery_id IS NULL
	          ORDER BY o.created_at ASC`
	return r.queryDeliveries("listing available orders", query,
		string(models.OrderStatusPending), string(models.OrderStatusConfirmed))
}

// AssignRider claims an unassigned order for riderID. ErrConflict means the
// order is missing or already taken.
func (r *deliveryRepository) AssignRider(executor SQLExecutor, orderID, riderID int64) error {
	query := `UPDATE orders
	          SET delivery_id = $1, status = $2
	          WHERE id = $3 AND delivery_id IS NULL`
	result, err := executor.Exec(query, riderID, string(models.OrderStatusOutForDelivery), orderID)
	if err != nil {
		return fmt.Errorf("%w: assigning rider %d to order %d: %v", ErrDatabaseError, riderID, orderID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking affected rows for rider assignment: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: order %d already taken or missing", ErrConflict, orderID)
	}
	return nil
}

// ListByRider returns the rider's active deliveries, or the completed ones
// when completed is true.
func (r *deliveryRepository) ListByRider(riderID int64, completed bool) ([]models.DeliveryOrder, error) {
	op := "="
	if !completed {
		op = "<>"
	}
	query := `SELECT o.id, o.status, o.created_at, cu.name, cu.address
	          FROM orders o
	          JOIN customer cu ON cu.id = o.customer_id
	          WHERE o.delivery_id = $1 AND o.status ` + op + ` $2
	          ORDER BY o.created_at DESC`
	return r.queryDeliveries("listing rider deliveries", query, riderID, string(models.OrderStatusCompleted))
}

// UpdateStatusForRider changes the status of an order assigned to riderID.
// ErrNotFound covers both a missing order and one assigned to someone else.
func (r *deliveryRepository) UpdateStatusForRider(executor SQLExecutor, orderID, riderID int64, status models.OrderStatus) error {
	result, err := executor.Exec(`UPDATE orders SET status = $1 WHERE id = $2 AND delivery_id = $3`,
		string(status), orderID, riderID)
	if err != nil {
		return fmt.Errorf("%w: updating delivery status for order %d: %v", ErrDatabaseError, orderID, err)
	}
	return expectOneRow(result, "updating delivery status")
}
