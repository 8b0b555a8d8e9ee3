package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"foodie_express_backend/internal/models"
)

// StockMovementRepository records and lists stock changes.
type StockMovementRepository interface {
	CreateMovement(executor SQLExecutor, movement *models.StockMovement) (int64, error)
	GetMovements(menuID *int64, page, pageSize int) ([]models.StockMovement, int, error)
}

type stockMovementRepository struct {
	db *sql.DB
}

// NewStockMovementRepository creates a new instance of StockMovementRepository.
func NewStockMovementRepository(db *sql.DB) StockMovementRepository {
	return &stockMovementRepository{db: db}
}

func (r *stockMovementRepository) CreateMovement(executor SQLExecutor, movement *models.StockMovement) (int64, error) {
	query := `INSERT INTO stock_movement (menu_id, order_id, kind, quantity_changed, reason, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now()
	}

	var orderID sql.NullInt64
	if movement.OrderID != nil {
		orderID = sql.NullInt64{Int64: *movement.OrderID, Valid: true}
	}
	var reason sql.NullString
	if movement.Reason != nil {
		reason = sql.NullString{String: *movement.Reason, Valid: true}
	}

	err := executor.QueryRow(query,
		movement.MenuID, orderID, string(movement.Kind), movement.QuantityChanged, reason, movement.CreatedAt,
	).Scan(&movement.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating stock movement: %v", ErrDatabaseError, err)
	}
	return movement.ID, nil
}

func (r *stockMovementRepository) GetMovements(menuID *int64, page, pageSize int) ([]models.StockMovement, int, error) {
	movements := []models.StockMovement{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
	    sm.id, sm.menu_id, sm.order_id, sm.kind, sm.quantity_changed, sm.reason, sm.created_at,
	    m.name,
	    COUNT(*) OVER() AS total_count
	  FROM stock_movement sm
	  JOIN menu m ON m.id = sm.menu_id`)

	var args []interface{}
	argCount := 1
	if menuID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE sm.menu_id = $%d", argCount))
		args = append(args, *menuID)
		argCount++
	}

	limit, offset := pagination(page, pageSize)
	queryBuilder.WriteString(" ORDER BY sm.created_at DESC, sm.id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting stock movements: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.StockMovement
		var orderID sql.NullInt64
		var reason sql.NullString
		var kind string
		if err := rows.Scan(
			&m.ID, &m.MenuID, &orderID, &kind, &m.QuantityChanged, &reason, &m.CreatedAt,
			&m.MenuName, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning stock movement: %v", ErrDatabaseError, err)
		}
		m.Kind = models.StockMovementKind(kind)
		if orderID.Valid {
			id := orderID.Int64
			m.OrderID = &id
		}
		if reason.Valid {
			s := reason.String
			m.Reason = &s
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating stock movements: %v", ErrDatabaseError, err)
	}
	return movements, totalCount, nil
}
