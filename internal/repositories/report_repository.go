package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"foodie_express_backend/internal/models"

	"github.com/shopspring/decimal"
)

// ReportRepository runs the owner analytics queries.
type ReportRepository interface {
	CategorySales() ([]models.CategorySales, error)
	PaymentTotalBetween(from, to time.Time) (decimal.Decimal, error)
	InventoryValue() (decimal.Decimal, error)
	OrdersPerHour() ([]models.PeakHour, error)
	TopSelling(limit int) ([]models.TopSellingItem, error)
	SalesDetails() ([]models.SalesDetail, error)
}

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

// CategorySales sums quantity and value sold per category, valued at the
// current menu price.
func (r *reportRepository) CategorySales() ([]models.CategorySales, error) {
	query := `SELECT c.id, c.name,
	                 COALESCE(SUM(oi.quantity), 0) AS total_quantity,
	                 COALESCE(SUM(oi.quantity * m.price), 0) AS total_sales
	          FROM category c
	          JOIN menu m ON m.category_id = c.id
	          JOIN order_item oi ON oi.menu_id = m.id
	          GROUP BY c.id, c.name
	          ORDER BY total_sales DESC`

	result := []models.CategorySales{}
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying category sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var cs models.CategorySales
		if err := rows.Scan(&cs.CategoryID, &cs.CategoryName, &cs.TotalQuantity, &cs.TotalSales); err != nil {
			return nil, fmt.Errorf("%w: scanning category sales: %v", ErrDatabaseError, err)
		}
		result = append(result, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating category sales: %v", ErrDatabaseError, err)
	}
	return result, nil
}

// PaymentTotalBetween sums payments whose payment date falls in [from, to).
func (r *reportRepository) PaymentTotalBetween(from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM payment WHERE payment_date >= $1 AND payment_date < $2`
	if err := r.db.QueryRow(query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("%w: summing payments: %v", ErrDatabaseError, err)
	}
	return total, nil
}

func (r *reportRepository) InventoryValue() (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.QueryRow(`SELECT COALESCE(SUM(stock * price), 0) FROM menu`).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("%w: summing inventory value: %v", ErrDatabaseError, err)
	}
	return total, nil
}

func (r *reportRepository) OrdersPerHour() ([]models.PeakHour, error) {
	query := `SELECT EXTRACT(HOUR FROM created_at)::int AS hour, COUNT(*) AS orders
	          FROM orders
	          GROUP BY hour
	          ORDER BY orders DESC, hour ASC`

	hours := []models.PeakHour{}
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying peak hours: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var h models.PeakHour
		if err := rows.Scan(&h.Hour, &h.Orders); err != nil {
			return nil, fmt.Errorf("%w: scanning peak hour: %v", ErrDatabaseError, err)
		}
		hours = append(hours, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating peak hours: %v", ErrDatabaseError, err)
	}
	return hours, nil
}

func (r *reportRepository) TopSelling(limit int) ([]models.TopSellingItem, error) {
	query := `SELECT m.id, m.name,
	                 COUNT(DISTINCT oi.order_id) AS times_ordered,
	                 SUM(oi.quantity) AS total_sold,
	                 SUM(oi.quantity * m.price) AS revenue
	          FROM order_item oi
	          JOIN menu m ON m.id = oi.menu_id
	          GROUP BY m.id, m.name
	          ORDER BY total_sold DESC, revenue DESC
	          LIMIT $1`

	items := []models.TopSellingItem{}
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying top selling items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	rank := 0
	for rows.Next() {
		var it models.TopSellingItem
		if err := rows.Scan(&it.MenuID, &it.MenuName, &it.TimesOrdered, &it.TotalSold, &it.Revenue); err != nil {
			return nil, fmt.Errorf("%w: scanning top selling item: %v", ErrDatabaseError, err)
		}
		rank++
		it.Rank = rank
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating top selling items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *reportRepository) SalesDetails() ([]models.SalesDetail, error) {
	query := `SELECT p.id, cu.name, p.amount
	          FROM payment p
	          JOIN orders o ON o.id = p.order_id
	          JOIN customer cu ON cu.id = o.customer_id
	          ORDER BY p.id`

	details := []models.SalesDetail{}
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sales details: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var d models.SalesDetail
		if err := rows.Scan(&d.PaymentID, &d.CustomerName, &d.Amount); err != nil {
			return nil, fmt.Errorf("%w: scanning sales detail: %v", ErrDatabaseError, err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sales details: %v", ErrDatabaseError, err)
	}
	return details, nil
}
