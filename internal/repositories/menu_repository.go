package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/pkg/utils"
)

// MenuRepository defines the interface for catalog database operations.
type MenuRepository interface {
	// Category methods
	ListCategories() ([]models.Category, error)
	GetCategoryByID(id int64) (*models.Category, error)
	CreateCategory(executor SQLExecutor, category *models.Category) (int64, error)
	UpdateCategory(executor SQLExecutor, category *models.Category) error
	DeleteCategory(executor SQLExecutor, id int64) error

	// MenuItem methods
	ListItems() ([]models.MenuItem, error)
	SearchItems(keyword string) ([]models.MenuItem, error)
	GetItemByID(id int64) (*models.MenuItem, error)
	GetItemForUpdate(executor SQLExecutor, id int64) (*models.MenuItem, error)
	CreateItem(executor SQLExecutor, item *models.MenuItem) (int64, error)
	UpdateItem(executor SQLExecutor, item *models.MenuItem) error
	DeleteItem(executor SQLExecutor, id int64) error
	UpdateStock(executor SQLExecutor, id int64, stock int) error
	DecrementStock(executor SQLExecutor, id int64, quantity int) (bool, error)
	LowStock(threshold int) ([]models.MenuItem, error)
}

type menuRepository struct {
	db *sql.DB
}

// NewMenuRepository creates a new instance of MenuRepository.
func NewMenuRepository(db *sql.DB) MenuRepository {
	return &menuRepository{db: db}
}

const menuItemColumns = `m.id, m.name, m.price, m.description, m.stock, m.category_id, c.name`

func scanMenuItem(s scanner, item *models.MenuItem) error {
	return s.Scan(&item.ID, &item.Name, &item.Price, &item.Description, &item.Stock, &item.CategoryID, &item.CategoryName)
}

func (r *menuRepository) queryItems(op, query string, args ...interface{}) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDatabaseError, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.MenuItem
		if err := scanMenuItem(rows, &item); err != nil {
			return nil, fmt.Errorf("%w: scanning menu item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating menu items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

// --- Category Methods ---

func (r *menuRepository) ListCategories() ([]models.Category, error) {
	categories := []models.Category{}
	rows, err := r.db.Query(`SELECT id, name FROM category ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%w: scanning category: %v", ErrDatabaseError, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating categories: %v", ErrDatabaseError, err)
	}
	return categories, nil
}

func (r *menuRepository) GetCategoryByID(id int64) (*models.Category, error) {
	c := &models.Category{}
	err := r.db.QueryRow(`SELECT id, name FROM category WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting category by ID %d: %v", ErrDatabaseError, id, err)
	}
	return c, nil
}

func (r *menuRepository) CreateCategory(executor SQLExecutor, category *models.Category) (int64, error) {
	err := executor.QueryRow(`INSERT INTO category (name) VALUES ($1) RETURNING id`, category.Name).Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: category %q", ErrDuplicateKey, category.Name)
		}
		return 0, fmt.Errorf("%w: creating category: %v", ErrDatabaseError, err)
	}
	return category.ID, nil
}

func (r *menuRepository) UpdateCategory(executor SQLExecutor, category *models.Category) error {
	result, err := executor.Exec(`UPDATE category SET name = $1 WHERE id = $2`, category.Name, category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category %q", ErrDuplicateKey, category.Name)
		}
		return fmt.Errorf("%w: updating category %d: %v", ErrDatabaseError, category.ID, err)
	}
	return expectOneRow(result, "updating category")
}

func (r *menuRepository) DeleteCategory(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM category WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: category %d still has menu items", ErrConflict, id)
		}
		return fmt.Errorf("%w: deleting category %d: %v", ErrDatabaseError, id, err)
	}
	return expectOneRow(result, "deleting category")
}

// --- MenuItem Methods ---

func (r *menuRepository) ListItems() ([]models.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + `
	          FROM menu m
	          JOIN category c ON c.id = m.category_id
	          ORDER BY c.name, m.name`
	return r.queryItems("listing menu items", query)
}

// SearchItems matches item names case-insensitively; LIKE wildcards in the
// keyword are matched literally.
func (r *menuRepository) SearchItems(keyword string) ([]models.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + `
	          FROM menu m
	          JOIN category c ON c.id = m.category_id
	          WHERE m.name ILIKE $1
	          ORDER BY c.name, m.name`
	return r.queryItems("searching menu items", query, utils.LikePattern(keyword))
}

func (r *menuRepository) GetItemByID(id int64) (*models.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + `
	          FROM menu m
	          JOIN category c ON c.id = m.category_id
	          WHERE m.id = $1`
	item := &models.MenuItem{}
	if err := scanMenuItem(r.db.QueryRow(query, id), item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting menu item by ID %d: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

// GetItemForUpdate reads an item and locks its row until the surrounding
// transaction ends. The category name is not loaded.
func (r *menuRepository) GetItemForUpdate(executor SQLExecutor, id int64) (*models.MenuItem, error) {
	query := `SELECT id, name, price, description, stock, category_id
	          FROM menu
	          WHERE id = $1
	          FOR UPDATE`
	item := &models.MenuItem{}
	err := executor.QueryRow(query, id).Scan(
		&item.ID, &item.Name, &item.Price, &item.Description, &item.Stock, &item.CategoryID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: locking menu item %d: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

func (r *menuRepository) CreateItem(executor SQLExecutor, item *models.MenuItem) (int64, error) {
	query := `INSERT INTO menu (name, price, description, stock, category_id)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	err := executor.QueryRow(query,
		item.Name, item.Price, item.Description, item.Stock, item.CategoryID,
	).Scan(&item.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: category %d", ErrNotFound, item.CategoryID)
		}
		return 0, fmt.Errorf("%w: creating menu item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

// UpdateItem changes the descriptive fields. Stock is changed only through
// UpdateStock and DecrementStock.
func (r *menuRepository) UpdateItem(executor SQLExecutor, item *models.MenuItem) error {
	query := `UPDATE menu
	          SET name = $1, price = $2, description = $3, category_id = $4
	          WHERE id = $5`
	result, err := executor.Exec(query, item.Name, item.Price, item.Description, item.CategoryID, item.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: category %d", ErrNotFound, item.CategoryID)
		}
		return fmt.Errorf("%w: updating menu item %d: %v", ErrDatabaseError, item.ID, err)
	}
	return expectOneRow(result, "updating menu item")
}

func (r *menuRepository) DeleteItem(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM menu WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: menu item %d appears in orders", ErrConflict, id)
		}
		return fmt.Errorf("%w: deleting menu item %d: %v", ErrDatabaseError, id, err)
	}
	return expectOneRow(result, "deleting menu item")
}

func (r *menuRepository) UpdateStock(executor SQLExecutor, id int64, stock int) error {
	result, err := executor.Exec(`UPDATE menu SET stock = $1 WHERE id = $2`, stock, id)
	if err != nil {
		return fmt.Errorf("%w: setting stock for menu item %d: %v", ErrDatabaseError, id, err)
	}
	return expectOneRow(result, "setting stock")
}

// DecrementStock subtracts quantity only if enough stock remains. It reports
// false, without error, when the guard rejected the update.
func (r *menuRepository) DecrementStock(executor SQLExecutor, id int64, quantity int) (bool, error) {
	result, err := executor.Exec(
		`UPDATE menu SET stock = stock - $1 WHERE id = $2 AND stock >= $1`, quantity, id)
	if err != nil {
		return false, fmt.Errorf("%w: decrementing stock for menu item %d: %v", ErrDatabaseError, id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: checking affected rows for stock decrement: %v", ErrDatabaseError, err)
	}
	return affected == 1, nil
}

func (r *menuRepository) LowStock(threshold int) ([]models.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + `
	          FROM menu m
	          JOIN category c ON c.id = m.category_id
	          WHERE m.stock <= $1
	          ORDER BY m.stock ASC, m.name`
	return r.queryItems("listing low stock items", query, threshold)
}

func expectOneRow(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking affected rows for %s: %v", ErrDatabaseError, op, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
