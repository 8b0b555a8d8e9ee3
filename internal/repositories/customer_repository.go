package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"foodie_express_backend/internal/models"
)

// CustomerRepository defines the interface for customer-related database operations.
type CustomerRepository interface {
	CreateCustomer(executor SQLExecutor, customer *models.Customer) (int64, error)
	GetCustomerByID(id int64) (*models.Customer, error)
	GetCustomerByPhone(phone string) (*models.Customer, error) // includes the password hash
	UpdateAddress(executor SQLExecutor, id int64, address string) error
	ListCustomers() ([]models.Customer, error)
}

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository.
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// CreateCustomer inserts a new customer. PasswordHash must already be hashed.
func (r *customerRepository) CreateCustomer(executor SQLExecutor, customer *models.Customer) (int64, error) {
	query := `INSERT INTO customer (name, phone, password_hash, address, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		customer.Name, customer.Phone, customer.PasswordHash, customer.Address, customer.CreatedAt,
	).Scan(&customer.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: phone %s already registered", ErrDuplicateKey, customer.Phone)
		}
		return 0, fmt.Errorf("%w: creating customer: %v", ErrDatabaseError, err)
	}
	return customer.ID, nil
}

func (r *customerRepository) GetCustomerByID(id int64) (*models.Customer, error) {
	c := &models.Customer{}
	query := `SELECT id, name, phone, address, created_at FROM customer WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting customer by ID %d: %v", ErrDatabaseError, id, err)
	}
	return c, nil
}

func (r *customerRepository) GetCustomerByPhone(phone string) (*models.Customer, error) {
	c := &models.Customer{}
	query := `SELECT id, name, phone, password_hash, address, created_at FROM customer WHERE phone = $1`
	err := r.db.QueryRow(query, phone).Scan(&c.ID, &c.Name, &c.Phone, &c.PasswordHash, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting customer by phone: %v", ErrDatabaseError, err)
	}
	return c, nil
}

func (r *customerRepository) UpdateAddress(executor SQLExecutor, id int64, address string) error {
	result, err := executor.Exec(`UPDATE customer SET address = $1 WHERE id = $2`, address, id)
	if err != nil {
		return fmt.Errorf("%w: updating address for customer %d: %v", ErrDatabaseError, id, err)
	}
	return expectOneRow(result, "updating customer address")
}

func (r *customerRepository) ListCustomers() ([]models.Customer, error) {
	customers := []models.Customer{}
	rows, err := r.db.Query(`SELECT id, name, phone, address, created_at FROM customer ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing customers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning customer: %v", ErrDatabaseError, err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating customers: %v", ErrDatabaseError, err)
	}
	return customers, nil
}
