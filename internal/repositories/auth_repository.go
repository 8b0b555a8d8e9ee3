package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"foodie_express_backend/internal/models"
)

// AuthRepository looks up staff accounts (riders and owners) for login.
// Customers live in CustomerRepository.
type AuthRepository interface {
	FindRiderByPhone(phone string) (*models.Rider, error)
	FindRiderByID(riderID int64) (*models.Rider, error)
	ListRiders() ([]models.Rider, error)
	FindOwnerByUsername(username string) (*models.Owner, error)
}

// authRepository implements the AuthRepository interface.
type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

// FindRiderByPhone returns the rider with its password hash.
func (r *authRepository) FindRiderByPhone(phone string) (*models.Rider, error) {
	rider := &models.Rider{}
	query := `SELECT id, rider_name, phone, password_hash, active FROM delivery WHERE phone = $1`
	err := r.db.QueryRow(query, phone).Scan(&rider.ID, &rider.Name, &rider.Phone, &rider.PasswordHash, &rider.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding rider by phone: %v", ErrDatabaseError, err)
	}
	return rider, nil
}

func (r *authRepository) FindRiderByID(riderID int64) (*models.Rider, error) {
	rider := &models.Rider{}
	query := `SELECT id, rider_name, phone, active FROM delivery WHERE id = $1`
	err := r.db.QueryRow(query, riderID).Scan(&rider.ID, &rider.Name, &rider.Phone, &rider.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding rider by ID %d: %v", ErrDatabaseError, riderID, err)
	}
	return rider, nil
}

func (r *authRepository) ListRiders() ([]models.Rider, error) {
	riders := []models.Rider{}
	rows, err := r.db.Query(`SELECT id, rider_name, phone, active FROM delivery ORDER BY rider_name`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing riders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rider models.Rider
		if err := rows.Scan(&rider.ID, &rider.Name, &rider.Phone, &rider.Active); err != nil {
			return nil, fmt.Errorf("%w: scanning rider: %v", ErrDatabaseError, err)
		}
		riders = append(riders, rider)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating riders: %v", ErrDatabaseError, err)
	}
	return riders, nil
}

// FindOwnerByUsername returns the owner with its password hash.
func (r *authRepository) FindOwnerByUsername(username string) (*models.Owner, error) {
	owner := &models.Owner{}
	query := `SELECT id, username, password_hash, staff_name FROM owner WHERE username = $1`
	err := r.db.QueryRow(query, username).Scan(&owner.ID, &owner.Username, &owner.PasswordHash, &owner.StaffName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding owner by username %s: %v", ErrDatabaseError, username, err)
	}
	return owner, nil
}
