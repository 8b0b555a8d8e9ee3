package models

import "time"

// Role names carried in access tokens.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleRider    Role = "rider"
	RoleOwner    Role = "owner"
)

// Customer orders food. PasswordHash never leaves the service layer.
type Customer struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Phone        string    `json:"phone" db:"phone"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Address      string    `json:"address" db:"address"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Rider delivers orders; rows live in the delivery table.
type Rider struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"rider_name"`
	Phone        string `json:"phone" db:"phone"`
	PasswordHash string `json:"-" db:"password_hash"`
	Active       bool   `json:"active" db:"active"`
}

// Owner manages the catalog and reads reports.
type Owner struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	StaffName    string `json:"staff_name" db:"staff_name"`
}
