package services

import (
	"errors"
	"fmt"

	"foodie_express_backend/internal/repositories"
)

// --- Custom Service Errors ---
var (
	ErrValidation           = errors.New("validation failed")
	ErrEmptyCart            = fmt.Errorf("%w: cart is empty", ErrValidation)
	ErrInvalidQuantity      = fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	ErrInvalidStock         = fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	ErrInvalidPrice         = fmt.Errorf("%w: price cannot be negative", ErrValidation)
	ErrInvalidStatus        = fmt.Errorf("%w: status not allowed", ErrValidation)
	ErrInvalidPaymentMethod = fmt.Errorf("%w: unknown payment method", ErrValidation)
	ErrInvalidPhone         = fmt.Errorf("%w: invalid phone number", ErrValidation)
	ErrWeakPassword         = fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)

	ErrNotFound         = errors.New("not found")
	ErrMenuItemNotFound = fmt.Errorf("menu item %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrCartLineNotFound = fmt.Errorf("cart line %w", ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("order %w", ErrNotFound)
	ErrPaymentNotFound  = fmt.Errorf("payment %w", ErrNotFound)
	ErrReceiptNotFound  = fmt.Errorf("receipt %w", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("customer %w", ErrNotFound)
	ErrRiderNotFound    = fmt.Errorf("rider %w", ErrNotFound)

	ErrInsufficientStock = errors.New("insufficient stock")

	ErrConflict         = errors.New("conflict")
	ErrOrderUnavailable = fmt.Errorf("%w: order already taken or missing", ErrConflict)
	ErrPhoneTaken       = fmt.Errorf("%w: phone number already registered", ErrConflict)
	ErrCategoryExists   = fmt.Errorf("%w: category name already exists", ErrConflict)
	ErrCategoryInUse    = fmt.Errorf("%w: category still has menu items", ErrConflict)
	ErrMenuItemInUse    = fmt.Errorf("%w: menu item appears in orders", ErrConflict)
	ErrDuplicateRequest = fmt.Errorf("%w: request with this idempotency key was already processed", ErrConflict)

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenGeneration    = errors.New("failed to generate token")

	// ErrStorage wraps any data-access fault.
	ErrStorage = errors.New("storage failure")
)

// InsufficientStockError reports a line that asks for more than is on hand.
// It matches ErrInsufficientStock with errors.Is.
type InsufficientStockError struct {
	MenuID    int64
	Name      string
	Available int
	Required  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (menu item %d): available %d, required %d",
		e.Name, e.MenuID, e.Available, e.Required)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// CheckoutIncompleteError is returned when the order was committed but a
// later checkout step failed. The order is kept.
type CheckoutIncompleteError struct {
	OrderID int64
	Stage   string
	Err     error
}

func (e *CheckoutIncompleteError) Error() string {
	return fmt.Sprintf("order %d created but %s failed: %v", e.OrderID, e.Stage, e.Err)
}

func (e *CheckoutIncompleteError) Unwrap() error {
	return e.Err
}

// storageError converts a repository fault into ErrStorage.
func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}

// mapNotFound returns notFound for repositories.ErrNotFound and a storage
// error otherwise.
func mapNotFound(err, notFound error, op string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound
	}
	return storageError(op, err)
}
