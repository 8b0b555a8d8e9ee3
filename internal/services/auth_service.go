package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/internal/repositories"
	"foodie_express_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Data Transfer Objects (DTOs) ---

// RegisterCustomerRequest DTO
type RegisterCustomerRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
	Address  string `json:"address" binding:"required"`
}

// PhoneLoginRequest is used by customers and riders.
type PhoneLoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// OwnerLoginRequest DTO
type OwnerLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateAddressRequest DTO
type UpdateAddressRequest struct {
	Address string `json:"address" binding:"required"`
}

// AuthResponse DTO
type AuthResponse struct {
	UserID      int64       `json:"user_id"`
	Name        string      `json:"name"`
	Role        models.Role `json:"role"`
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
}

// --- AuthService Interface ---
type AuthService interface {
	RegisterCustomer(req RegisterCustomerRequest) (*models.Customer, error)
	LoginCustomer(req PhoneLoginRequest) (*AuthResponse, error)
	LoginRider(req PhoneLoginRequest) (*AuthResponse, error)
	LoginOwner(req OwnerLoginRequest) (*AuthResponse, error)
	GetCustomerProfile(customerID int64) (*models.Customer, error)
	UpdateCustomerAddress(customerID int64, address string) (*models.Customer, error)
	ListCustomers() ([]models.Customer, error)
	ListRiders() ([]models.Rider, error)
}

// --- authService Implementation ---
type authService struct {
	authRepo     repositories.AuthRepository
	customerRepo repositories.CustomerRepository
	db           *sql.DB // Used as SQLExecutor for single repo calls
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository, customerRepo repositories.CustomerRepository, db *sql.DB) AuthService {
	return &authService{authRepo: authRepo, customerRepo: customerRepo, db: db}
}

func issueToken(userID int64, name string, role models.Role) (*AuthResponse, error) {
	token, err := utils.GenerateAccessToken(userID, name, string(role))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return &AuthResponse{
		UserID:      userID,
		Name:        name,
		Role:        role,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(utils.AccessTokenTTL().Seconds()),
	}, nil
}

func checkPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// RegisterCustomer handles the business logic for customer sign up.
func (s *authService) RegisterCustomer(req RegisterCustomerRequest) (*models.Customer, error) {
	phone := strings.TrimSpace(req.Phone)
	if !utils.IsValidPhone(phone) {
		return nil, ErrInvalidPhone
	}
	if !utils.IsValidPasswordLength(req.Password, 6) {
		return nil, ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	customer := &models.Customer{
		Name:         strings.TrimSpace(req.Name),
		Phone:        phone,
		PasswordHash: string(hashed),
		Address:      strings.TrimSpace(req.Address),
	}
	if _, err := s.customerRepo.CreateCustomer(s.db, customer); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrPhoneTaken
		}
		return nil, storageError("registering customer", err)
	}
	customer.PasswordHash = "" // Ensure hash is not returned
	return customer, nil
}

func (s *authService) LoginCustomer(req PhoneLoginRequest) (*AuthResponse, error) {
	customer, err := s.customerRepo.GetCustomerByPhone(strings.TrimSpace(req.Phone))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageError("customer login", err)
	}
	if err := checkPassword(customer.PasswordHash, req.Password); err != nil {
		return nil, err
	}
	return issueToken(customer.ID, customer.Name, models.RoleCustomer)
}

// LoginRider only admits active riders.
func (s *authService) LoginRider(req PhoneLoginRequest) (*AuthResponse, error) {
	rider, err := s.authRepo.FindRiderByPhone(strings.TrimSpace(req.Phone))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageError("rider login", err)
	}
	if !rider.Active {
		return nil, ErrInvalidCredentials
	}
	if err := checkPassword(rider.PasswordHash, req.Password); err != nil {
		return nil, err
	}
	return issueToken(rider.ID, rider.Name, models.RoleRider)
}

func (s *authService) LoginOwner(req OwnerLoginRequest) (*AuthResponse, error) {
	owner, err := s.authRepo.FindOwnerByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageError("owner login", err)
	}
	if err := checkPassword(owner.PasswordHash, req.Password); err != nil {
		return nil, err
	}
	return issueToken(owner.ID, owner.Username, models.RoleOwner)
}

func (s *authService) GetCustomerProfile(customerID int64) (*models.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByID(customerID)
	if err != nil {
		return nil, mapNotFound(err, ErrCustomerNotFound, "getting customer profile")
	}
	return customer, nil
}

func (s *authService) UpdateCustomerAddress(customerID int64, address string) (*models.Customer, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("%w: address is required", ErrValidation)
	}
	if err := s.customerRepo.UpdateAddress(s.db, customerID, address); err != nil {
		return nil, mapNotFound(err, ErrCustomerNotFound, "updating address")
	}
	return s.GetCustomerProfile(customerID)
}

func (s *authService) ListCustomers() ([]models.Customer, error) {
	customers, err := s.customerRepo.ListCustomers()
	if err != nil {
		return nil, storageError("listing customers", err)
	}
	return customers, nil
}

func (s *authService) ListRiders() ([]models.Rider, error) {
	riders, err := s.authRepo.ListRiders()
	if err != nil {
		return nil, storageError("listing riders", err)
	}
	return riders, nil
}
