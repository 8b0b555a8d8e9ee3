package services

import (
	"fmt"
	"testing"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/internal/repositories"
	"foodie_express_backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeCustomerRepo struct {
	repositories.CustomerRepository
	byPhone map[string]*models.Customer
	nextID  int64
}

func (r *fakeCustomerRepo) CreateCustomer(_ repositories.SQLExecutor, c *models.Customer) (int64, error) {
	if _, ok := r.byPhone[c.Phone]; ok {
		return 0, fmt.Errorf("%w: phone", repositories.ErrDuplicateKey)
	}
	r.nextID++
	c.ID = r.nextID
	stored := *c
	r.byPhone[c.Phone] = &stored
	return c.ID, nil
}

func (r *fakeCustomerRepo) GetCustomerByPhone(phone string) (*models.Customer, error) {
	c, ok := r.byPhone[phone]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

type fakeAuthRepo struct {
	repositories.AuthRepository
	riders map[string]*models.Rider
}

func (r *fakeAuthRepo) FindRiderByPhone(phone string) (*models.Rider, error) {
	rider, ok := r.riders[phone]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return rider, nil
}

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("rider-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	authRepo := &fakeAuthRepo{riders: map[string]*models.Rider{
		"0111111111": {ID: 3, Name: "Farid", PasswordHash: string(hash), Active: true},
		"0122222222": {ID: 4, Name: "Idle", PasswordHash: string(hash), Active: false},
	}}
	return NewAuthService(authRepo, &fakeCustomerRepo{byPhone: map[string]*models.Customer{}}, nil)
}

func TestAuthService_RegisterAndLoginCustomer(t *testing.T) {
	svc := newTestAuthService(t)

	customer, err := svc.RegisterCustomer(RegisterCustomerRequest{
		Name: " Aisyah ", Phone: "0123456789", Password: "secret1", Address: "Jalan Ampang",
	})
	require.NoError(t, err)
	assert.Equal(t, "Aisyah", customer.Name)
	assert.Empty(t, customer.PasswordHash)

	_, err = svc.RegisterCustomer(RegisterCustomerRequest{Name: "Other", Phone: "0123456789", Password: "secret2"})
	assert.ErrorIs(t, err, ErrPhoneTaken)

	resp, err := svc.LoginCustomer(PhoneLoginRequest{Phone: "0123456789", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, resp.Role)
	assert.Equal(t, "Bearer", resp.TokenType)

	claims, err := utils.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, claims.UserID)
	assert.Equal(t, string(models.RoleCustomer), claims.Role)

	_, err = svc.LoginCustomer(PhoneLoginRequest{Phone: "0123456789", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.LoginCustomer(PhoneLoginRequest{Phone: "0199999999", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.RegisterCustomer(RegisterCustomerRequest{Name: "A", Phone: "call me", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidPhone)

	_, err = svc.RegisterCustomer(RegisterCustomerRequest{Name: "A", Phone: "0123456789", Password: "abc"})
	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_LoginRider(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.LoginRider(PhoneLoginRequest{Phone: "0111111111", Password: "rider-pass"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.UserID)
	assert.Equal(t, models.RoleRider, resp.Role)

	_, err = svc.LoginRider(PhoneLoginRequest{Phone: "0122222222", Password: "rider-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
