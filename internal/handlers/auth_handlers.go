package handlers

import (
	"net/http"

	"foodie_express_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles sign up, login and profile endpoints.
type AuthHandler struct {
	authService services.AuthService
	cartService services.CartService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService, cs services.CartService) *AuthHandler {
	return &AuthHandler{authService: as, cartService: cs}
}

func (h *AuthHandler) RegisterCustomer(c *gin.Context) {
	var req services.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "RegisterCustomer")
		return
	}
	customer, err := h.authService.RegisterCustomer(req)
	if err != nil {
		respondServiceError(c, err, "RegisterCustomer")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *AuthHandler) LoginCustomer(c *gin.Context) {
	var req services.PhoneLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "LoginCustomer")
		return
	}
	resp, err := h.authService.LoginCustomer(req)
	if err != nil {
		respondServiceError(c, err, "LoginCustomer")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) LoginRider(c *gin.Context) {
	var req services.PhoneLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "LoginRider")
		return
	}
	resp, err := h.authService.LoginRider(req)
	if err != nil {
		respondServiceError(c, err, "LoginRider")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) LoginOwner(c *gin.Context) {
	var req services.OwnerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "LoginOwner")
		return
	}
	resp, err := h.authService.LoginOwner(req)
	if err != nil {
		respondServiceError(c, err, "LoginOwner")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout drops the customer's cart. Tokens are stateless and simply expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	customerID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.cartService.ClearCart(c.Request.Context(), customerID); err != nil {
		respondServiceError(c, err, "Logout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	customerID, ok := currentUser(c)
	if !ok {
		return
	}
	customer, err := h.authService.GetCustomerProfile(customerID)
	if err != nil {
		respondServiceError(c, err, "GetProfile")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *AuthHandler) UpdateAddress(c *gin.Context) {
	customerID, ok := currentUser(c)
	if !ok {
		return
	}
	var req services.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateAddress")
		return
	}
	customer, err := h.authService.UpdateCustomerAddress(customerID, req.Address)
	if err != nil {
		respondServiceError(c, err, "UpdateAddress")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *AuthHandler) ListCustomers(c *gin.Context) {
	customers, err := h.authService.ListCustomers()
	if err != nil {
		respondServiceError(c, err, "ListCustomers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *AuthHandler) ListRiders(c *gin.Context) {
	riders, err := h.authService.ListRiders()
	if err != nil {
		respondServiceError(c, err, "ListRiders")
		return
	}
	c.JSON(http.StatusOK, riders)
}
