package handlers

import (
	"net/http"

	"foodie_express_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// CartHandler exposes the authenticated customer's cart.
type CartHandler struct {
	cartService services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cs services.CartService) *CartHandler {
	return &CartHandler{cartService: cs}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	customerID, ok := currentUser(c)
	if !ok {
		return
	}
	cart, err := h.cartService.GetCart(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, err, "GetCart")
		return
	}
	c.JSON(http.StatusOK, services.NewCartView(cart))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	customerID, ok := currentUser(c)
	if !ok {
		return
	}
	var req services.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "AddCartItem")
		return
	}
	cart, err := h.cartService.AddItem(c.Request.Context(), customerID, req)
	if err != nil {
		respondServiceError(c, err, "AddCartItem")
		return
	}
	c.JSON(http.StatusOK, services.NewCartView(cart))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	customerID, ok := currentUser(c)
	if !ok {
		return
	}
	menuID, ok := idParam(c, "menuId")
	if !ok {
		return
	}
	cart, err := h.cartService.RemoveItem(c.Request.Context(), customerID, menuID)
	if err != nil {
		respondServiceError(c, err, "RemoveCartItem")
		return
	}
	c.JSON(http.StatusOK, services.NewCartView(cart))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	customerID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.cartService.ClearCart(c.Request.Context(), customerID); err != nil {
		respondServiceError(c, err, "ClearCart")
		return
	}
	c.Status(http.StatusNoContent)
}
