package handlers

import (
	"net/http"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/internal/services"
	"foodie_express_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader lets clients retry a checkout safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandler holds the order related services.
type OrderHandler struct {
	orderService    services.OrderService
	checkoutService services.CheckoutService
	paymentService  services.PaymentService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService, cs services.CheckoutService, ps services.PaymentService) *OrderHandler {
	return &OrderHandler{orderService: os, checkoutService: cs, paymentService: ps}
}

// Checkout places an order from the customer's cart.
func (h *OrderHandler) Checkout(c *gin.Context) {
	customerID, ok := currentUser(c)
	if !ok {
		return
	}
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Checkout")
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), customerID, req, c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		respondServiceError(c, err, "Checkout")
		return
	}
	c.JSON(http.StatusCreated, result)
}

// OrderHistory lists the customer's orders, newest first.
func (h *OrderHandler) OrderHistory(c *gin.Context) {
	customerID, ok := currentUser(c)
	if !ok {
		return
	}
	entries := []models.OrderHistoryEntry{}
	for entry, err := range h.orderService.OrderHistory(customerID) {
		if err != nil {
			respondServiceError(c, err, "OrderHistory")
			return
		}
		entries = append(entries, entry)
	}
	c.JSON(http.StatusOK, entries)
}

// GetCustomerOrder returns one of the caller's own orders.
func (h *OrderHandler) GetCustomerOrder(c *gin.Context) {
	customerID, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.GetCustomerOrder(customerID, orderID)
	if err != nil {
		respondServiceError(c, err, "GetCustomerOrder")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetCustomerOrderPayment(c *gin.Context) {
	customerID, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	payment, err := h.paymentService.GetCustomerPaymentByOrder(customerID, orderID)
	if err != nil {
		respondServiceError(c, err, "GetCustomerOrderPayment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// GetOrder returns any order (owner).
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.GetOrderByID(orderID)
	if err != nil {
		respondServiceError(c, err, "GetOrder")
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /orders?status=&customer_id=&page=&page_size=
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var query services.ListOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters", err.Error()))
		return
	}
	if query.Page == 0 {
		query.Page = 1
	}
	if query.PageSize == 0 {
		query.PageSize = 10
	}

	orders, total, err := h.orderService.ListOrders(query)
	if err != nil {
		respondServiceError(c, err, "ListOrders")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        orders,
		"total_count": total,
		"page":        query.Page,
		"page_size":   query.PageSize,
	})
}
