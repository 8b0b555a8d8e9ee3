package handlers

import (
	"net/http"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/internal/services"
	"foodie_express_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler holds the payment service.
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

func (h *PaymentHandler) PaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, h.paymentService.PaymentMethods())
}

// ProcessPayment sets a payment's status (owner).
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	paymentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "ProcessPayment")
		return
	}
	status, ok := models.ParsePaymentStatus(req.Status)
	if !ok {
		utils.RespondValidationFailed(c, "status must be one of Pending, Paid, Completed")
		return
	}

	payment, err := h.paymentService.ProcessPayment(c.Request.Context(), paymentID, status)
	if err != nil {
		respondServiceError(c, err, "ProcessPayment")
		return
	}
	c.JSON(http.StatusOK, payment)
}
