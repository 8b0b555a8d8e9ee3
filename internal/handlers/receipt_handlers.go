package handlers

import (
	"net/http"

	"foodie_express_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ReceiptHandler serves stored receipts.
type ReceiptHandler struct {
	receiptService services.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(rs services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: rs}
}

func (h *ReceiptHandler) GetCustomerReceipt(c *gin.Context) {
	customerID, ok := currentUser(c)
	if !ok {
		return
	}
	receiptID, ok := idParam(c, "id")
	if !ok {
		return
	}
	receipt, err := h.receiptService.GetCustomerReceipt(customerID, receiptID)
	if err != nil {
		respondServiceError(c, err, "GetCustomerReceipt")
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	receiptID, ok := idParam(c, "id")
	if !ok {
		return
	}
	receipt, err := h.receiptService.GetReceipt(receiptID)
	if err != nil {
		respondServiceError(c, err, "GetReceipt")
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func (h *ReceiptHandler) ListReceipts(c *gin.Context) {
	receipts, err := h.receiptService.ListReceipts()
	if err != nil {
		respondServiceError(c, err, "ListReceipts")
		return
	}
	c.JSON(http.StatusOK, receipts)
}

func (h *ReceiptHandler) SearchReceipts(c *gin.Context) {
	receipts, err := h.receiptService.SearchByCustomer(c.Query("customer"))
	if err != nil {
		respondServiceError(c, err, "SearchReceipts")
		return
	}
	c.JSON(http.StatusOK, receipts)
}
