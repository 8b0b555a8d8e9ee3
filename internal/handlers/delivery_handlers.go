package handlers

import (
	"net/http"

	"foodie_express_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// DeliveryHandler serves the rider endpoints.
type DeliveryHandler struct {
	deliveryService services.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(ds services.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: ds}
}

func (h *DeliveryHandler) ListAvailable(c *gin.Context) {
	orders, err := h.deliveryService.ListAvailableOrders()
	if err != nil {
		respondServiceError(c, err, "ListAvailableDeliveries")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *DeliveryHandler) ListMine(c *gin.Context) {
	riderID, ok := currentUser(c)
	if !ok {
		return
	}
	orders, err := h.deliveryService.ListMyDeliveries(riderID)
	if err != nil {
		respondServiceError(c, err, "ListMyDeliveries")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *DeliveryHandler) History(c *gin.Context) {
	riderID, ok := currentUser(c)
	if !ok {
		return
	}
	orders, err := h.deliveryService.DeliveryHistory(riderID)
	if err != nil {
		respondServiceError(c, err, "DeliveryHistory")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *DeliveryHandler) Accept(c *gin.Context) {
	riderID, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := idParam(c, "orderId")
	if !ok {
		return
	}
	if err := h.deliveryService.AcceptOrder(c.Request.Context(), orderID, riderID); err != nil {
		respondServiceError(c, err, "AcceptDelivery")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "status": "Out for Delivery"})
}

func (h *DeliveryHandler) UpdateStatus(c *gin.Context) {
	riderID, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := idParam(c, "orderId")
	if !ok {
		return
	}
	var req services.UpdateDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateDeliveryStatus")
		return
	}
	if err := h.deliveryService.UpdateDeliveryStatus(c.Request.Context(), orderID, riderID, req.Status); err != nil {
		respondServiceError(c, err, "UpdateDeliveryStatus")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "status": req.Status})
}

func (h *DeliveryHandler) Complete(c *gin.Context) {
	riderID, ok := currentUser(c)
	if !ok {
		return
	}
	orderID, ok := idParam(c, "orderId")
	if !ok {
		return
	}
	if err := h.deliveryService.CompleteDelivery(c.Request.Context(), orderID, riderID); err != nil {
		respondServiceError(c, err, "CompleteDelivery")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "status": "Completed"})
}
