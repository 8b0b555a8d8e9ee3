package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"foodie_express_backend/internal/middleware"
	"foodie_express_backend/internal/services"
	"foodie_express_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service errors onto HTTP responses. Storage and
// unknown faults are logged and hidden from the client.
func respondServiceError(c *gin.Context, err error, op string) {
	var stockErr *services.InsufficientStockError
	var incomplete *services.CheckoutIncompleteError

	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{
			"code":      utils.ErrCodeInsufficientStock,
			"message":   "Not enough stock",
			"details":   stockErr.Error(),
			"menu_id":   stockErr.MenuID,
			"name":      stockErr.Name,
			"available": stockErr.Available,
			"required":  stockErr.Required,
		}})
		c.Abort()
	case errors.As(err, &incomplete):
		utils.LogError(err, op)
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"code":     utils.ErrCodeInternalServerError,
			"message":  "Order was placed but checkout did not finish",
			"details":  incomplete.Stage + " failed",
			"order_id": incomplete.OrderID,
		}})
		c.Abort()
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request", err.Error()))
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
	case errors.Is(err, services.ErrConflict):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid credentials", ""))
	default:
		utils.LogError(err, op)
		utils.RespondInternalError(c, "Something went wrong while processing the request")
	}
}

func respondBindError(c *gin.Context, err error, op string) {
	utils.LogError(err, op+": Failed to bind JSON")
	utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload", err.Error()))
}

// idParam parses a positive int64 path parameter, responding 400 otherwise.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := utils.ParseID(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid "+name, "must be a positive integer"))
		return 0, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter.
func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+name, "must be a non-negative integer"))
		return 0, false
	}
	return n, true
}

func currentUser(c *gin.Context) (int64, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return 0, false
	}
	return id, true
}
