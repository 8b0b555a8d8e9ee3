package handlers

import (
	"net/http"

	"foodie_express_backend/internal/services"
	"foodie_express_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MenuHandler serves the catalog to everyone and its management to owners.
type MenuHandler struct {
	menuService services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(ms services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: ms}
}

func (h *MenuHandler) ListMenu(c *gin.Context) {
	items, err := h.menuService.ListMenu()
	if err != nil {
		respondServiceError(c, err, "ListMenu")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) SearchMenu(c *gin.Context) {
	items, err := h.menuService.SearchMenu(c.Query("q"))
	if err != nil {
		respondServiceError(c, err, "SearchMenu")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) GetMenuItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	item, err := h.menuService.GetMenuItem(id)
	if err != nil {
		respondServiceError(c, err, "GetMenuItem")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req services.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateMenuItem")
		return
	}
	item, err := h.menuService.CreateMenuItem(req)
	if err != nil {
		respondServiceError(c, err, "CreateMenuItem")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateMenuItem")
		return
	}
	item, err := h.menuService.UpdateMenuItem(id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateMenuItem")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.menuService.DeleteMenuItem(id); err != nil {
		respondServiceError(c, err, "DeleteMenuItem")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MenuHandler) SetStock(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "SetStock")
		return
	}
	item, err := h.menuService.SetStock(id, req)
	if err != nil {
		respondServiceError(c, err, "SetStock")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) LowStock(c *gin.Context) {
	threshold, ok := queryInt(c, "threshold", services.DefaultLowStockThreshold)
	if !ok {
		return
	}
	items, err := h.menuService.LowStock(threshold)
	if err != nil {
		respondServiceError(c, err, "LowStock")
		return
	}
	c.JSON(http.StatusOK, gin.H{"threshold": threshold, "items": items})
}

// ListStockMovements handles GET /stock-movements?menu_id=&page=&page_size=
func (h *MenuHandler) ListStockMovements(c *gin.Context) {
	var menuID *int64
	if raw := c.Query("menu_id"); raw != "" {
		id, err := utils.ParseID(raw)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu_id format.", err.Error()))
			return
		}
		menuID = &id
	}
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := queryInt(c, "page_size", 20)
	if !ok {
		return
	}

	movements, total, err := h.menuService.ListStockMovements(menuID, page, pageSize)
	if err != nil {
		respondServiceError(c, err, "ListStockMovements")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": movements, "total_count": total, "page": page, "page_size": pageSize})
}

func (h *MenuHandler) ListCategories(c *gin.Context) {
	categories, err := h.menuService.ListCategories()
	if err != nil {
		respondServiceError(c, err, "ListCategories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateCategory")
		return
	}
	category, err := h.menuService.CreateCategory(req)
	if err != nil {
		respondServiceError(c, err, "CreateCategory")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateCategory")
		return
	}
	category, err := h.menuService.UpdateCategory(id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateCategory")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.menuService.DeleteCategory(id); err != nil {
		respondServiceError(c, err, "DeleteCategory")
		return
	}
	c.Status(http.StatusNoContent)
}
