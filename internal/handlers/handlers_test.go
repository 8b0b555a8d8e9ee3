package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodie_express_backend/internal/middleware"
	"foodie_express_backend/internal/models"
	"foodie_express_backend/internal/repositories"
	"foodie_express_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubMenuRepo struct {
	repositories.MenuRepository
	items map[int64]*models.MenuItem
}

func (r *stubMenuRepo) GetItemByID(id int64) (*models.MenuItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func asCustomer(id int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextUserRole, string(models.RoleCustomer))
		c.Next()
	}
}

func newCartEngine() *gin.Engine {
	repo := &stubMenuRepo{items: map[int64]*models.MenuItem{
		1: {ID: 1, Name: "Nasi Lemak", Price: decimal.RequireFromString("10.00"), Stock: 3},
	}}
	h := NewCartHandler(services.NewCartService(repo, services.NewMemoryCartStore(0)))

	r := gin.New()
	g := r.Group("/cart", asCustomer(7))
	g.GET("", h.GetCart)
	g.POST("/items", h.AddItem)
	g.DELETE("/items/:menuId", h.RemoveItem)
	g.DELETE("", h.ClearCart)
	return r
}

func serve(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCartHandler_AddAndView(t *testing.T) {
	r := newCartEngine()

	w := serve(r, http.MethodPost, "/cart/items", gin.H{"menu_id": 1, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Lines []models.CartLine `json:"lines"`
		Total decimal.Decimal   `json:"total"`
		Size  int               `json:"size"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 1, view.Size)
	assert.Equal(t, "20.00", view.Total.StringFixed(2))

	w = serve(r, http.MethodDelete, "/cart", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCartHandler_Errors(t *testing.T) {
	r := newCartEngine()

	w := serve(r, http.MethodPost, "/cart/items", gin.H{"menu_id": 1, "quantity": 5})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"available":3`)

	w = serve(r, http.MethodPost, "/cart/items", gin.H{"menu_id": 9, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, http.MethodPost, "/cart/items", gin.H{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodDelete, "/cart/items/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodDelete, "/cart/items/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRespondServiceError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{services.ErrEmptyCart, http.StatusBadRequest},
		{services.ErrOrderNotFound, http.StatusNotFound},
		{services.ErrOrderUnavailable, http.StatusConflict},
		{services.ErrDuplicateRequest, http.StatusConflict},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{&services.InsufficientStockError{MenuID: 1, Available: 0, Required: 1}, http.StatusConflict},
		{&services.CheckoutIncompleteError{OrderID: 42, Stage: "receipt", Err: errors.New("boom")}, http.StatusInternalServerError},
		{fmt.Errorf("%w: db down", services.ErrStorage), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondServiceError(c, tc.err, "test")
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestRespondServiceError_IncompleteCarriesOrderID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondServiceError(c, &services.CheckoutIncompleteError{OrderID: 42, Stage: "payment", Err: errors.New("boom")}, "Checkout")

	assert.Contains(t, w.Body.String(), `"order_id":42`)
	assert.NotContains(t, w.Body.String(), "boom")
}
