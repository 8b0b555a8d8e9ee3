package services

import (
	"context"
	"errors"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// AddCartItemRequest is the body of POST /cart/items. Price and name are
// taken from the catalog, never from the client.
type AddCartItemRequest struct {
	MenuID   int64 `json:"menu_id" binding:"required"`
	Quantity int   `json:"quantity"`
}

// CartView is the API shape of a cart.
type CartView struct {
	Lines []models.CartLine `json:"lines"`
	Total decimal.Decimal   `json:"total"`
	Size  int               `json:"size"`
}

// NewCartView builds the response for cart.
func NewCartView(cart *models.Cart) CartView {
	lines := cart.Lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	return CartView{Lines: lines, Total: cart.Total(), Size: cart.Size()}
}

// CartService manages the per-customer session cart.
type CartService interface {
	GetCart(ctx context.Context, customerID int64) (*models.Cart, error)
	AddItem(ctx context.Context, customerID int64, req AddCartItemRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, customerID, menuID int64) (*models.Cart, error)
	ClearCart(ctx context.Context, customerID int64) error
}

type cartService struct {
	menuRepo repositories.MenuRepository
	store    CartStore
}

// NewCartService creates a new instance of CartService.
func NewCartService(menuRepo repositories.MenuRepository, store CartStore) CartService {
	return &cartService{menuRepo: menuRepo, store: store}
}

func (s *cartService) GetCart(ctx context.Context, customerID int64) (*models.Cart, error) {
	cart, err := s.store.Load(ctx, customerID)
	if err != nil {
		return nil, storageError("loading cart", err)
	}
	return cart, nil
}

// AddItem reads live stock and appends a line with the current price and
// name. When the quantity exceeds stock the cart is left untouched.
func (s *cartService) AddItem(ctx context.Context, customerID int64, req AddCartItemRequest) (*models.Cart, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.menuRepo.GetItemByID(req.MenuID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, storageError("reading menu item", err)
	}
	if !item.InStock(req.Quantity) {
		return nil, &InsufficientStockError{
			MenuID: item.ID, Name: item.Name, Available: item.Stock, Required: req.Quantity,
		}
	}

	cart, err := s.store.Load(ctx, customerID)
	if err != nil {
		return nil, storageError("loading cart", err)
	}
	cart.Add(models.CartLine{
		MenuID:    item.ID,
		Quantity:  req.Quantity,
		UnitPrice: item.Price,
		Name:      item.Name,
	})
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, storageError("saving cart", err)
	}
	return cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, customerID, menuID int64) (*models.Cart, error) {
	cart, err := s.store.Load(ctx, customerID)
	if err != nil {
		return nil, storageError("loading cart", err)
	}
	if !cart.Remove(menuID) {
		return nil, ErrCartLineNotFound
	}
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, storageError("saving cart", err)
	}
	return cart, nil
}

func (s *cartService) ClearCart(ctx context.Context, customerID int64) error {
	if err := s.store.Delete(ctx, customerID); err != nil {
		return storageError("clearing cart", err)
	}
	return nil
}
