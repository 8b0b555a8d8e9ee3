package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/internal/repositories"
	"foodie_express_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold marks items at or below this level as low.
const DefaultLowStockThreshold = 10

// MenuItemRequest creates or updates a menu item. Stock is only used on
// create.
type MenuItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
	CategoryID  int64           `json:"category_id" binding:"required"`
}

// SetStockRequest DTO
type SetStockRequest struct {
	Stock  *int   `json:"stock" binding:"required"`
	Reason string `json:"reason"`
}

// CategoryRequest DTO
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// MenuService manages the catalog.
type MenuService interface {
	ListMenu() ([]models.MenuItem, error)
	SearchMenu(keyword string) ([]models.MenuItem, error)
	GetMenuItem(id int64) (*models.MenuItem, error)
	CreateMenuItem(req MenuItemRequest) (*models.MenuItem, error)
	UpdateMenuItem(id int64, req MenuItemRequest) (*models.MenuItem, error)
	DeleteMenuItem(id int64) error
	SetStock(id int64, req SetStockRequest) (*models.MenuItem, error)
	LowStock(threshold int) ([]models.MenuItem, error)
	ListStockMovements(menuID *int64, page, pageSize int) ([]models.StockMovement, int, error)

	ListCategories() ([]models.Category, error)
	CreateCategory(req CategoryRequest) (*models.Category, error)
	UpdateCategory(id int64, req CategoryRequest) (*models.Category, error)
	DeleteCategory(id int64) error
}

type menuService struct {
	menuRepo     repositories.MenuRepository
	movementRepo repositories.StockMovementRepository
	db           *sql.DB
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(mr repositories.MenuRepository, smr repositories.StockMovementRepository, db *sql.DB) MenuService {
	return &menuService{menuRepo: mr, movementRepo: smr, db: db}
}

func (s *menuService) ListMenu() ([]models.MenuItem, error) {
	items, err := s.menuRepo.ListItems()
	if err != nil {
		return nil, storageError("listing menu", err)
	}
	return items, nil
}

// SearchMenu matches item names case-insensitively. An empty keyword lists
// the whole menu.
func (s *menuService) SearchMenu(keyword string) ([]models.MenuItem, error) {
	if strings.TrimSpace(keyword) == "" {
		return s.ListMenu()
	}
	items, err := s.menuRepo.SearchItems(keyword)
	if err != nil {
		return nil, storageError("searching menu", err)
	}
	return items, nil
}

func (s *menuService) GetMenuItem(id int64) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetItemByID(id)
	if err != nil {
		return nil, mapNotFound(err, ErrMenuItemNotFound, "getting menu item")
	}
	return item, nil
}

func validateMenuItem(req MenuItemRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if req.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

func (s *menuService) CreateMenuItem(req MenuItemRequest) (*models.MenuItem, error) {
	if err := validateMenuItem(req); err != nil {
		return nil, err
	}
	item := &models.MenuItem{
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price.Round(2),
		Description: req.Description,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	}
	id, err := s.menuRepo.CreateItem(s.db, item)
	if err != nil {
		return nil, mapNotFound(err, ErrCategoryNotFound, "creating menu item")
	}
	return s.GetMenuItem(id)
}

func (s *menuService) UpdateMenuItem(id int64, req MenuItemRequest) (*models.MenuItem, error) {
	if err := validateMenuItem(req); err != nil {
		return nil, err
	}
	item := &models.MenuItem{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price.Round(2),
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}
	if err := s.menuRepo.UpdateItem(s.db, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Either the item or the category is missing.
			if _, getErr := s.menuRepo.GetItemByID(id); getErr != nil {
				return nil, ErrMenuItemNotFound
			}
			return nil, ErrCategoryNotFound
		}
		return nil, storageError("updating menu item", err)
	}
	return s.GetMenuItem(id)
}

func (s *menuService) DeleteMenuItem(id int64) error {
	if err := s.menuRepo.DeleteItem(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return ErrMenuItemInUse
		}
		return mapNotFound(err, ErrMenuItemNotFound, "deleting menu item")
	}
	return nil
}

// SetStock overwrites the stock level and records the difference as an
// adjustment movement.
func (s *menuService) SetStock(id int64, req SetStockRequest) (*models.MenuItem, error) {
	if req.Stock == nil || *req.Stock < 0 {
		return nil, ErrInvalidStock
	}
	newStock := *req.Stock

	tx, err := s.db.Begin()
	if err != nil {
		return nil, storageError("starting stock transaction", err)
	}
	defer tx.Rollback()

	item, err := s.menuRepo.GetItemForUpdate(tx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrMenuItemNotFound, "locking menu item")
	}
	if err := s.menuRepo.UpdateStock(tx, id, newStock); err != nil {
		return nil, mapNotFound(err, ErrMenuItemNotFound, "setting stock")
	}
	if delta := newStock - item.Stock; delta != 0 {
		movement := &models.StockMovement{
			MenuID:          id,
			Kind:            models.StockMovementAdjustment,
			QuantityChanged: delta,
			Reason:          utils.NewNullString(strings.TrimSpace(req.Reason)),
		}
		if _, err := s.movementRepo.CreateMovement(tx, movement); err != nil {
			return nil, storageError("recording stock adjustment", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, storageError("committing stock update", err)
	}

	item.Stock = newStock
	return item, nil
}

func (s *menuService) LowStock(threshold int) ([]models.MenuItem, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	items, err := s.menuRepo.LowStock(threshold)
	if err != nil {
		return nil, storageError("listing low stock", err)
	}
	return items, nil
}

func (s *menuService) ListStockMovements(menuID *int64, page, pageSize int) ([]models.StockMovement, int, error) {
	movements, total, err := s.movementRepo.GetMovements(menuID, page, pageSize)
	if err != nil {
		return nil, 0, storageError("listing stock movements", err)
	}
	return movements, total, nil
}

func (s *menuService) ListCategories() ([]models.Category, error) {
	categories, err := s.menuRepo.ListCategories()
	if err != nil {
		return nil, storageError("listing categories", err)
	}
	return categories, nil
}

func (s *menuService) CreateCategory(req CategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	category := &models.Category{Name: name}
	if _, err := s.menuRepo.CreateCategory(s.db, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCategoryExists
		}
		return nil, storageError("creating category", err)
	}
	return category, nil
}

func (s *menuService) UpdateCategory(id int64, req CategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	category := &models.Category{ID: id, Name: name}
	if err := s.menuRepo.UpdateCategory(s.db, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCategoryExists
		}
		return nil, mapNotFound(err, ErrCategoryNotFound, "updating category")
	}
	return category, nil
}

func (s *menuService) DeleteCategory(id int64) error {
	if err := s.menuRepo.DeleteCategory(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return ErrCategoryInUse
		}
		return mapNotFound(err, ErrCategoryNotFound, "deleting category")
	}
	return nil
}
