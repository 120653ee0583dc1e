package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/internal/domain/repository"
	"github.com/tillbook/tillbook-api/pkg/apperror"
	"github.com/tillbook/tillbook-api/pkg/pagination"
)

// MenuService handles the menu catalog
type MenuService struct {
	menuRepo repository.MenuItemRepository
}

// NewMenuService creates a new menu service
func NewMenuService(menuRepo repository.MenuItemRepository) *MenuService {
	return &MenuService{menuRepo: menuRepo}
}

// CreateMenuItemInput represents the create menu item input
type CreateMenuItemInput struct {
	Name      string
	Category  string
	Price     int64 // paise
	Available bool
}

// CreateMenuItem adds an item to the menu
func (s *MenuService) CreateMenuItem(ctx context.Context, input *CreateMenuItemInput) (*entity.MenuItem, error) {
	if input.Price <= 0 {
		return nil, apperror.NewBadRequestError("Price must be positive")
	}

	item := &entity.MenuItem{
		Name:      input.Name,
		Category:  input.Category,
		Price:     input.Price,
		Available: input.Available,
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetMenuItem retrieves a menu item by ID
func (s *MenuService) GetMenuItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

// ListMenuItems lists menu items with pagination and filters
func (s *MenuService) ListMenuItems(ctx context.Context, params *pagination.PaginationParams, search, category string, availableOnly bool) (*pagination.PaginatedResult[entity.MenuItem], error) {
	items, total, err := s.menuRepo.List(ctx, params, search, category, availableOnly)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// ListCategories lists the distinct menu categories
func (s *MenuService) ListCategories(ctx context.Context) ([]string, error) {
	return s.menuRepo.Categories(ctx)
}

// UpdateMenuItemInput represents the update menu item input
type UpdateMenuItemInput struct {
	Name      *string
	Category  *string
	Price     *int64
	Available *bool
}

// UpdateMenuItem updates a menu item
func (s *MenuService) UpdateMenuItem(ctx context.Context, id uuid.UUID, input *UpdateMenuItemInput) (*entity.MenuItem, error) {
	item, err := s.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, apperror.NewBadRequestError("Price must be positive")
		}
		item.Price = *input.Price
	}
	if input.Available != nil {
		item.Available = *input.Available
	}

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMenuItem removes a menu item
func (s *MenuService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetMenuItem(ctx, id); err != nil {
		return err
	}
	return s.menuRepo.Delete(ctx, id)
}
