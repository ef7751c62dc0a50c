package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

// MenuService manages categories and menu items.
type MenuService struct {
	categories repository.CategoryRepository
	menuItems  repository.MenuItemRepository
}

func NewMenuService(categories repository.CategoryRepository, menuItems repository.MenuItemRepository) *MenuService {
	return &MenuService{categories: categories, menuItems: menuItems}
}

// CategoryInput is shared by create and update.
type CategoryInput struct {
	RestaurantID *int64
	Name         *string
	Description  *string
	IsActive     *bool
}

// MenuItemInput is shared by create and update.
type MenuItemInput struct {
	RestaurantID *int64
	CategoryID   *int64
	Name         *string
	Description  *string
	Price        *float64
	IsAvailable  *bool
}

func (s *MenuService) ListCategories(ctx context.Context, filter repository.CategoryFilter) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}

func (s *MenuService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Category", "category_id", id)
	}
	return category, nil
}

func (s *MenuService) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	category := &domain.Category{IsActive: true}
	applyCategory(category, in)
	if category.RestaurantID <= 0 {
		return nil, invalid("restaurant_id", "is required")
	}
	if category.Name == "" {
		return nil, invalid("name", "is required")
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.GetCategory(ctx, category.ID)
}

func (s *MenuService) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Category", "category_id", id)
	}
	applyCategory(category, in)
	if category.Name == "" {
		return nil, invalid("name", "must not be empty")
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, lookupErr(err, "Category", "category_id", id)
	}
	return s.GetCategory(ctx, id)
}

func (s *MenuService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return lookupErr(err, "Category", "category_id", id)
	}
	return nil
}

func applyCategory(c *domain.Category, in CategoryInput) {
	if in.RestaurantID != nil {
		c.RestaurantID = *in.RestaurantID
	}
	setString(&c.Name, in.Name)
	setString(&c.Description, in.Description)
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
}

func (s *MenuService) ListMenuItems(ctx context.Context, filter repository.MenuItemFilter) ([]domain.MenuItem, error) {
	items, err := s.menuItems.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

func (s *MenuService) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	item, err := s.menuItems.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Menu item", "menu_item_id", id)
	}
	return item, nil
}

func (s *MenuService) CreateMenuItem(ctx context.Context, in MenuItemInput) (*domain.MenuItem, error) {
	item := &domain.MenuItem{IsAvailable: true}
	applyMenuItem(item, in)
	switch {
	case item.RestaurantID <= 0:
		return nil, invalid("restaurant_id", "is required")
	case item.CategoryID <= 0:
		return nil, invalid("category_id", "is required")
	case item.Name == "":
		return nil, invalid("name", "is required")
	case in.Price == nil:
		return nil, invalid("price", "is required")
	}
	if err := s.validateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	if err := s.menuItems.Create(ctx, item); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.GetMenuItem(ctx, item.ID)
}

func (s *MenuService) UpdateMenuItem(ctx context.Context, id int64, in MenuItemInput) (*domain.MenuItem, error) {
	item, err := s.menuItems.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Menu item", "menu_item_id", id)
	}
	applyMenuItem(item, in)
	if item.Name == "" {
		return nil, invalid("name", "must not be empty")
	}
	if err := s.validateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	if err := s.menuItems.Update(ctx, item); err != nil {
		return nil, lookupErr(err, "Menu item", "menu_item_id", id)
	}
	return s.GetMenuItem(ctx, id)
}

func (s *MenuService) DeleteMenuItem(ctx context.Context, id int64) error {
	if err := s.menuItems.Delete(ctx, id); err != nil {
		return lookupErr(err, "Menu item", "menu_item_id", id)
	}
	return nil
}

// validateMenuItem checks the price and that the category belongs to the same
// restaurant. A missing category is left to the foreign key.
func (s *MenuService) validateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	if item.Price < 0 {
		return invalid("price", "must not be negative")
	}
	category, err := s.categories.GetByID(ctx, item.CategoryID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return apperrors.MapError(err)
	}
	if category.RestaurantID != item.RestaurantID {
		return invalid("category_id", "category belongs to a different restaurant")
	}
	return nil
}

func applyMenuItem(m *domain.MenuItem, in MenuItemInput) {
	if in.RestaurantID != nil {
		m.RestaurantID = *in.RestaurantID
	}
	if in.CategoryID != nil {
		m.CategoryID = *in.CategoryID
	}
	setString(&m.Name, in.Name)
	setString(&m.Description, in.Description)
	if in.Price != nil {
		m.Price = *in.Price
	}
	if in.IsAvailable != nil {
		m.IsAvailable = *in.IsAvailable
	}
}
