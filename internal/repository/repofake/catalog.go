package repofake

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
)

// RestaurantRepo is the in-memory restaurants table.
type RestaurantRepo struct{ s *Store }

func (r *RestaurantRepo) Create(_ context.Context, restaurant *domain.Restaurant) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	restaurant.ID = r.s.nextID()
	restaurant.CreatedAt = r.s.stamp()
	r.s.restaurants[restaurant.ID] = *restaurant
	return nil
}

func (r *RestaurantRepo) Update(_ context.Context, restaurant *domain.Restaurant) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	existing, ok := r.s.restaurants[restaurant.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	restaurant.CreatedAt = existing.CreatedAt
	r.s.restaurants[restaurant.ID] = *restaurant
	return nil
}

func (r *RestaurantRepo) Delete(_ context.Context, id int64) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	if _, ok := r.s.restaurants[id]; !ok {
		return pgx.ErrNoRows
	}
	for _, c := range r.s.categories {
		if c.RestaurantID == id {
			return fkViolation("categories_restaurant_id_fkey")
		}
	}
	for _, m := range r.s.menuItems {
		if m.RestaurantID == id {
			return fkViolation("menu_items_restaurant_id_fkey")
		}
	}
	for _, o := range r.s.orders {
		if o.RestaurantID == id {
			return fkViolation("orders_restaurant_id_fkey")
		}
	}
	delete(r.s.restaurants, id)
	return nil
}

func (r *RestaurantRepo) GetByID(_ context.Context, id int64) (*domain.Restaurant, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()

	restaurant, ok := r.s.restaurants[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &restaurant, nil
}

func (r *RestaurantRepo) List(_ context.Context) ([]domain.Restaurant, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()

	var result []domain.Restaurant
	for _, id := range sortedKeys(r.s.restaurants) {
		result = append(result, r.s.restaurants[id])
	}
	return result, nil
}

// CategoryRepo is the in-memory categories table.
type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	if _, ok := r.s.restaurants[category.RestaurantID]; !ok {
		return fkViolation("categories_restaurant_id_fkey")
	}
	category.ID = r.s.nextID()
	category.CreatedAt = r.s.stamp()
	category.Restaurant = nil
	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepo) Update(_ context.Context, category *domain.Category) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	existing, ok := r.s.categories[category.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if _, ok := r.s.restaurants[category.RestaurantID]; !ok {
		return fkViolation("categories_restaurant_id_fkey")
	}
	stored := *category
	stored.CreatedAt = existing.CreatedAt
	stored.Restaurant = nil
	r.s.categories[category.ID] = stored
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, id int64) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	for _, m := range r.s.menuItems {
		if m.CategoryID == id {
			return fkViolation("menu_items_category_id_fkey")
		}
	}
	delete(r.s.categories, id)
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()

	category, ok := r.s.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r.s.joinCategory(category), nil
}

func (r *CategoryRepo) List(_ context.Context, filter repository.CategoryFilter) ([]domain.Category, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()

	var result []domain.Category
	for _, id := range sortedKeys(r.s.categories) {
		category := r.s.categories[id]
		if filter.RestaurantID != nil && category.RestaurantID != *filter.RestaurantID {
			continue
		}
		if filter.ActiveOnly && !category.IsActive {
			continue
		}
		result = append(result, *r.s.joinCategory(category))
	}
	return result, nil
}

func (s *Store) joinCategory(category domain.Category) *domain.Category {
	restaurant := s.restaurants[category.RestaurantID]
	category.Restaurant = &domain.Restaurant{ID: restaurant.ID, Name: restaurant.Name, City: restaurant.City}
	return &category
}

// MenuItemRepo is the in-memory menu_items table.
type MenuItemRepo struct{ s *Store }

func (r *MenuItemRepo) Create(_ context.Context, item *domain.MenuItem) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	if err := r.checkRefs(item); err != nil {
		return err
	}
	item.ID = r.s.nextID()
	item.CreatedAt = r.s.stamp()
	stored := *item
	stored.Restaurant, stored.Category = nil, nil
	r.s.menuItems[item.ID] = stored
	return nil
}

func (r *MenuItemRepo) Update(_ context.Context, item *domain.MenuItem) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	existing, ok := r.s.menuItems[item.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if err := r.checkRefs(item); err != nil {
		return err
	}
	stored := *item
	stored.CreatedAt = existing.CreatedAt
	stored.Restaurant, stored.Category = nil, nil
	r.s.menuItems[item.ID] = stored
	return nil
}

func (r *MenuItemRepo) checkRefs(item *domain.MenuItem) error {
	if _, ok := r.s.restaurants[item.RestaurantID]; !ok {
		return fkViolation("menu_items_restaurant_id_fkey")
	}
	if _, ok := r.s.categories[item.CategoryID]; !ok {
		return fkViolation("menu_items_category_id_fkey")
	}
	return nil
}

func (r *MenuItemRepo) Delete(_ context.Context, id int64) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	if _, ok := r.s.menuItems[id]; !ok {
		return pgx.ErrNoRows
	}
	for _, oi := range r.s.orderItems {
		if oi.MenuItemID == id {
			return fkViolation("order_items_menu_item_id_fkey")
		}
	}
	delete(r.s.menuItems, id)
	return nil
}

func (r *MenuItemRepo) GetByID(_ context.Context, id int64) (*domain.MenuItem, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()

	item, ok := r.s.menuItems[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r.s.joinMenuItem(item), nil
}

func (r *MenuItemRepo) List(_ context.Context, filter repository.MenuItemFilter) ([]domain.MenuItem, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()

	var result []domain.MenuItem
	for _, id := range sortedKeys(r.s.menuItems) {
		item := r.s.menuItems[id]
		if filter.RestaurantID != nil && item.RestaurantID != *filter.RestaurantID {
			continue
		}
		if filter.CategoryID != nil && item.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.AvailableOnly && !item.IsAvailable {
			continue
		}
		result = append(result, *r.s.joinMenuItem(item))
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].RestaurantID < result[j].RestaurantID })
	return result, nil
}

func (s *Store) joinMenuItem(item domain.MenuItem) *domain.MenuItem {
	restaurant := s.restaurants[item.RestaurantID]
	category := s.categories[item.CategoryID]
	item.Restaurant = &domain.Restaurant{ID: restaurant.ID, Name: restaurant.Name, City: restaurant.City}
	item.Category = &domain.Category{ID: category.ID, RestaurantID: category.RestaurantID, Name: category.Name}
	return &item
}
