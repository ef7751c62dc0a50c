package repofake

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
)

// OrderRepo is the in-memory orders table.
type OrderRepo struct{ s *Store }

func (r *OrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	if err := r.checkRefs(order); err != nil {
		return err
	}
	order.ID = r.s.nextID()
	order.CreatedAt = r.s.stamp()
	stored := *order
	stored.Restaurant, stored.Customer = nil, nil
	r.s.orders[order.ID] = stored
	return nil
}

func (r *OrderRepo) Update(_ context.Context, order *domain.Order) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	existing, ok := r.s.orders[order.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if err := r.checkRefs(order); err != nil {
		return err
	}
	stored := *order
	stored.CreatedAt = existing.CreatedAt
	stored.Restaurant, stored.Customer = nil, nil
	r.s.orders[order.ID] = stored
	return nil
}

func (r *OrderRepo) checkRefs(order *domain.Order) error {
	if _, ok := r.s.restaurants[order.RestaurantID]; !ok {
		return fkViolation("orders_restaurant_id_fkey")
	}
	if _, ok := r.s.users[order.CustomerID]; !ok {
		return fkViolation("orders_customer_id_fkey")
	}
	return nil
}

// Delete cascades to the order's items.
func (r *OrderRepo) Delete(_ context.Context, id int64) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	if _, ok := r.s.orders[id]; !ok {
		return pgx.ErrNoRows
	}
	for itemID, item := range r.s.orderItems {
		if item.OrderID == id {
			delete(r.s.orderItems, itemID)
		}
	}
	delete(r.s.orders, id)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()

	order, ok := r.s.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r.s.joinOrder(order), nil
}

func (r *OrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()

	var result []domain.Order
	for _, order := range r.s.orders {
		if filter.CustomerID != nil && order.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.RestaurantID != nil && order.RestaurantID != *filter.RestaurantID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, order.Status) {
			continue
		}
		result = append(result, *r.s.joinOrder(order))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func containsStatus(statuses []domain.OrderStatus, status domain.OrderStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s *Store) joinOrder(order domain.Order) *domain.Order {
	restaurant := s.restaurants[order.RestaurantID]
	customer := s.users[order.CustomerID]
	order.Restaurant = &domain.Restaurant{
		ID:          restaurant.ID,
		Name:        restaurant.Name,
		Address:     restaurant.Address,
		City:        restaurant.City,
		PhoneNumber: restaurant.PhoneNumber,
		Email:       restaurant.Email,
	}
	order.Customer = &domain.OrderCustomer{
		ID:          customer.ID,
		Name:        customer.FirstName + " " + customer.LastName,
		Email:       customer.Email,
		PhoneNumber: customer.PhoneNumber,
	}
	return &order
}

// OrderItemRepo is the in-memory order_items table.
type OrderItemRepo struct{ s *Store }

func (r *OrderItemRepo) Create(_ context.Context, item *domain.OrderItem) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	if err := r.checkRefs(item); err != nil {
		return err
	}
	item.ID = r.s.nextID()
	stored := *item
	stored.Order, stored.MenuItem = nil, nil
	r.s.orderItems[item.ID] = stored
	return nil
}

func (r *OrderItemRepo) Update(_ context.Context, item *domain.OrderItem) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	if _, ok := r.s.orderItems[item.ID]; !ok {
		return pgx.ErrNoRows
	}
	if err := r.checkRefs(item); err != nil {
		return err
	}
	stored := *item
	stored.Order, stored.MenuItem = nil, nil
	r.s.orderItems[item.ID] = stored
	return nil
}

func (r *OrderItemRepo) checkRefs(item *domain.OrderItem) error {
	if _, ok := r.s.orders[item.OrderID]; !ok {
		return fkViolation("order_items_order_id_fkey")
	}
	if _, ok := r.s.menuItems[item.MenuItemID]; !ok {
		return fkViolation("order_items_menu_item_id_fkey")
	}
	return nil
}

func (r *OrderItemRepo) Delete(_ context.Context, id int64) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	if _, ok := r.s.orderItems[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.orderItems, id)
	return nil
}

func (r *OrderItemRepo) GetByID(_ context.Context, id int64) (*domain.OrderItem, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()

	item, ok := r.s.orderItems[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r.s.joinOrderItem(item), nil
}

func (r *OrderItemRepo) List(_ context.Context, filter repository.OrderItemFilter) ([]domain.OrderItem, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()

	var result []domain.OrderItem
	keys := sortedKeys(r.s.orderItems)
	for i := len(keys) - 1; i >= 0; i-- {
		item := r.s.orderItems[keys[i]]
		if filter.OrderID != nil && item.OrderID != *filter.OrderID {
			continue
		}
		if filter.CustomerID != nil && r.s.orders[item.OrderID].CustomerID != *filter.CustomerID {
			continue
		}
		result = append(result, *r.s.joinOrderItem(item))
	}
	return result, nil
}

func (s *Store) joinOrderItem(item domain.OrderItem) *domain.OrderItem {
	order := s.orders[item.OrderID]
	menuItem := s.menuItems[item.MenuItemID]
	order.Restaurant, order.Customer = nil, nil
	menuItem.Restaurant, menuItem.Category = nil, nil
	item.Order = &order
	item.MenuItem = &menuItem
	return &item
}
