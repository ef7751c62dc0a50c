package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

// OrderService coordinates orders and their line items.
type OrderService struct {
	orders     repository.OrderRepository
	items      repository.OrderItemRepository
	menuItems  repository.MenuItemRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// OrderDependencies bundles repositories for the order service.
type OrderDependencies struct {
	OrderRepo     repository.OrderRepository
	OrderItemRepo repository.OrderItemRepository
	MenuItemRepo  repository.MenuItemRepository
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

func NewOrderService(deps OrderDependencies) *OrderService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orders:     deps.OrderRepo,
		items:      deps.OrderItemRepo,
		menuItems:  deps.MenuItemRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// OrderInput is shared by create and update. For customers CustomerID is
// ignored and the caller's own id is used.
type OrderInput struct {
	RestaurantID *int64
	CustomerID   *int64
	OrderType    *domain.OrderType
	Status       *domain.OrderStatus
	TotalAmount  *float64
}

// OrderItemInput is shared by create and update. When UnitPrice is nil the
// menu item's current price is used.
type OrderItemInput struct {
	OrderID    *int64
	MenuItemID *int64
	Quantity   *int
	UnitPrice  *float64
}

func (s *OrderService) ListOrders(ctx context.Context, caller Caller, filter repository.OrderFilter) ([]domain.Order, error) {
	if !caller.IsAdmin() {
		id := caller.UserID
		filter.CustomerID = &id
	}
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, caller Caller, id int64) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Order", "order_id", id)
	}
	if !caller.owns(order.CustomerID) {
		return nil, errForbidden
	}
	return order, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, caller Caller, in OrderInput) (*domain.Order, error) {
	order := &domain.Order{Status: domain.OrderStatusPending}
	if err := applyOrder(order, in); err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		order.CustomerID = caller.UserID
	}
	switch {
	case order.RestaurantID <= 0:
		return nil, invalid("restaurant_id", "is required")
	case order.CustomerID <= 0:
		return nil, invalid("customer_id", "is required")
	case order.OrderType == "":
		return nil, invalid("order_type", "is required")
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}
	created, err := s.orders.GetByID(ctx, order.ID)
	if err != nil {
		return nil, lookupErr(err, "Order", "order_id", order.ID)
	}

	s.logger.Info("order placed",
		zap.Int64("order_id", created.ID),
		zap.Int64("restaurant_id", created.RestaurantID),
		zap.Int64("customer_id", created.CustomerID))
	publish(ctx, s.dispatcher, events.NewEvent(events.EventOrderPlaced, created.ID, caller.actor(), events.OrderPlacedPayload{
		RestaurantID: created.RestaurantID,
		CustomerID:   created.CustomerID,
		OrderType:    created.OrderType,
		TotalAmount:  created.TotalAmount,
	}))
	return created, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, caller Caller, id int64, in OrderInput) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	oldStatus := order.Status
	if !caller.IsAdmin() {
		in.CustomerID = nil
	}
	if err := applyOrder(order, in); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, lookupErr(err, "Order", "order_id", id)
	}
	updated, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Order", "order_id", id)
	}

	publish(ctx, s.dispatcher, events.NewEvent(events.EventOrderUpdated, id, caller.actor(), events.OrderUpdatedPayload{
		OldStatus:   oldStatus,
		NewStatus:   updated.Status,
		TotalAmount: updated.TotalAmount,
	}))
	return updated, nil
}

// DeleteOrder removes the order; its items go with it.
func (s *OrderService) DeleteOrder(ctx context.Context, caller Caller, id int64) error {
	order, err := s.GetOrder(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return lookupErr(err, "Order", "order_id", id)
	}
	publish(ctx, s.dispatcher, events.NewEvent(events.EventOrderDeleted, id, caller.actor(), events.OrderDeletedPayload{
		RestaurantID: order.RestaurantID,
		CustomerID:   order.CustomerID,
	}))
	return nil
}

func applyOrder(o *domain.Order, in OrderInput) error {
	if in.RestaurantID != nil {
		o.RestaurantID = *in.RestaurantID
	}
	if in.CustomerID != nil {
		o.CustomerID = *in.CustomerID
	}
	if in.OrderType != nil {
		if !in.OrderType.Valid() {
			return invalid("order_type", "must be one of dine_in, takeaway, delivery")
		}
		o.OrderType = *in.OrderType
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return invalid("status", "must be one of pending, confirmed, preparing, ready, completed, cancelled")
		}
		o.Status = *in.Status
	}
	if in.TotalAmount != nil {
		if *in.TotalAmount < 0 || math.IsNaN(*in.TotalAmount) {
			return invalid("total_amount", "must not be negative")
		}
		o.TotalAmount = *in.TotalAmount
	}
	return nil
}

// ListOrderItems returns items newest first. Customers only see items of their
// own orders.
func (s *OrderService) ListOrderItems(ctx context.Context, caller Caller, filter repository.OrderItemFilter) ([]domain.OrderItem, error) {
	if !caller.IsAdmin() {
		id := caller.UserID
		filter.CustomerID = &id
	}
	items, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

func (s *OrderService) GetOrderItem(ctx context.Context, caller Caller, id int64) (*domain.OrderItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Order item", "order_item_id", id)
	}
	if !caller.owns(item.Order.CustomerID) {
		return nil, errForbidden
	}
	return item, nil
}

func (s *OrderService) CreateOrderItem(ctx context.Context, caller Caller, in OrderItemInput) (*domain.OrderItem, error) {
	switch {
	case in.OrderID == nil || *in.OrderID <= 0:
		return nil, invalid("order_id", "is required")
	case in.MenuItemID == nil || *in.MenuItemID <= 0:
		return nil, invalid("menu_item_id", "is required")
	case in.Quantity == nil:
		return nil, invalid("quantity", "is required")
	}

	order, err := s.GetOrder(ctx, caller, *in.OrderID)
	if err != nil {
		return nil, err
	}

	item := &domain.OrderItem{}
	if err := s.applyOrderItem(ctx, item, in, order); err != nil {
		return nil, err
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.GetOrderItem(ctx, caller, item.ID)
}

func (s *OrderService) UpdateOrderItem(ctx context.Context, caller Caller, id int64, in OrderItemInput) (*domain.OrderItem, error) {
	item, err := s.GetOrderItem(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	order := item.Order
	if in.OrderID != nil && *in.OrderID != item.OrderID {
		if order, err = s.GetOrder(ctx, caller, *in.OrderID); err != nil {
			return nil, err
		}
	}
	if err := s.applyOrderItem(ctx, item, in, order); err != nil {
		return nil, err
	}
	if err := s.items.Update(ctx, item); err != nil {
		return nil, lookupErr(err, "Order item", "order_item_id", id)
	}
	return s.GetOrderItem(ctx, caller, id)
}

func (s *OrderService) DeleteOrderItem(ctx context.Context, caller Caller, id int64) error {
	if _, err := s.GetOrderItem(ctx, caller, id); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return lookupErr(err, "Order item", "order_item_id", id)
	}
	return nil
}

// applyOrderItem merges in and derives the prices. When the menu item changes
// without an explicit unit price, the new item's current price applies.
func (s *OrderService) applyOrderItem(ctx context.Context, item *domain.OrderItem, in OrderItemInput, order *domain.Order) error {
	menuItemChanged := in.MenuItemID != nil && *in.MenuItemID != item.MenuItemID
	if in.OrderID != nil {
		item.OrderID = *in.OrderID
	}
	if in.MenuItemID != nil {
		item.MenuItemID = *in.MenuItemID
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if item.Quantity <= 0 {
		return invalid("quantity", "must be greater than zero")
	}

	if menuItemChanged || in.UnitPrice == nil {
		menuItem, err := s.menuItems.GetByID(ctx, item.MenuItemID)
		if err != nil {
			return lookupErr(err, "Menu item", "menu_item_id", item.MenuItemID)
		}
		if order != nil && menuItem.RestaurantID != order.RestaurantID {
			return invalid("menu_item_id", "menu item belongs to a different restaurant")
		}
		if in.UnitPrice == nil && (menuItemChanged || item.ID == 0) {
			item.UnitPrice = menuItem.Price
		}
	}
	if in.UnitPrice != nil {
		if *in.UnitPrice < 0 {
			return invalid("unit_price", "must not be negative")
		}
		item.UnitPrice = *in.UnitPrice
	}
	item.TotalPrice = domain.LineTotal(item.Quantity, item.UnitPrice)
	return nil
}
