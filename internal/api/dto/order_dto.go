package dto

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// OrderRequest is used for create and update. customer_id is ignored for
// customers, who always order for themselves.
type OrderRequest struct {
	RestaurantID *int64              `json:"restaurant_id" validate:"omitempty,gt=0"`
	CustomerID   *int64              `json:"customer_id" validate:"omitempty,gt=0"`
	OrderType    *domain.OrderType   `json:"order_type" validate:"omitempty,oneof=dine_in takeaway delivery"`
	Status       *domain.OrderStatus `json:"status" validate:"omitempty,oneof=pending confirmed preparing ready completed cancelled"`
	TotalAmount  *float64            `json:"total_amount" validate:"omitempty,gte=0"`
}

type OrderCustomerSummary struct {
	CustomerID  int64  `json:"customer_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type OrderResponse struct {
	OrderID      int64                 `json:"order_id"`
	RestaurantID int64                 `json:"restaurant_id"`
	CustomerID   int64                 `json:"customer_id"`
	OrderType    domain.OrderType      `json:"order_type"`
	Status       domain.OrderStatus    `json:"status"`
	TotalAmount  float64               `json:"total_amount"`
	CreatedAt    time.Time             `json:"created_at"`
	Restaurant   *RestaurantSummary    `json:"restaurant,omitempty"`
	Customer     *OrderCustomerSummary `json:"customer,omitempty"`
}

// OrderItemRequest is used for create and update. unit_price defaults to the
// menu item's price and total_price is always computed.
type OrderItemRequest struct {
	OrderID    *int64   `json:"order_id" validate:"omitempty,gt=0"`
	MenuItemID *int64   `json:"menu_item_id" validate:"omitempty,gt=0"`
	Quantity   *int     `json:"quantity" validate:"omitempty,gt=0"`
	UnitPrice  *float64 `json:"unit_price" validate:"omitempty,gte=0"`
}

type OrderItemResponse struct {
	OrderItemID int64             `json:"order_item_id"`
	OrderID     int64             `json:"order_id"`
	MenuItemID  int64             `json:"menu_item_id"`
	Quantity    int               `json:"quantity"`
	UnitPrice   float64           `json:"unit_price"`
	TotalPrice  float64           `json:"total_price"`
	Order       *OrderResponse    `json:"order,omitempty"`
	MenuItem    *MenuItemResponse `json:"menu_item,omitempty"`
}
