package domain

import "time"

// OrderType describes how an order is fulfilled.
type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDelivery OrderType = "delivery"
)

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery:
		return true
	}
	return false
}

// OrderStatus represents lifecycle states of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderCustomer is the customer projection joined onto order reads.
type OrderCustomer struct {
	ID          int64
	Name        string
	Email       string
	PhoneNumber string
}

// Order is a customer's order at a restaurant.
type Order struct {
	ID           int64
	RestaurantID int64
	CustomerID   int64
	OrderType    OrderType
	Status       OrderStatus
	TotalAmount  float64
	CreatedAt    time.Time

	Restaurant *Restaurant
	Customer   *OrderCustomer
}
