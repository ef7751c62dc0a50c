package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderPlaced  EventType = "order_placed"
	EventOrderUpdated EventType = "order_updated"
	EventOrderDeleted EventType = "order_deleted"
)

// Actor identifies who triggered an event.
type Actor struct {
	UserID   int64       `json:"user_id"`
	UserType domain.Role `json:"user_type"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	OrderID   int64     `json:"order_id"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, orderID int64, actor Actor, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		OrderID:   orderID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	RestaurantID int64            `json:"restaurant_id"`
	CustomerID   int64            `json:"customer_id"`
	OrderType    domain.OrderType `json:"order_type"`
	TotalAmount  float64          `json:"total_amount"`
}

// OrderUpdatedPayload payload.
type OrderUpdatedPayload struct {
	OldStatus   domain.OrderStatus `json:"old_status"`
	NewStatus   domain.OrderStatus `json:"new_status"`
	TotalAmount float64            `json:"total_amount"`
}

// OrderDeletedPayload payload.
type OrderDeletedPayload struct {
	RestaurantID int64 `json:"restaurant_id"`
	CustomerID   int64 `json:"customer_id"`
}
