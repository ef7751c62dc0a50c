package domain

import "time"

// Category groups menu items of a restaurant.
type Category struct {
	ID           int64
	RestaurantID int64
	Name         string
	Description  string
	IsActive     bool
	CreatedAt    time.Time

	// Restaurant is populated on joined reads.
	Restaurant *Restaurant
}
