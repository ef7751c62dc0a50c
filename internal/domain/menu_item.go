package domain

import "time"

// MenuItem is an orderable dish.
type MenuItem struct {
	ID           int64
	RestaurantID int64
	CategoryID   int64
	Name         string
	Description  string
	Price        float64
	IsAvailable  bool
	CreatedAt    time.Time

	Restaurant *Restaurant
	Category   *Category
}
