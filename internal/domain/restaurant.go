package domain

import "time"

// Restaurant is a venue that owns categories, menu items and orders.
type Restaurant struct {
	ID          int64
	Name        string
	Description string
	Address     string
	City        string
	PhoneNumber string
	Email       string
	OpeningTime string
	ClosingTime string
	CuisineType string
	IsActive    bool
	CreatedAt   time.Time
}
