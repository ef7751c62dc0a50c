package dto

import "time"

// RestaurantRequest is used for create and update. On update omitted fields
// keep their stored values.
type RestaurantRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=32"`
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
	OpeningTime *string `json:"opening_time"`
	ClosingTime *string `json:"closing_time"`
	CuisineType *string `json:"cuisine_type" validate:"omitempty,max=100"`
	IsActive    *bool   `json:"is_active"`
}

type RestaurantResponse struct {
	RestaurantID int64     `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	PhoneNumber  string    `json:"phone_number"`
	Email        string    `json:"email"`
	OpeningTime  string    `json:"opening_time"`
	ClosingTime  string    `json:"closing_time"`
	CuisineType  string    `json:"cuisine_type"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// RestaurantSummary is the restaurant projection embedded in joined reads.
type RestaurantSummary struct {
	RestaurantID int64  `json:"restaurant_id"`
	Name         string `json:"name"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	Email        string `json:"email,omitempty"`
}

type CategoryRequest struct {
	RestaurantID *int64  `json:"restaurant_id" validate:"omitempty,gt=0"`
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description  *string `json:"description"`
	IsActive     *bool   `json:"is_active"`
}

type CategoryResponse struct {
	CategoryID   int64              `json:"category_id"`
	RestaurantID int64              `json:"restaurant_id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	IsActive     bool               `json:"is_active"`
	CreatedAt    time.Time          `json:"created_at"`
	Restaurant   *RestaurantSummary `json:"restaurant,omitempty"`
}

// CategorySummary is the category projection embedded in menu item reads.
type CategorySummary struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}

type MenuItemRequest struct {
	RestaurantID *int64   `json:"restaurant_id" validate:"omitempty,gt=0"`
	CategoryID   *int64   `json:"category_id" validate:"omitempty,gt=0"`
	Name         *string  `json:"name" validate:"omitempty,min=1,max=150"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	IsAvailable  *bool    `json:"is_available"`
}

type MenuItemResponse struct {
	MenuItemID   int64              `json:"menu_item_id"`
	RestaurantID int64              `json:"restaurant_id"`
	CategoryID   int64              `json:"category_id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Price        float64            `json:"price"`
	IsAvailable  bool               `json:"is_available"`
	CreatedAt    time.Time          `json:"created_at"`
	Restaurant   *RestaurantSummary `json:"restaurant,omitempty"`
	Category     *CategorySummary   `json:"category,omitempty"`
}
