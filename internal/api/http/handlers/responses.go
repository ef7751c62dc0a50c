package handlers

import (
	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/domain"
)

func userResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		UserID:      u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		UserType:    u.UserType,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func restaurantResponse(r *domain.Restaurant) dto.RestaurantResponse {
	return dto.RestaurantResponse{
		RestaurantID: r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Address:      r.Address,
		City:         r.City,
		PhoneNumber:  r.PhoneNumber,
		Email:        r.Email,
		OpeningTime:  r.OpeningTime,
		ClosingTime:  r.ClosingTime,
		CuisineType:  r.CuisineType,
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
	}
}

func restaurantSummary(r *domain.Restaurant) *dto.RestaurantSummary {
	if r == nil {
		return nil
	}
	return &dto.RestaurantSummary{
		RestaurantID: r.ID,
		Name:         r.Name,
		Address:      r.Address,
		City:         r.City,
		PhoneNumber:  r.PhoneNumber,
		Email:        r.Email,
	}
}

func categoryResponse(c *domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		CategoryID:   c.ID,
		RestaurantID: c.RestaurantID,
		Name:         c.Name,
		Description:  c.Description,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		Restaurant:   restaurantSummary(c.Restaurant),
	}
}

func menuItemResponse(m *domain.MenuItem) dto.MenuItemResponse {
	resp := dto.MenuItemResponse{
		MenuItemID:   m.ID,
		RestaurantID: m.RestaurantID,
		CategoryID:   m.CategoryID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		IsAvailable:  m.IsAvailable,
		CreatedAt:    m.CreatedAt,
		Restaurant:   restaurantSummary(m.Restaurant),
	}
	if m.Category != nil {
		resp.Category = &dto.CategorySummary{CategoryID: m.Category.ID, Name: m.Category.Name}
	}
	return resp
}

func orderResponse(o *domain.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		OrderID:      o.ID,
		RestaurantID: o.RestaurantID,
		CustomerID:   o.CustomerID,
		OrderType:    o.OrderType,
		Status:       o.Status,
		TotalAmount:  o.TotalAmount,
		CreatedAt:    o.CreatedAt,
		Restaurant:   restaurantSummary(o.Restaurant),
	}
	if o.Customer != nil {
		resp.Customer = &dto.OrderCustomerSummary{
			CustomerID:  o.Customer.ID,
			Name:        o.Customer.Name,
			Email:       o.Customer.Email,
			PhoneNumber: o.Customer.PhoneNumber,
		}
	}
	return resp
}

func orderItemResponse(i *domain.OrderItem) dto.OrderItemResponse {
	resp := dto.OrderItemResponse{
		OrderItemID: i.ID,
		OrderID:     i.OrderID,
		MenuItemID:  i.MenuItemID,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		TotalPrice:  i.TotalPrice,
	}
	if i.Order != nil {
		order := orderResponse(i.Order)
		resp.Order = &order
	}
	if i.MenuItem != nil {
		menuItem := menuItemResponse(i.MenuItem)
		resp.MenuItem = &menuItem
	}
	return resp
}

// mapSlice converts a list with fn, never returning nil so lists encode as [].
func mapSlice[T, R any](items []T, fn func(*T) R) []R {
	out := make([]R, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	return out
}
