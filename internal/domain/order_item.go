package domain

import "math"

// OrderItem is a line of an order.
type OrderItem struct {
	ID         int64
	OrderID    int64
	MenuItemID int64
	Quantity   int
	UnitPrice  float64
	TotalPrice float64

	Order    *Order
	MenuItem *MenuItem
}

// LineTotal returns quantity times unit price rounded to cents.
func LineTotal(quantity int, unitPrice float64) float64 {
	return math.Round(float64(quantity)*unitPrice*100) / 100
}
