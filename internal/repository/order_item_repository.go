package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// OrderItemFilter narrows order item listings. CustomerID restricts to items of
// that customer's orders.
type OrderItemFilter struct {
	OrderID    *int64
	CustomerID *int64
}

// OrderItemRepository persists order lines.
type OrderItemRepository interface {
	Create(ctx context.Context, item *domain.OrderItem) error
	Update(ctx context.Context, item *domain.OrderItem) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.OrderItem, error)
	List(ctx context.Context, filter OrderItemFilter) ([]domain.OrderItem, error)
}

type orderItemRepository struct {
	pool *pgxpool.Pool
}

func NewOrderItemRepository(pool *pgxpool.Pool) OrderItemRepository {
	return &orderItemRepository{pool: pool}
}

const orderItemSelect = `
        SELECT oi.order_item_id, oi.order_id, oi.menu_item_id, oi.quantity, oi.unit_price, oi.total_price,
               o.restaurant_id, o.customer_id, o.order_type, o.status, o.total_amount, o.created_at,
               m.restaurant_id, m.category_id, m.name, m.description, m.price, m.is_available
        FROM order_items oi
        JOIN orders o ON o.order_id = oi.order_id
        JOIN menu_items m ON m.menu_item_id = oi.menu_item_id`

func (r *orderItemRepository) Create(ctx context.Context, item *domain.OrderItem) error {
	const query = `
        INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, total_price)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING order_item_id`

	err := r.pool.QueryRow(ctx, query,
		item.OrderID,
		item.MenuItemID,
		item.Quantity,
		item.UnitPrice,
		item.TotalPrice,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

func (r *orderItemRepository) Update(ctx context.Context, item *domain.OrderItem) error {
	const query = `
        UPDATE order_items SET order_id=$1, menu_item_id=$2, quantity=$3, unit_price=$4, total_price=$5
        WHERE order_item_id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		item.OrderID,
		item.MenuItemID,
		item.Quantity,
		item.UnitPrice,
		item.TotalPrice,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update order item %d: %w", item.ID, err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderItemRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM order_items WHERE order_item_id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete order item %d: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderItemRepository) GetByID(ctx context.Context, id int64) (*domain.OrderItem, error) {
	item, err := scanOrderItem(r.pool.QueryRow(ctx, orderItemSelect+` WHERE oi.order_item_id=$1`, id))
	if err != nil {
		return nil, fmt.Errorf("get order item %d: %w", id, err)
	}
	return item, nil
}

func (r *orderItemRepository) List(ctx context.Context, filter OrderItemFilter) ([]domain.OrderItem, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.OrderID != nil {
		args = append(args, *filter.OrderID)
		clauses = append(clauses, fmt.Sprintf("oi.order_id=$%d", len(args)))
	}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("o.customer_id=$%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY oi.order_item_id DESC`, orderItemSelect, strings.Join(clauses, " AND "))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var result []domain.OrderItem
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, rows.Err()
}

func scanOrderItem(row pgx.Row) (*domain.OrderItem, error) {
	var (
		item     domain.OrderItem
		order    domain.Order
		menuItem domain.MenuItem
	)
	if err := row.Scan(
		&item.ID,
		&item.OrderID,
		&item.MenuItemID,
		&item.Quantity,
		&item.UnitPrice,
		&item.TotalPrice,
		&order.RestaurantID,
		&order.CustomerID,
		&order.OrderType,
		&order.Status,
		&order.TotalAmount,
		&order.CreatedAt,
		&menuItem.RestaurantID,
		&menuItem.CategoryID,
		&menuItem.Name,
		&menuItem.Description,
		&menuItem.Price,
		&menuItem.IsAvailable,
	); err != nil {
		return nil, err
	}
	order.ID = item.OrderID
	menuItem.ID = item.MenuItemID
	item.Order = &order
	item.MenuItem = &menuItem
	return &item, nil
}
