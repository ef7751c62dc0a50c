package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// OrderFilter narrows order listings.
type OrderFilter struct {
	CustomerID   *int64
	RestaurantID *int64
	Statuses     []domain.OrderStatus
}

// OrderRepository persists orders and reads them joined with restaurant and customer.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderSelect = `
        SELECT o.order_id, o.restaurant_id, o.customer_id, o.order_type, o.status,
               o.total_amount, o.created_at,
               r.name, r.address, r.city, r.phone_number, r.email,
               u.first_name || ' ' || u.last_name, u.email, u.phone_number
        FROM orders o
        JOIN restaurants r ON r.restaurant_id = o.restaurant_id
        JOIN users u ON u.user_id = o.customer_id`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (restaurant_id, customer_id, order_type, status, total_amount)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING order_id, created_at`

	err := r.pool.QueryRow(ctx, query,
		order.RestaurantID,
		order.CustomerID,
		order.OrderType,
		order.Status,
		order.TotalAmount,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	const query = `
        UPDATE orders SET restaurant_id=$1, customer_id=$2, order_type=$3, status=$4, total_amount=$5
        WHERE order_id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		order.RestaurantID,
		order.CustomerID,
		order.OrderType,
		order.Status,
		order.TotalAmount,
		order.ID,
	)
	if err != nil {
		return fmt.Errorf("update order %d: %w", order.ID, err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE order_id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, orderSelect+` WHERE o.order_id=$1`, id))
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("o.customer_id=$%d", len(args)))
	}
	if filter.RestaurantID != nil {
		args = append(args, *filter.RestaurantID)
		clauses = append(clauses, fmt.Sprintf("o.restaurant_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("o.status IN (%s)", strings.Join(placeholders, ",")))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY o.created_at DESC, o.order_id DESC`,
		orderSelect, strings.Join(clauses, " AND "))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	return result, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order      domain.Order
		restaurant domain.Restaurant
		customer   domain.OrderCustomer
	)
	if err := row.Scan(
		&order.ID,
		&order.RestaurantID,
		&order.CustomerID,
		&order.OrderType,
		&order.Status,
		&order.TotalAmount,
		&order.CreatedAt,
		&restaurant.Name,
		&restaurant.Address,
		&restaurant.City,
		&restaurant.PhoneNumber,
		&restaurant.Email,
		&customer.Name,
		&customer.Email,
		&customer.PhoneNumber,
	); err != nil {
		return nil, err
	}
	restaurant.ID = order.RestaurantID
	customer.ID = order.CustomerID
	order.Restaurant = &restaurant
	order.Customer = &customer
	return &order, nil
}
