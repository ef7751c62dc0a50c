package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// MenuItemFilter narrows menu listings.
type MenuItemFilter struct {
	RestaurantID  *int64
	CategoryID    *int64
	AvailableOnly bool
}

// MenuItemRepository persists menu items.
type MenuItemRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.MenuItem, error)
	List(ctx context.Context, filter MenuItemFilter) ([]domain.MenuItem, error)
}

type menuItemRepository struct {
	pool *pgxpool.Pool
}

func NewMenuItemRepository(pool *pgxpool.Pool) MenuItemRepository {
	return &menuItemRepository{pool: pool}
}

const menuItemSelect = `
        SELECT m.menu_item_id, m.restaurant_id, m.category_id, m.name, m.description,
               m.price, m.is_available, m.created_at,
               r.name, r.city, c.name
        FROM menu_items m
        JOIN restaurants r ON r.restaurant_id = m.restaurant_id
        JOIN categories c ON c.category_id = m.category_id`

func (r *menuItemRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	const query = `
        INSERT INTO menu_items (restaurant_id, category_id, name, description, price, is_available)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING menu_item_id, created_at`

	err := r.pool.QueryRow(ctx, query,
		item.RestaurantID,
		item.CategoryID,
		item.Name,
		item.Description,
		item.Price,
		item.IsAvailable,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

func (r *menuItemRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	const query = `
        UPDATE menu_items
        SET restaurant_id=$1, category_id=$2, name=$3, description=$4, price=$5, is_available=$6
        WHERE menu_item_id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		item.RestaurantID,
		item.CategoryID,
		item.Name,
		item.Description,
		item.Price,
		item.IsAvailable,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update menu item %d: %w", item.ID, err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *menuItemRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE menu_item_id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item %d: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *menuItemRepository) GetByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.pool.QueryRow(ctx, menuItemSelect+` WHERE m.menu_item_id=$1`, id))
	if err != nil {
		return nil, fmt.Errorf("get menu item %d: %w", id, err)
	}
	return item, nil
}

func (r *menuItemRepository) List(ctx context.Context, filter MenuItemFilter) ([]domain.MenuItem, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.RestaurantID != nil {
		args = append(args, *filter.RestaurantID)
		clauses = append(clauses, fmt.Sprintf("m.restaurant_id=$%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("m.category_id=$%d", len(args)))
	}
	if filter.AvailableOnly {
		clauses = append(clauses, "m.is_available")
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY m.restaurant_id, m.category_id, m.name`,
		menuItemSelect, strings.Join(clauses, " AND "))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var result []domain.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, rows.Err()
}

func scanMenuItem(row pgx.Row) (*domain.MenuItem, error) {
	var (
		item       domain.MenuItem
		restaurant domain.Restaurant
		category   domain.Category
	)
	if err := row.Scan(
		&item.ID,
		&item.RestaurantID,
		&item.CategoryID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.IsAvailable,
		&item.CreatedAt,
		&restaurant.Name,
		&restaurant.City,
		&category.Name,
	); err != nil {
		return nil, err
	}
	restaurant.ID = item.RestaurantID
	category.ID = item.CategoryID
	category.RestaurantID = item.RestaurantID
	item.Restaurant = &restaurant
	item.Category = &category
	return &item, nil
}
