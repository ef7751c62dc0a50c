package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// CategoryFilter narrows category listings.
type CategoryFilter struct {
	RestaurantID *int64
	ActiveOnly   bool
}

// CategoryRepository persists menu categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context, filter CategoryFilter) ([]domain.Category, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

const categorySelect = `
        SELECT c.category_id, c.restaurant_id, c.name, c.description, c.is_active, c.created_at,
               r.name, r.city
        FROM categories c
        JOIN restaurants r ON r.restaurant_id = c.restaurant_id`

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (restaurant_id, name, description, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING category_id, created_at`

	err := r.pool.QueryRow(ctx, query,
		category.RestaurantID,
		category.Name,
		category.Description,
		category.IsActive,
	).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	const query = `
        UPDATE categories SET restaurant_id=$1, name=$2, description=$3, is_active=$4
        WHERE category_id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		category.RestaurantID,
		category.Name,
		category.Description,
		category.IsActive,
		category.ID,
	)
	if err != nil {
		return fmt.Errorf("update category %d: %w", category.ID, err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE category_id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := scanCategory(r.pool.QueryRow(ctx, categorySelect+` WHERE c.category_id=$1`, id))
	if err != nil {
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return category, nil
}

func (r *categoryRepository) List(ctx context.Context, filter CategoryFilter) ([]domain.Category, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.RestaurantID != nil {
		args = append(args, *filter.RestaurantID)
		clauses = append(clauses, fmt.Sprintf("c.restaurant_id=$%d", len(args)))
	}
	if filter.ActiveOnly {
		clauses = append(clauses, "c.is_active")
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY c.restaurant_id, c.name`, categorySelect, strings.Join(clauses, " AND "))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *category)
	}
	return result, rows.Err()
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		category   domain.Category
		restaurant domain.Restaurant
	)
	if err := row.Scan(
		&category.ID,
		&category.RestaurantID,
		&category.Name,
		&category.Description,
		&category.IsActive,
		&category.CreatedAt,
		&restaurant.Name,
		&restaurant.City,
	); err != nil {
		return nil, err
	}
	restaurant.ID = category.RestaurantID
	category.Restaurant = &restaurant
	return &category, nil
}
