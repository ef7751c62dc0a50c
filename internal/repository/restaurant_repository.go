package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// RestaurantRepository persists restaurants.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *domain.Restaurant) error
	Update(ctx context.Context, restaurant *domain.Restaurant) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Restaurant, error)
	List(ctx context.Context) ([]domain.Restaurant, error)
}

type restaurantRepository struct {
	pool *pgxpool.Pool
}

func NewRestaurantRepository(pool *pgxpool.Pool) RestaurantRepository {
	return &restaurantRepository{pool: pool}
}

const restaurantColumns = `restaurant_id, name, description, address, city, phone_number, email,
        opening_time, closing_time, cuisine_type, is_active, created_at`

func (r *restaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	const query = `
        INSERT INTO restaurants (name, description, address, city, phone_number, email,
                                 opening_time, closing_time, cuisine_type, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING restaurant_id, created_at`

	err := r.pool.QueryRow(ctx, query,
		restaurant.Name,
		restaurant.Description,
		restaurant.Address,
		restaurant.City,
		restaurant.PhoneNumber,
		restaurant.Email,
		restaurant.OpeningTime,
		restaurant.ClosingTime,
		restaurant.CuisineType,
		restaurant.IsActive,
	).Scan(&restaurant.ID, &restaurant.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	const query = `
        UPDATE restaurants
        SET name=$1, description=$2, address=$3, city=$4, phone_number=$5, email=$6,
            opening_time=$7, closing_time=$8, cuisine_type=$9, is_active=$10
        WHERE restaurant_id=$11
        RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		restaurant.Name,
		restaurant.Description,
		restaurant.Address,
		restaurant.City,
		restaurant.PhoneNumber,
		restaurant.Email,
		restaurant.OpeningTime,
		restaurant.ClosingTime,
		restaurant.CuisineType,
		restaurant.IsActive,
		restaurant.ID,
	).Scan(&restaurant.CreatedAt)
	if err != nil {
		return fmt.Errorf("update restaurant %d: %w", restaurant.ID, err)
	}
	return nil
}

func (r *restaurantRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM restaurants WHERE restaurant_id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete restaurant %d: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *restaurantRepository) GetByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE restaurant_id=$1`
	restaurant, err := scanRestaurant(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get restaurant %d: %w", id, err)
	}
	return restaurant, nil
}

func (r *restaurantRepository) List(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+restaurantColumns+` FROM restaurants ORDER BY restaurant_id`)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var result []domain.Restaurant
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *restaurant)
	}
	return result, rows.Err()
}

func scanRestaurant(row pgx.Row) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	if err := row.Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Description,
		&restaurant.Address,
		&restaurant.City,
		&restaurant.PhoneNumber,
		&restaurant.Email,
		&restaurant.OpeningTime,
		&restaurant.ClosingTime,
		&restaurant.CuisineType,
		&restaurant.IsActive,
		&restaurant.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &restaurant, nil
}
