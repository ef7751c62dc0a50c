package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

const clockLayout = "15:04"

// RestaurantService manages restaurants.
type RestaurantService struct {
	restaurants repository.RestaurantRepository
}

func NewRestaurantService(restaurants repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{restaurants: restaurants}
}

// RestaurantInput is shared by create and update. On create Name is required;
// on update nil fields keep their stored value.
type RestaurantInput struct {
	Name        *string
	Description *string
	Address     *string
	City        *string
	PhoneNumber *string
	Email       *string
	OpeningTime *string
	ClosingTime *string
	CuisineType *string
	IsActive    *bool
}

func (s *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	restaurants, err := s.restaurants.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return restaurants, nil
}

func (s *RestaurantService) Get(ctx context.Context, id int64) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Restaurant", "restaurant_id", id)
	}
	return restaurant, nil
}

func (s *RestaurantService) Create(ctx context.Context, in RestaurantInput) (*domain.Restaurant, error) {
	restaurant := &domain.Restaurant{IsActive: true}
	if err := applyRestaurant(restaurant, in); err != nil {
		return nil, err
	}
	if restaurant.Name == "" {
		return nil, invalid("name", "is required")
	}
	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return nil, apperrors.MapError(err)
	}
	return restaurant, nil
}

func (s *RestaurantService) Update(ctx context.Context, id int64, in RestaurantInput) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Restaurant", "restaurant_id", id)
	}
	if err := applyRestaurant(restaurant, in); err != nil {
		return nil, err
	}
	if restaurant.Name == "" {
		return nil, invalid("name", "must not be empty")
	}
	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, lookupErr(err, "Restaurant", "restaurant_id", id)
	}
	return restaurant, nil
}

func (s *RestaurantService) Delete(ctx context.Context, id int64) error {
	if err := s.restaurants.Delete(ctx, id); err != nil {
		return lookupErr(err, "Restaurant", "restaurant_id", id)
	}
	return nil
}

func applyRestaurant(r *domain.Restaurant, in RestaurantInput) error {
	setString(&r.Name, in.Name)
	setString(&r.Description, in.Description)
	setString(&r.Address, in.Address)
	setString(&r.City, in.City)
	setString(&r.PhoneNumber, in.PhoneNumber)
	setString(&r.CuisineType, in.CuisineType)
	if in.Email != nil {
		r.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.OpeningTime != nil {
		t, err := normalizeClock("opening_time", *in.OpeningTime)
		if err != nil {
			return err
		}
		r.OpeningTime = t
	}
	if in.ClosingTime != nil {
		t, err := normalizeClock("closing_time", *in.ClosingTime)
		if err != nil {
			return err
		}
		r.ClosingTime = t
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	return nil
}

// normalizeClock accepts HH:MM or HH:MM:SS and stores HH:MM.
func normalizeClock(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	for _, layout := range []string{clockLayout, "15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(clockLayout), nil
		}
	}
	return "", invalid(field, "must be a time of day formatted HH:MM")
}
