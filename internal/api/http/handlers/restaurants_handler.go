package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/service"
)

// RestaurantsHandler serves /api/restaurants.
type RestaurantsHandler struct {
	service *service.RestaurantService
}

func NewRestaurantsHandler(restaurantService *service.RestaurantService) *RestaurantsHandler {
	return &RestaurantsHandler{service: restaurantService}
}

func (h *RestaurantsHandler) List(c *fiber.Ctx) error {
	restaurants, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": mapSlice(restaurants, restaurantResponse)})
}

func (h *RestaurantsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "restaurant_id", "restaurant")
	if err != nil {
		return err
	}
	restaurant, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": restaurantResponse(restaurant)})
}

func (h *RestaurantsHandler) Create(c *fiber.Ctx) error {
	var req dto.RestaurantRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	restaurant, err := h.service.Create(c.UserContext(), restaurantInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": restaurantResponse(restaurant)})
}

func (h *RestaurantsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "restaurant_id", "restaurant")
	if err != nil {
		return err
	}
	var req dto.RestaurantRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	restaurant, err := h.service.Update(c.UserContext(), id, restaurantInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": restaurantResponse(restaurant)})
}

func (h *RestaurantsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "restaurant_id", "restaurant")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return deleted(c, "Restaurant")
}

func restaurantInput(req dto.RestaurantRequest) service.RestaurantInput {
	return service.RestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		OpeningTime: req.OpeningTime,
		ClosingTime: req.ClosingTime,
		CuisineType: req.CuisineType,
		IsActive:    req.IsActive,
	}
}
