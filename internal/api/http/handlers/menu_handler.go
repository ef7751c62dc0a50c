package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/repository"
	"github.com/spec-kit/restaurant-service/internal/service"
)

// MenuHandler serves /api/categories and /api/menu-items.
type MenuHandler struct {
	service *service.MenuService
}

func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{service: menuService}
}

// ListCategories GET /api/categories?restaurant_id=&active=true
func (h *MenuHandler) ListCategories(c *fiber.Ctx) error {
	restaurantID, err := queryID(c, "restaurant_id")
	if err != nil {
		return err
	}
	categories, err := h.service.ListCategories(c.UserContext(), repository.CategoryFilter{
		RestaurantID: restaurantID,
		ActiveOnly:   c.QueryBool("active", false),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": mapSlice(categories, categoryResponse)})
}

func (h *MenuHandler) GetCategory(c *fiber.Ctx) error {
	id, err := pathID(c, "category_id", "category")
	if err != nil {
		return err
	}
	category, err := h.service.GetCategory(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categoryResponse(category)})
}

func (h *MenuHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	category, err := h.service.CreateCategory(c.UserContext(), categoryInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": categoryResponse(category)})
}

func (h *MenuHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := pathID(c, "category_id", "category")
	if err != nil {
		return err
	}
	var req dto.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	category, err := h.service.UpdateCategory(c.UserContext(), id, categoryInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categoryResponse(category)})
}

func (h *MenuHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := pathID(c, "category_id", "category")
	if err != nil {
		return err
	}
	if err := h.service.DeleteCategory(c.UserContext(), id); err != nil {
		return err
	}
	return deleted(c, "Category")
}

// ListMenuItems GET /api/menu-items?restaurant_id=&category_id=&available=true
func (h *MenuHandler) ListMenuItems(c *fiber.Ctx) error {
	restaurantID, err := queryID(c, "restaurant_id")
	if err != nil {
		return err
	}
	categoryID, err := queryID(c, "category_id")
	if err != nil {
		return err
	}
	items, err := h.service.ListMenuItems(c.UserContext(), repository.MenuItemFilter{
		RestaurantID:  restaurantID,
		CategoryID:    categoryID,
		AvailableOnly: c.QueryBool("available", false),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": mapSlice(items, menuItemResponse)})
}

func (h *MenuHandler) GetMenuItem(c *fiber.Ctx) error {
	id, err := pathID(c, "menu_item_id", "menu item")
	if err != nil {
		return err
	}
	item, err := h.service.GetMenuItem(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": menuItemResponse(item)})
}

func (h *MenuHandler) CreateMenuItem(c *fiber.Ctx) error {
	var req dto.MenuItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := h.service.CreateMenuItem(c.UserContext(), menuItemInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": menuItemResponse(item)})
}

func (h *MenuHandler) UpdateMenuItem(c *fiber.Ctx) error {
	id, err := pathID(c, "menu_item_id", "menu item")
	if err != nil {
		return err
	}
	var req dto.MenuItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := h.service.UpdateMenuItem(c.UserContext(), id, menuItemInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": menuItemResponse(item)})
}

func (h *MenuHandler) DeleteMenuItem(c *fiber.Ctx) error {
	id, err := pathID(c, "menu_item_id", "menu item")
	if err != nil {
		return err
	}
	if err := h.service.DeleteMenuItem(c.UserContext(), id); err != nil {
		return err
	}
	return deleted(c, "Menu item")
}

func categoryInput(req dto.CategoryRequest) service.CategoryInput {
	return service.CategoryInput{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		IsActive:     req.IsActive,
	}
}

func menuItemInput(req dto.MenuItemRequest) service.MenuItemInput {
	return service.MenuItemInput{
		RestaurantID: req.RestaurantID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		IsAvailable:  req.IsAvailable,
	}
}
