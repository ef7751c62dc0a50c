package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/service"
)

// UsersHandler exposes account management.
type UsersHandler struct {
	service *service.UserService
}

func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// List GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": mapSlice(users, userResponse)})
}

// Get GET /api/users/:user_id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "user_id", "user")
	if err != nil {
		return err
	}
	user, err := h.service.Get(c.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Update PUT /api/users/:user_id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "user_id", "user")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.service.Update(c.UserContext(), principal, id, service.UserUpdateInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		UserType:    req.UserType,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Delete DELETE /api/users/:user_id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "user_id", "user")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), principal, id); err != nil {
		return err
	}
	return deleted(c, "User")
}
