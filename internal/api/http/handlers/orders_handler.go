package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

// OrdersHandler serves /api/orders and /api/order-items.
type OrdersHandler struct {
	service *service.OrderService
}

func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{service: orderService}
}

// ListOrders GET /api/orders?customer_id=&restaurant_id=&status=pending,ready
func (h *OrdersHandler) ListOrders(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	filter := repository.OrderFilter{}
	if filter.CustomerID, err = queryID(c, "customer_id"); err != nil {
		return err
	}
	if filter.RestaurantID, err = queryID(c, "restaurant_id"); err != nil {
		return err
	}
	if filter.Statuses, err = parseStatuses(c.Query("status")); err != nil {
		return err
	}

	orders, err := h.service.ListOrders(c.UserContext(), principal, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": mapSlice(orders, orderResponse)})
}

func (h *OrdersHandler) GetOrder(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "order_id", "order")
	if err != nil {
		return err
	}
	order, err := h.service.GetOrder(c.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponse(order)})
}

func (h *OrdersHandler) CreateOrder(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.OrderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	order, err := h.service.CreateOrder(c.UserContext(), principal, orderInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": orderResponse(order)})
}

func (h *OrdersHandler) UpdateOrder(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "order_id", "order")
	if err != nil {
		return err
	}
	var req dto.OrderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	order, err := h.service.UpdateOrder(c.UserContext(), principal, id, orderInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponse(order)})
}

func (h *OrdersHandler) DeleteOrder(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "order_id", "order")
	if err != nil {
		return err
	}
	if err := h.service.DeleteOrder(c.UserContext(), principal, id); err != nil {
		return err
	}
	return deleted(c, "Order")
}

// ListOrderItems GET /api/order-items?order_id=
func (h *OrdersHandler) ListOrderItems(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	orderID, err := queryID(c, "order_id")
	if err != nil {
		return err
	}
	items, err := h.service.ListOrderItems(c.UserContext(), principal, repository.OrderItemFilter{OrderID: orderID})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": mapSlice(items, orderItemResponse)})
}

func (h *OrdersHandler) GetOrderItem(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "order_item_id", "order item")
	if err != nil {
		return err
	}
	item, err := h.service.GetOrderItem(c.UserContext(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderItemResponse(item)})
}

func (h *OrdersHandler) CreateOrderItem(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.OrderItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := h.service.CreateOrderItem(c.UserContext(), principal, orderItemInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": orderItemResponse(item)})
}

func (h *OrdersHandler) UpdateOrderItem(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "order_item_id", "order item")
	if err != nil {
		return err
	}
	var req dto.OrderItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := h.service.UpdateOrderItem(c.UserContext(), principal, id, orderItemInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderItemResponse(item)})
}

func (h *OrdersHandler) DeleteOrderItem(c *fiber.Ctx) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "order_item_id", "order item")
	if err != nil {
		return err
	}
	if err := h.service.DeleteOrderItem(c.UserContext(), principal, id); err != nil {
		return err
	}
	return deleted(c, "Order item")
}

func parseStatuses(raw string) ([]domain.OrderStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var statuses []domain.OrderStatus
	for _, part := range strings.Split(raw, ",") {
		status := domain.OrderStatus(strings.TrimSpace(part))
		if !status.Valid() {
			return nil, apperrors.NewValidationError("invalid query parameter", map[string]any{"status": part})
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func orderInput(req dto.OrderRequest) service.OrderInput {
	return service.OrderInput{
		RestaurantID: req.RestaurantID,
		CustomerID:   req.CustomerID,
		OrderType:    req.OrderType,
		Status:       req.Status,
		TotalAmount:  req.TotalAmount,
	}
}

func orderItemInput(req dto.OrderItemRequest) service.OrderItemInput {
	return service.OrderItemInput{
		OrderID:    req.OrderID,
		MenuItemID: req.MenuItemID,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
	}
}
