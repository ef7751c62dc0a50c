package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/restaurant-service/internal/api/http/handlers"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Users       *handlers.UsersHandler
	Restaurants *handlers.RestaurantsHandler
	Menu        *handlers.MenuHandler
	Orders      *handlers.OrdersHandler
	Gate        *auth.Gate
	Metrics     *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Routes without a gate handler are public.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	gate := cfg.Gate
	admin := gate.AdminOnly()
	anyRole := gate.AnyRole()

	app.Get("/", welcome)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group("/api")
	api.Get("/", apiIndex)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	users := api.Group("/users")
	users.Get("/", admin, cfg.Users.List)
	users.Get("/:user_id", anyRole, cfg.Users.Get)
	users.Put("/:user_id", anyRole, cfg.Users.Update)
	users.Delete("/:user_id", anyRole, cfg.Users.Delete)

	restaurants := api.Group("/restaurants")
	restaurants.Get("/", admin, cfg.Restaurants.List)
	restaurants.Get("/:restaurant_id", cfg.Restaurants.Get)
	restaurants.Post("/", admin, cfg.Restaurants.Create)
	restaurants.Put("/:restaurant_id", admin, cfg.Restaurants.Update)
	restaurants.Delete("/:restaurant_id", admin, cfg.Restaurants.Delete)

	categories := api.Group("/categories")
	categories.Get("/", cfg.Menu.ListCategories)
	categories.Get("/:category_id", cfg.Menu.GetCategory)
	categories.Post("/", admin, cfg.Menu.CreateCategory)
	categories.Put("/:category_id", admin, cfg.Menu.UpdateCategory)
	categories.Delete("/:category_id", admin, cfg.Menu.DeleteCategory)

	menuItems := api.Group("/menu-items")
	menuItems.Get("/", cfg.Menu.ListMenuItems)
	menuItems.Get("/:menu_item_id", cfg.Menu.GetMenuItem)
	menuItems.Post("/", admin, cfg.Menu.CreateMenuItem)
	menuItems.Put("/:menu_item_id", admin, cfg.Menu.UpdateMenuItem)
	menuItems.Delete("/:menu_item_id", admin, cfg.Menu.DeleteMenuItem)

	orders := api.Group("/orders")
	orders.Get("/", admin, cfg.Orders.ListOrders)
	orders.Post("/", anyRole, cfg.Orders.CreateOrder)
	orders.Get("/:order_id", anyRole, cfg.Orders.GetOrder)
	orders.Put("/:order_id", anyRole, cfg.Orders.UpdateOrder)
	orders.Delete("/:order_id", admin, cfg.Orders.DeleteOrder)

	orderItems := api.Group("/order-items")
	orderItems.Get("/", admin, cfg.Orders.ListOrderItems)
	orderItems.Post("/", anyRole, cfg.Orders.CreateOrderItem)
	orderItems.Get("/:order_item_id", anyRole, cfg.Orders.GetOrderItem)
	orderItems.Put("/:order_item_id", admin, cfg.Orders.UpdateOrderItem)
	orderItems.Delete("/:order_item_id", admin, cfg.Orders.DeleteOrderItem)

	app.Use(notFound)
}

func welcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to the Restaurant Ordering API",
		"docs":    "/api",
	})
}

func apiIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Restaurant Ordering API",
		"endpoints": fiber.Map{
			"auth":        "/api/auth",
			"users":       "/api/users",
			"restaurants": "/api/restaurants",
			"categories":  "/api/categories",
			"menu_items":  "/api/menu-items",
			"orders":      "/api/orders",
			"order_items": "/api/order-items",
		},
	})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": "Route not found",
		"path":    c.OriginalURL(),
	})
}
