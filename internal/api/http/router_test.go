package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/restaurant-service/internal/api/http/handlers"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/observability"
	"github.com/spec-kit/restaurant-service/internal/repository/repofake"
	"github.com/spec-kit/restaurant-service/internal/service"
)

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type apiFixture struct {
	t       *testing.T
	app     *fiber.App
	store   *repofake.Store
	tokens  *auth.TokenManager
	metrics *observability.Metrics
}

type fixtureOption func(*MiddlewareConfig, map[string]handlers.Pinger)

func withLimiter(l Limiter) fixtureOption {
	return func(cfg *MiddlewareConfig, _ map[string]handlers.Pinger) { cfg.Limiter = l }
}

func withPinger(name string, p handlers.Pinger) fixtureOption {
	return func(_ *MiddlewareConfig, deps map[string]handlers.Pinger) { deps[name] = p }
}

func newAPIFixture(t *testing.T, opts ...fixtureOption) *apiFixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	tokens, err := auth.NewTokenManager("router-test-secret")
	require.NoError(t, err)

	authCfg := config.AuthConfig{JWTSecret: "router-test-secret", BcryptCost: 4}
	store := repofake.NewStore()
	metrics := observability.NewMetrics()

	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:     store.Orders(),
		OrderItemRepo: store.OrderItems(),
		MenuItemRepo:  store.MenuItems(),
		Dispatcher:    events.NewInMemoryDispatcher(logger, metrics),
		Logger:        logger,
	})

	mwCfg := MiddlewareConfig{
		Logger:  logger,
		Metrics: metrics,
		Limiter: NewMemoryLimiter(10000, 10000),
	}
	deps := map[string]handlers.Pinger{"postgres": stubPinger{}}
	for _, opt := range opts {
		opt(&mwCfg, deps)
	}

	app := fiber.New()
	RegisterMiddlewares(app, mwCfg)
	RegisterRoutes(app, RouteConfig{
		Health:      handlers.NewHealthHandler("restaurant-service", "test", deps),
		Auth:        handlers.NewAuthHandler(service.NewAuthService(authCfg, store.Users(), tokens)),
		Users:       handlers.NewUsersHandler(service.NewUserService(authCfg, store.Users())),
		Restaurants: handlers.NewRestaurantsHandler(service.NewRestaurantService(store.Restaurants())),
		Menu:        handlers.NewMenuHandler(service.NewMenuService(store.Categories(), store.MenuItems())),
		Orders:      handlers.NewOrdersHandler(orderService),
		Gate:        auth.NewGate(tokens, logger, metrics),
		Metrics:     metrics,
	})

	return &apiFixture{t: t, app: app, store: store, tokens: tokens, metrics: metrics}
}

type apiResponse struct {
	status int
	header http.Header
	body   map[string]any
	raw    string
}

func (f *apiFixture) do(method, path, token string, body any) apiResponse {
	f.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(f.t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(f.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(f.t, err)

	out := apiResponse{status: resp.StatusCode, header: resp.Header, raw: string(raw)}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(f.t, json.Unmarshal(raw, &out.body), string(raw))
	}
	return out
}

func (r apiResponse) data(t *testing.T) map[string]any {
	t.Helper()
	data, ok := r.body["data"].(map[string]any)
	require.True(t, ok, "missing data object in %s", r.raw)
	return data
}

func (r apiResponse) list(t *testing.T) []any {
	t.Helper()
	data, ok := r.body["data"].([]any)
	require.True(t, ok, "missing data list in %s", r.raw)
	return data
}

func (f *apiFixture) adminToken() string {
	f.t.Helper()
	admin := &domain.User{
		FirstName:    "Ada",
		LastName:     "Admin",
		Email:        "admin@example.com",
		PhoneNumber:  "555-0100",
		PasswordHash: "unused",
		UserType:     domain.RoleAdmin,
	}
	require.NoError(f.t, f.store.Users().Create(context.Background(), admin))
	token, _, err := f.tokens.GenerateToken(admin)
	require.NoError(f.t, err)
	return token
}

// registerCustomer signs up and logs in through the API, returning the token
// and the new user id.
func (f *apiFixture) registerCustomer(email string) (string, int64) {
	f.t.Helper()
	resp := f.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"first_name":   "Cara",
		"last_name":    "Customer",
		"email":        email,
		"phone_number": "555-0101",
		"password":     "s3cret-pass",
	})
	require.Equal(f.t, http.StatusCreated, resp.status, resp.raw)

	resp = f.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": email, "password": "s3cret-pass"})
	require.Equal(f.t, http.StatusOK, resp.status, resp.raw)
	user := resp.body["user"].(map[string]any)
	return resp.body["token"].(string), int64(user["user_id"].(float64))
}

// seedMenu creates a restaurant, a category and one menu item priced 12.5.
func (f *apiFixture) seedMenu(adminToken string) (restaurantID, menuItemID int64) {
	f.t.Helper()
	resp := f.do(http.MethodPost, "/api/restaurants", adminToken, map[string]any{
		"name":         "Trattoria",
		"city":         "Lisbon",
		"opening_time": "09:00:00",
		"closing_time": "22:30",
	})
	require.Equal(f.t, http.StatusCreated, resp.status, resp.raw)
	restaurantID = int64(resp.data(f.t)["restaurant_id"].(float64))

	resp = f.do(http.MethodPost, "/api/categories", adminToken, map[string]any{
		"restaurant_id": restaurantID,
		"name":          "Pasta",
	})
	require.Equal(f.t, http.StatusCreated, resp.status, resp.raw)
	categoryID := int64(resp.data(f.t)["category_id"].(float64))

	resp = f.do(http.MethodPost, "/api/menu-items", adminToken, map[string]any{
		"restaurant_id": restaurantID,
		"category_id":   categoryID,
		"name":          "Carbonara",
		"price":         12.5,
	})
	require.Equal(f.t, http.StatusCreated, resp.status, resp.raw)
	menuItemID = int64(resp.data(f.t)["menu_item_id"].(float64))
	return restaurantID, menuItemID
}

func TestWelcomeAndNotFound(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, resp.status)
	assert.NotEmpty(t, resp.body["message"])

	resp = f.do(http.MethodGet, "/api", "", nil)
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, resp.body, "endpoints")

	resp = f.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, false, resp.body["success"])
	assert.Equal(t, "Route not found", resp.body["message"])
	assert.Equal(t, "/api/nope", resp.body["path"])
}

func TestRequestIDHeader(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(http.MethodGet, "/health/live", "", nil)
	assert.NotEmpty(t, resp.header.Get(observability.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set(observability.HeaderRequestID, "fixed-id")
	raw, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", raw.Header.Get(observability.HeaderRequestID))
}

func TestGateOnRoutes(t *testing.T) {
	f := newAPIFixture(t)
	customerToken, _ := f.registerCustomer("gate@example.com")

	resp := f.do(http.MethodGet, "/api/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.status)
	assert.Equal(t, map[string]any{"error": auth.MsgHeaderRequired}, resp.body)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Basic xyz")
	raw, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, raw.StatusCode)

	resp = f.do(http.MethodGet, "/api/users", "abc.def.ghi", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.status)
	assert.Equal(t, auth.MsgInvalidToken, resp.body["error"])

	resp = f.do(http.MethodGet, "/api/users", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.status)
	assert.Equal(t, map[string]any{"error": auth.MsgInsufficientPerms}, resp.body)

	resp = f.do(http.MethodGet, "/api/users", f.adminToken(), nil)
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Len(t, resp.list(t), 2)

	metrics := f.do(http.MethodGet, "/metrics", "", nil)
	assert.Contains(t, metrics.raw, `auth_rejections_total{kind="forbidden"} 1`)
	assert.Contains(t, metrics.raw, `auth_rejections_total{kind="missing"} 1`)
}

func TestRegisterAndLogin(t *testing.T) {
	f := newAPIFixture(t)

	body := map[string]any{
		"first_name":   "Lee",
		"last_name":    "Diner",
		"email":        "Lee@Example.com",
		"phone_number": "555-0102",
		"password":     "pw-123456",
	}
	resp := f.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, resp.status, resp.raw)
	assert.Equal(t, "User registered successfully", resp.body["message"])
	user := resp.body["user"].(map[string]any)
	assert.Equal(t, "lee@example.com", user["email"])
	assert.Equal(t, "customer", user["user_type"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, resp.raw, "password_hash")

	resp = f.do(http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, resp.status)
	assert.Equal(t, "Email already registered", resp.body["error"])

	resp = f.do(http.MethodPost, "/api/auth/register", "", map[string]any{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	details := resp.body["details"].(map[string]any)
	assert.Equal(t, "must be a valid email address", details["email"])
	assert.Equal(t, "is required", details["first_name"])

	resp = f.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "lee@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, service.MsgInvalidCredentials, resp.body["error"])

	resp = f.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "nobody@example.com", "password": "pw-123456"})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, service.MsgInvalidCredentials, resp.body["error"])

	resp = f.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "lee@example.com", "password": "pw-123456"})
	require.Equal(t, http.StatusOK, resp.status, resp.raw)
	assert.Equal(t, "Login successful", resp.body["message"])

	claims, err := f.tokens.ParseToken(resp.body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "lee@example.com", claims.Email)
	assert.Equal(t, domain.RoleCustomer, claims.UserType)
}

func TestLoginReportsTokenRole(t *testing.T) {
	f := newAPIFixture(t)

	hash, err := auth.HashPassword("pw-123456", 4)
	require.NoError(t, err)
	require.NoError(t, f.store.Users().Create(context.Background(), &domain.User{
		FirstName:    "Sam",
		LastName:     "Staff",
		Email:        "sam@example.com",
		PhoneNumber:  "555-0190",
		PasswordHash: hash,
		UserType:     domain.Role("staff"),
	}))

	resp := f.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "sam@example.com", "password": "pw-123456"})
	require.Equal(t, http.StatusOK, resp.status, resp.raw)

	claims, err := f.tokens.ParseToken(resp.body["token"].(string))
	require.NoError(t, err)
	user := resp.body["user"].(map[string]any)
	assert.Equal(t, "customer", user["user_type"])
	assert.Equal(t, string(claims.UserType), user["user_type"])
}

func TestMalformedRequests(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.adminToken()

	resp := f.do(http.MethodGet, "/api/restaurants/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "Invalid restaurant ID", resp.body["error"])
	assert.Equal(t, "VALIDATION_FAILED", resp.body["code"])

	resp = f.do(http.MethodPut, "/api/orders/1.5", admin, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "Invalid order ID", resp.body["error"])

	resp = f.do(http.MethodPost, "/api/restaurants", admin, "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "invalid payload", resp.body["error"])

	resp = f.do(http.MethodPost, "/api/restaurants", admin, map[string]any{"city": "Porto"})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, map[string]any{"name": "is required"}, resp.body["details"])

	resp = f.do(http.MethodGet, "/api/menu-items?restaurant_id=x", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.status)

	resp = f.do(http.MethodGet, "/api/restaurants/999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, "Restaurant not found", resp.body["error"])
	assert.Equal(t, "NOT_FOUND", resp.body["code"])
}

func TestCatalogLifecycle(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.adminToken()
	restaurantID, menuItemID := f.seedMenu(admin)

	resp := f.do(http.MethodGet, "/api/restaurants/"+itoa(restaurantID), "", nil)
	require.Equal(t, http.StatusOK, resp.status)
	restaurant := resp.data(t)
	assert.Equal(t, "09:00", restaurant["opening_time"])
	assert.Equal(t, "22:30", restaurant["closing_time"])
	assert.Equal(t, true, restaurant["is_active"])

	resp = f.do(http.MethodGet, "/api/menu-items?restaurant_id="+itoa(restaurantID)+"&available=true", "", nil)
	require.Equal(t, http.StatusOK, resp.status)
	items := resp.list(t)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "Carbonara", item["name"])
	assert.Equal(t, "Pasta", item["category"].(map[string]any)["name"])
	assert.Equal(t, "Trattoria", item["restaurant"].(map[string]any)["name"])

	resp = f.do(http.MethodPut, "/api/menu-items/"+itoa(menuItemID), admin, map[string]any{"is_available": false})
	require.Equal(t, http.StatusOK, resp.status, resp.raw)
	assert.Equal(t, false, resp.data(t)["is_available"])

	resp = f.do(http.MethodGet, "/api/menu-items?available=true", "", nil)
	assert.Empty(t, resp.list(t))

	resp = f.do(http.MethodDelete, "/api/restaurants/"+itoa(restaurantID), admin, nil)
	assert.Equal(t, http.StatusConflict, resp.status, "restaurant still referenced")

	resp = f.do(http.MethodDelete, "/api/menu-items/"+itoa(menuItemID), admin, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "Menu item deleted successfully", resp.body["message"])

	resp = f.do(http.MethodGet, "/api/categories?restaurant_id="+itoa(restaurantID), "", nil)
	require.Equal(t, http.StatusOK, resp.status)
	require.Len(t, resp.list(t), 1)
}

func TestOrderFlow(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.adminToken()
	restaurantID, menuItemID := f.seedMenu(admin)
	customer, customerID := f.registerCustomer("orders@example.com")
	other, _ := f.registerCustomer("other@example.com")

	resp := f.do(http.MethodPost, "/api/orders", customer, map[string]any{
		"restaurant_id": restaurantID,
		"customer_id":   9999,
		"order_type":    "takeaway",
	})
	require.Equal(t, http.StatusCreated, resp.status, resp.raw)
	order := resp.data(t)
	orderID := int64(order["order_id"].(float64))
	assert.Equal(t, float64(customerID), order["customer_id"], "customers always order for themselves")
	assert.Equal(t, "pending", order["status"])

	resp = f.do(http.MethodPost, "/api/orders", customer, map[string]any{
		"restaurant_id": restaurantID,
		"order_type":    "drive_through",
	})
	assert.Equal(t, http.StatusBadRequest, resp.status)

	resp = f.do(http.MethodPost, "/api/order-items", customer, map[string]any{
		"order_id":     orderID,
		"menu_item_id": menuItemID,
		"quantity":     3,
	})
	require.Equal(t, http.StatusCreated, resp.status, resp.raw)
	item := resp.data(t)
	itemID := int64(item["order_item_id"].(float64))
	assert.Equal(t, 12.5, item["unit_price"])
	assert.Equal(t, 37.5, item["total_price"])

	resp = f.do(http.MethodGet, "/api/orders/"+itoa(orderID), other, nil)
	assert.Equal(t, http.StatusForbidden, resp.status)
	assert.Equal(t, "Insufficient permissions", resp.body["error"])

	resp = f.do(http.MethodGet, "/api/order-items/"+itoa(itemID), other, nil)
	assert.Equal(t, http.StatusForbidden, resp.status)

	resp = f.do(http.MethodGet, "/api/order-items/"+itoa(itemID), customer, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "Carbonara", resp.data(t)["menu_item"].(map[string]any)["name"])

	resp = f.do(http.MethodPut, "/api/order-items/"+itoa(itemID), customer, map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusForbidden, resp.status, "item updates are admin only")

	resp = f.do(http.MethodPut, "/api/orders/"+itoa(orderID), admin, map[string]any{"status": "ready"})
	require.Equal(t, http.StatusOK, resp.status, resp.raw)
	assert.Equal(t, "ready", resp.data(t)["status"])

	resp = f.do(http.MethodGet, "/api/orders?status=ready,pending&customer_id="+itoa(customerID), admin, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Len(t, resp.list(t), 1)

	resp = f.do(http.MethodGet, "/api/orders?status=lost", admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.status)

	resp = f.do(http.MethodGet, "/api/order-items?order_id="+itoa(orderID), admin, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Len(t, resp.list(t), 1)

	resp = f.do(http.MethodDelete, "/api/orders/"+itoa(orderID), customer, nil)
	assert.Equal(t, http.StatusForbidden, resp.status)

	resp = f.do(http.MethodDelete, "/api/orders/"+itoa(orderID), admin, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "Order deleted successfully", resp.body["message"])

	resp = f.do(http.MethodGet, "/api/order-items/"+itoa(itemID), admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.status)

	metrics := f.do(http.MethodGet, "/metrics", "", nil)
	assert.Contains(t, metrics.raw, `events_published_total{type="order_placed"} 1`)
	assert.Contains(t, metrics.raw, `events_published_total{type="order_deleted"} 1`)
}

func TestUserSelfService(t *testing.T) {
	f := newAPIFixture(t)
	customer, customerID := f.registerCustomer("self@example.com")
	_, otherID := f.registerCustomer("someone@example.com")

	resp := f.do(http.MethodGet, "/api/users/"+itoa(customerID), customer, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "self@example.com", resp.data(t)["email"])

	resp = f.do(http.MethodGet, "/api/users/"+itoa(otherID), customer, nil)
	assert.Equal(t, http.StatusForbidden, resp.status)

	resp = f.do(http.MethodPut, "/api/users/"+itoa(customerID), customer, map[string]any{"user_type": "admin"})
	assert.Equal(t, http.StatusForbidden, resp.status)

	resp = f.do(http.MethodPut, "/api/users/"+itoa(customerID), customer, map[string]any{"first_name": "Carla"})
	require.Equal(t, http.StatusOK, resp.status, resp.raw)
	assert.Equal(t, "Carla", resp.data(t)["first_name"])

	resp = f.do(http.MethodDelete, "/api/users/"+itoa(customerID), customer, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "User deleted successfully", resp.body["message"])
}

func TestHealthEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	resp := f.do(http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "alive", resp.body["status"])

	resp = f.do(http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "ready", resp.body["status"])

	down := newAPIFixture(t, withPinger("redis", stubPinger{err: errors.New("connection refused")}))
	resp = down.do(http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.status)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", resp.body["code"])
	details := resp.body["details"].(map[string]any)
	assert.Equal(t, "ok", details["postgres"])
	assert.Equal(t, "connection refused", details["redis"])
}

func TestMetricsEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.adminToken()
	f.do(http.MethodGet, "/health/live", "", nil)
	f.do(http.MethodDelete, "/api/categories/999", admin, nil)
	f.do(http.MethodGet, "/api/restaurants/999", "", nil)
	f.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "x@example.com", "password": "nope"})
	f.do(http.MethodPut, "/api/menu-items/999", admin, map[string]any{"name": "Soup"})

	resp := f.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.status, resp.raw)
	assert.Contains(t, resp.raw, "http_requests_total")
	assert.Contains(t, resp.raw, `path="/api/categories/:category_id"`)
	assert.Contains(t, resp.raw, `restaurant_http_errors_total{code="NOT_FOUND",method="GET",path="/api/restaurants/:restaurant_id"} 1`)
}

func TestRateLimitedAuthRoutes(t *testing.T) {
	f := newAPIFixture(t, withLimiter(NewMemoryLimiter(100, 2)))
	login := map[string]any{"email": "x@example.com", "password": "nope"}

	for i := 0; i < 2; i++ {
		resp := f.do(http.MethodPost, "/api/auth/login", "", login)
		assert.Equal(t, http.StatusBadRequest, resp.status)
	}
	resp := f.do(http.MethodPost, "/api/auth/login", "", login)
	assert.Equal(t, http.StatusTooManyRequests, resp.status)
	assert.Equal(t, "60", resp.header.Get(fiber.HeaderRetryAfter))
	assert.Equal(t, map[string]any{"error": "Too many requests", "code": "RATE_LIMITED"}, resp.body)

	resp = f.do(http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, resp.status, "general budget is separate")
}

func TestCORSPreflight(t *testing.T) {
	f := newAPIFixture(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
