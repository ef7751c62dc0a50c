package service

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/repository"
	"github.com/spec-kit/restaurant-service/internal/repository/repofake"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, len(d.events))
	for i, e := range d.events {
		out[i] = e.Type
	}
	return out
}

type fixture struct {
	ctx         context.Context
	store       *repofake.Store
	dispatcher  *recordingDispatcher
	auth        *AuthService
	users       *UserService
	restaurants *RestaurantService
	menu        *MenuService
	orders      *OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := auth.NewTokenManager("service-test-secret")
	require.NoError(t, err)

	cfg := config.AuthConfig{JWTSecret: "service-test-secret", BcryptCost: 4}
	store := repofake.NewStore()
	dispatcher := &recordingDispatcher{}
	return &fixture{
		ctx:         context.Background(),
		store:       store,
		dispatcher:  dispatcher,
		auth:        NewAuthService(cfg, store.Users(), tokens),
		users:       NewUserService(cfg, store.Users()),
		restaurants: NewRestaurantService(store.Restaurants()),
		menu:        NewMenuService(store.Categories(), store.MenuItems()),
		orders: NewOrderService(OrderDependencies{
			OrderRepo:     store.Orders(),
			OrderItemRepo: store.OrderItems(),
			MenuItemRepo:  store.MenuItems(),
			Dispatcher:    dispatcher,
			Logger:        zaptest.NewLogger(t),
		}),
	}
}

func ptr[T any](v T) *T { return &v }

func requireDomainErr(t *testing.T, err error, status int) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.Equal(t, status, de.HTTPStatus, de.Error())
	return de
}

func (f *fixture) customer(t *testing.T, email string) (*domain.User, Caller) {
	t.Helper()
	user, err := f.auth.Register(f.ctx, RegisterInput{
		FirstName: "Wanjiru", LastName: "Otieno", Email: email, PhoneNumber: "0700000000", Password: "secret123",
	})
	require.NoError(t, err)
	return user, Caller{UserID: user.ID, Role: domain.RoleCustomer}
}

func (f *fixture) admin(t *testing.T) (*domain.User, Caller) {
	t.Helper()
	user := &domain.User{FirstName: "Ada", LastName: "Admin", Email: "admin@example.com", UserType: domain.RoleAdmin}
	hash, err := auth.HashPassword("admin-pass", 4)
	require.NoError(t, err)
	user.PasswordHash = hash
	require.NoError(t, f.store.Users().Create(f.ctx, user))
	return user, Caller{UserID: user.ID, Role: domain.RoleAdmin}
}

// catalog seeds a restaurant with one category and one menu item.
func (f *fixture) catalog(t *testing.T) (*domain.Restaurant, *domain.Category, *domain.MenuItem) {
	t.Helper()
	restaurant, err := f.restaurants.Create(f.ctx, RestaurantInput{Name: ptr("Mama Oliech"), City: ptr("Nairobi")})
	require.NoError(t, err)
	category, err := f.menu.CreateCategory(f.ctx, CategoryInput{RestaurantID: &restaurant.ID, Name: ptr("Mains")})
	require.NoError(t, err)
	item, err := f.menu.CreateMenuItem(f.ctx, MenuItemInput{
		RestaurantID: &restaurant.ID, CategoryID: &category.ID, Name: ptr("Fried tilapia"), Price: ptr(12.5),
	})
	require.NoError(t, err)
	return restaurant, category, item
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)

	user, err := f.auth.Register(f.ctx, RegisterInput{
		FirstName: " Amina ", LastName: "Kimani", Email: "Amina@Example.com", PhoneNumber: "0711", Password: "pa55word",
	})
	require.NoError(t, err)
	assert.Equal(t, "Amina", user.FirstName)
	assert.Equal(t, "amina@example.com", user.Email)
	assert.Equal(t, domain.RoleCustomer, user.UserType)
	assert.NotEqual(t, "pa55word", user.PasswordHash)

	_, err = f.auth.Register(f.ctx, RegisterInput{FirstName: "x", LastName: "y", Email: "amina@example.com", Password: "p"})
	de := requireDomainErr(t, err, http.StatusConflict)
	assert.Equal(t, "CONFLICT", de.Code)

	result, err := f.auth.Login(f.ctx, "AMINA@example.com", "pa55word")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.Claims.UserID)
	assert.Equal(t, domain.RoleCustomer, result.Claims.UserType)

	claims, err := f.auth.TokenManager().ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "amina@example.com", claims.Email)
}

func TestAuthService_LoginFailuresLookAlike(t *testing.T) {
	f := newFixture(t)
	f.customer(t, "known@example.com")

	_, errUnknown := f.auth.Login(f.ctx, "nobody@example.com", "secret123")
	_, errWrong := f.auth.Login(f.ctx, "known@example.com", "wrong")

	for _, err := range []error{errUnknown, errWrong} {
		de := requireDomainErr(t, err, http.StatusBadRequest)
		assert.Equal(t, MsgInvalidCredentials, de.Message)
	}
}

func TestUserService_Ownership(t *testing.T) {
	f := newFixture(t)
	alice, aliceCaller := f.customer(t, "alice@example.com")
	bob, _ := f.customer(t, "bob@example.com")
	_, adminCaller := f.admin(t)

	got, err := f.users.Get(f.ctx, aliceCaller, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Email, got.Email)

	_, err = f.users.Get(f.ctx, aliceCaller, bob.ID)
	requireDomainErr(t, err, http.StatusForbidden)

	_, err = f.users.Get(f.ctx, adminCaller, bob.ID)
	require.NoError(t, err)

	_, err = f.users.Get(f.ctx, adminCaller, 9999)
	de := requireDomainErr(t, err, http.StatusNotFound)
	assert.Equal(t, "User not found", de.Message)

	err = f.users.Delete(f.ctx, aliceCaller, bob.ID)
	requireDomainErr(t, err, http.StatusForbidden)

	unknown := Caller{UserID: alice.ID, Role: domain.Role("both")}
	_, err = f.users.Get(f.ctx, unknown, alice.ID)
	requireDomainErr(t, err, http.StatusForbidden)
}

func TestUserService_Update(t *testing.T) {
	f := newFixture(t)
	alice, aliceCaller := f.customer(t, "alice@example.com")
	_, adminCaller := f.admin(t)
	originalHash := alice.PasswordHash

	updated, err := f.users.Update(f.ctx, aliceCaller, alice.ID, UserUpdateInput{PhoneNumber: ptr("0722")})
	require.NoError(t, err)
	assert.Equal(t, "0722", updated.PhoneNumber)
	assert.Equal(t, originalHash, updated.PasswordHash)

	updated, err = f.users.Update(f.ctx, aliceCaller, alice.ID, UserUpdateInput{Password: ptr("new-password")})
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, updated.PasswordHash)
	require.NoError(t, auth.ComparePassword(updated.PasswordHash, "new-password"))

	_, err = f.users.Update(f.ctx, aliceCaller, alice.ID, UserUpdateInput{UserType: ptr(domain.RoleAdmin)})
	requireDomainErr(t, err, http.StatusForbidden)

	promoted, err := f.users.Update(f.ctx, adminCaller, alice.ID, UserUpdateInput{UserType: ptr(domain.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, promoted.UserType)

	_, err = f.users.Update(f.ctx, adminCaller, alice.ID, UserUpdateInput{Email: ptr("admin@example.com")})
	requireDomainErr(t, err, http.StatusConflict)
}

func TestRestaurantService(t *testing.T) {
	f := newFixture(t)

	_, err := f.restaurants.Create(f.ctx, RestaurantInput{City: ptr("Mombasa")})
	requireDomainErr(t, err, http.StatusBadRequest)

	_, err = f.restaurants.Create(f.ctx, RestaurantInput{Name: ptr("Tamu"), OpeningTime: ptr("25:99")})
	requireDomainErr(t, err, http.StatusBadRequest)

	r, err := f.restaurants.Create(f.ctx, RestaurantInput{
		Name: ptr("Tamu"), OpeningTime: ptr("08:00:00"), ClosingTime: ptr("22:30"), Email: ptr("Hello@Tamu.co.ke"),
	})
	require.NoError(t, err)
	assert.True(t, r.IsActive)
	assert.Equal(t, "08:00", r.OpeningTime)
	assert.Equal(t, "hello@tamu.co.ke", r.Email)

	updated, err := f.restaurants.Update(f.ctx, r.ID, RestaurantInput{IsActive: ptr(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Tamu", updated.Name)

	_, err = f.restaurants.Update(f.ctx, 404, RestaurantInput{})
	requireDomainErr(t, err, http.StatusNotFound)

	require.NoError(t, f.restaurants.Delete(f.ctx, r.ID))
	err = f.restaurants.Delete(f.ctx, r.ID)
	de := requireDomainErr(t, err, http.StatusNotFound)
	assert.Equal(t, "Restaurant not found", de.Message)
}

func TestMenuService(t *testing.T) {
	f := newFixture(t)
	restaurant, category, item := f.catalog(t)

	require.NotNil(t, category.Restaurant)
	assert.Equal(t, "Mama Oliech", category.Restaurant.Name)
	require.NotNil(t, item.Category)
	assert.Equal(t, "Mains", item.Category.Name)
	assert.True(t, item.IsAvailable)

	_, err := f.menu.CreateCategory(f.ctx, CategoryInput{RestaurantID: ptr(int64(777)), Name: ptr("Ghost")})
	de := requireDomainErr(t, err, http.StatusConflict)
	assert.Equal(t, "referenced resource does not exist or is in use", de.Message)

	other, err := f.restaurants.Create(f.ctx, RestaurantInput{Name: ptr("Other")})
	require.NoError(t, err)
	_, err = f.menu.CreateMenuItem(f.ctx, MenuItemInput{
		RestaurantID: &other.ID, CategoryID: &category.ID, Name: ptr("Chapati"), Price: ptr(1.0),
	})
	requireDomainErr(t, err, http.StatusBadRequest)

	_, err = f.menu.CreateMenuItem(f.ctx, MenuItemInput{
		RestaurantID: &restaurant.ID, CategoryID: &category.ID, Name: ptr("Chapati"),
	})
	requireDomainErr(t, err, http.StatusBadRequest)

	err = f.menu.DeleteCategory(f.ctx, category.ID)
	requireDomainErr(t, err, http.StatusConflict)

	updated, err := f.menu.UpdateMenuItem(f.ctx, item.ID, MenuItemInput{Price: ptr(14.0), IsAvailable: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, 14.0, updated.Price)

	available, err := f.menu.ListMenuItems(f.ctx, repository.MenuItemFilter{AvailableOnly: true})
	require.NoError(t, err)
	assert.Empty(t, available)

	require.NoError(t, f.menu.DeleteMenuItem(f.ctx, item.ID))
	require.NoError(t, f.menu.DeleteCategory(f.ctx, category.ID))
	_, err = f.menu.GetCategory(f.ctx, category.ID)
	de = requireDomainErr(t, err, http.StatusNotFound)
	assert.Equal(t, "Category not found", de.Message)
}

func TestOrderService_CustomerLifecycle(t *testing.T) {
	f := newFixture(t)
	restaurant, _, menuItem := f.catalog(t)
	alice, aliceCaller := f.customer(t, "alice@example.com")
	bob, bobCaller := f.customer(t, "bob@example.com")
	_, adminCaller := f.admin(t)

	order, err := f.orders.CreateOrder(f.ctx, aliceCaller, OrderInput{
		RestaurantID: &restaurant.ID,
		CustomerID:   &bob.ID,
		OrderType:    ptr(domain.OrderTypeTakeaway),
		Status:       ptr(domain.OrderStatusCompleted),
		TotalAmount:  ptr(25.0),
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, order.CustomerID, "customer id is forced to the caller")
	assert.Equal(t, domain.OrderStatusCompleted, order.Status)
	require.NotNil(t, order.Customer)
	assert.Equal(t, "Wanjiru Otieno", order.Customer.Name)
	assert.Equal(t, "Mama Oliech", order.Restaurant.Name)

	_, err = f.orders.GetOrder(f.ctx, bobCaller, order.ID)
	requireDomainErr(t, err, http.StatusForbidden)

	_, err = f.orders.CreateOrderItem(f.ctx, bobCaller, OrderItemInput{
		OrderID: &order.ID, MenuItemID: &menuItem.ID, Quantity: ptr(1),
	})
	requireDomainErr(t, err, http.StatusForbidden)

	line, err := f.orders.CreateOrderItem(f.ctx, aliceCaller, OrderItemInput{
		OrderID: &order.ID, MenuItemID: &menuItem.ID, Quantity: ptr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, 12.5, line.UnitPrice)
	assert.Equal(t, 37.5, line.TotalPrice)
	require.NotNil(t, line.MenuItem)
	assert.Equal(t, "Fried tilapia", line.MenuItem.Name)

	mine, err := f.orders.ListOrderItems(f.ctx, aliceCaller, repository.OrderItemFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	theirs, err := f.orders.ListOrderItems(f.ctx, bobCaller, repository.OrderItemFilter{})
	require.NoError(t, err)
	assert.Empty(t, theirs)

	updated, err := f.orders.UpdateOrder(f.ctx, aliceCaller, order.ID, OrderInput{
		CustomerID: &bob.ID, Status: ptr(domain.OrderStatusCancelled),
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, updated.CustomerID)
	assert.Equal(t, domain.OrderStatusCancelled, updated.Status)

	require.NoError(t, f.orders.DeleteOrder(f.ctx, adminCaller, order.ID))
	_, err = f.orders.GetOrderItem(f.ctx, adminCaller, line.ID)
	requireDomainErr(t, err, http.StatusNotFound)

	assert.Equal(t, []events.EventType{
		events.EventOrderPlaced, events.EventOrderUpdated, events.EventOrderDeleted,
	}, f.dispatcher.types())
}

func TestOrderService_AdminCreateAndValidation(t *testing.T) {
	f := newFixture(t)
	restaurant, _, menuItem := f.catalog(t)
	alice, _ := f.customer(t, "alice@example.com")
	_, adminCaller := f.admin(t)

	_, err := f.orders.CreateOrder(f.ctx, adminCaller, OrderInput{
		RestaurantID: &restaurant.ID, OrderType: ptr(domain.OrderTypeDelivery),
	})
	de := requireDomainErr(t, err, http.StatusBadRequest)
	assert.Contains(t, de.Details, "customer_id")

	_, err = f.orders.CreateOrder(f.ctx, adminCaller, OrderInput{
		RestaurantID: &restaurant.ID, CustomerID: &alice.ID, OrderType: ptr(domain.OrderType("drive_thru")),
	})
	requireDomainErr(t, err, http.StatusBadRequest)

	_, err = f.orders.CreateOrder(f.ctx, adminCaller, OrderInput{
		RestaurantID: ptr(int64(999)), CustomerID: &alice.ID, OrderType: ptr(domain.OrderTypeDineIn),
	})
	requireDomainErr(t, err, http.StatusConflict)

	order, err := f.orders.CreateOrder(f.ctx, adminCaller, OrderInput{
		RestaurantID: &restaurant.ID, CustomerID: &alice.ID, OrderType: ptr(domain.OrderTypeDineIn),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Zero(t, order.TotalAmount)

	_, err = f.orders.CreateOrderItem(f.ctx, adminCaller, OrderItemInput{
		OrderID: &order.ID, MenuItemID: &menuItem.ID, Quantity: ptr(0),
	})
	requireDomainErr(t, err, http.StatusBadRequest)

	_, err = f.orders.CreateOrderItem(f.ctx, adminCaller, OrderItemInput{
		OrderID: ptr(int64(12345)), MenuItemID: &menuItem.ID, Quantity: ptr(1),
	})
	de = requireDomainErr(t, err, http.StatusNotFound)
	assert.Equal(t, "Order not found", de.Message)

	line, err := f.orders.CreateOrderItem(f.ctx, adminCaller, OrderItemInput{
		OrderID: &order.ID, MenuItemID: &menuItem.ID, Quantity: ptr(2), UnitPrice: ptr(10.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, line.TotalPrice)

	line, err = f.orders.UpdateOrderItem(f.ctx, adminCaller, line.ID, OrderItemInput{Quantity: ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, 10.0, line.UnitPrice, "stored unit price is kept when only quantity changes")
	assert.Equal(t, 50.0, line.TotalPrice)

	require.NoError(t, f.orders.DeleteOrderItem(f.ctx, adminCaller, line.ID))
	err = f.orders.DeleteOrderItem(f.ctx, adminCaller, line.ID)
	requireDomainErr(t, err, http.StatusNotFound)

	all, err := f.orders.ListOrders(f.ctx, adminCaller, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestOrderService_ListNewestFirst(t *testing.T) {
	f := newFixture(t)
	restaurant, _, _ := f.catalog(t)
	_, aliceCaller := f.customer(t, "alice@example.com")
	_, bobCaller := f.customer(t, "bob@example.com")
	_, adminCaller := f.admin(t)

	var ids []int64
	for _, caller := range []Caller{aliceCaller, bobCaller, aliceCaller} {
		order, err := f.orders.CreateOrder(f.ctx, caller, OrderInput{
			RestaurantID: &restaurant.ID, OrderType: ptr(domain.OrderTypeTakeaway),
		})
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	all, err := f.orders.ListOrders(f.ctx, adminCaller, repository.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{ids[2], ids[1], ids[0]}, []int64{all[0].ID, all[1].ID, all[2].ID})

	mine, err := f.orders.ListOrders(f.ctx, aliceCaller, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
