// Package repofake provides in-memory repositories for tests. All fakes share a
// Store so joined reads and foreign keys behave like the Postgres schema.
package repofake

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
)

var (
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.RestaurantRepository = (*RestaurantRepo)(nil)
	_ repository.CategoryRepository   = (*CategoryRepo)(nil)
	_ repository.MenuItemRepository   = (*MenuItemRepo)(nil)
	_ repository.OrderRepository      = (*OrderRepo)(nil)
	_ repository.OrderItemRepository  = (*OrderItemRepo)(nil)
)

// Store holds every table.
type Store struct {
	lock sync.RWMutex
	seq  int64
	now  func() time.Time

	users       map[int64]domain.User
	restaurants map[int64]domain.Restaurant
	categories  map[int64]domain.Category
	menuItems   map[int64]domain.MenuItem
	orders      map[int64]domain.Order
	orderItems  map[int64]domain.OrderItem
}

func NewStore() *Store {
	return &Store{
		now:         time.Now,
		users:       make(map[int64]domain.User),
		restaurants: make(map[int64]domain.Restaurant),
		categories:  make(map[int64]domain.Category),
		menuItems:   make(map[int64]domain.MenuItem),
		orders:      make(map[int64]domain.Order),
		orderItems:  make(map[int64]domain.OrderItem),
	}
}

func (s *Store) Users() *UserRepo             { return &UserRepo{s} }
func (s *Store) Restaurants() *RestaurantRepo { return &RestaurantRepo{s} }
func (s *Store) Categories() *CategoryRepo    { return &CategoryRepo{s} }
func (s *Store) MenuItems() *MenuItemRepo     { return &MenuItemRepo{s} }
func (s *Store) Orders() *OrderRepo           { return &OrderRepo{s} }
func (s *Store) OrderItems() *OrderItemRepo   { return &OrderItemRepo{s} }

// nextID must be called with the write lock held.
func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// stamp returns strictly increasing times so newest-first ordering is stable.
func (s *Store) stamp() time.Time {
	return s.now().Add(time.Duration(s.seq) * time.Millisecond)
}

func fkViolation(constraint string) error {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint, Message: "foreign key violation"}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint, Message: "duplicate key value"}
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// UserRepo is the in-memory users table.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	if r.emailTaken(user.Email, 0) {
		return uniqueViolation("users_email_key")
	}
	user.ID = r.s.nextID()
	user.CreatedAt = r.s.stamp()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) Update(_ context.Context, user *domain.User) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	existing, ok := r.s.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if r.emailTaken(user.Email, user.ID) {
		return uniqueViolation("users_email_key")
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = r.s.stamp()
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id int64) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return pgx.ErrNoRows
	}
	for _, order := range r.s.orders {
		if order.CustomerID == id {
			return fkViolation("orders_customer_id_fkey")
		}
	}
	delete(r.s.users, id)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()

	for _, user := range r.s.users {
		if strings.EqualFold(user.Email, email) {
			found := user
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *UserRepo) List(_ context.Context) ([]domain.User, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()

	var result []domain.User
	for _, id := range sortedKeys(r.s.users) {
		result = append(result, r.s.users[id])
	}
	return result, nil
}

func (r *UserRepo) emailTaken(email string, exceptID int64) bool {
	for id, user := range r.s.users {
		if id != exceptID && strings.EqualFold(user.Email, email) {
			return true
		}
	}
	return false
}
