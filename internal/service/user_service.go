package service

import (
	"context"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

// UserService manages accounts. Customers may only touch their own record.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

func NewUserService(cfg config.AuthConfig, users repository.UserRepository) *UserService {
	return &UserService{users: users, bcryptCost: cfg.BcryptCost}
}

// UserUpdateInput carries optional field changes. Nil fields are left untouched.
type UserUpdateInput struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
	Password    *string
	UserType    *domain.Role
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, caller Caller, id int64) (*domain.User, error) {
	if !caller.owns(id) {
		return nil, errForbidden
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "User", "user_id", id)
	}
	return user, nil
}

// Update applies in to the account. The password is re-hashed only when a new
// one is supplied and only admins may change user_type.
func (s *UserService) Update(ctx context.Context, caller Caller, id int64, in UserUpdateInput) (*domain.User, error) {
	if !caller.owns(id) {
		return nil, errForbidden
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "User", "user_id", id)
	}

	setString(&user.FirstName, in.FirstName)
	setString(&user.LastName, in.LastName)
	setString(&user.PhoneNumber, in.PhoneNumber)
	if in.Email != nil {
		user.Email = normalizeEmail(*in.Email)
	}
	if in.UserType != nil && *in.UserType != user.UserType {
		if !caller.IsAdmin() {
			return nil, errForbidden
		}
		if !in.UserType.Valid() {
			return nil, invalid("user_type", "must be admin or customer")
		}
		user.UserType = *in.UserType
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := auth.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, lookupErr(err, "User", "user_id", id)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, caller Caller, id int64) error {
	if !caller.owns(id) {
		return errForbidden
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return lookupErr(err, "User", "user_id", id)
	}
	return nil
}
