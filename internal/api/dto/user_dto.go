package dto

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// RegisterRequest payload for new customer accounts.
type RegisterRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	PhoneNumber string `json:"phone_number" validate:"required,max=32"`
	Password    string `json:"password" validate:"required"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// UpdateUserRequest is a partial update; omitted fields are unchanged.
type UpdateUserRequest struct {
	FirstName   *string      `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName    *string      `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email       *string      `json:"email" validate:"omitempty,email,max=255"`
	PhoneNumber *string      `json:"phone_number" validate:"omitempty,max=32"`
	Password    *string      `json:"password"`
	UserType    *domain.Role `json:"user_type" validate:"omitempty,oneof=admin customer"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	UserID      int64       `json:"user_id"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phone_number"`
	UserType    domain.Role `json:"user_type"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
