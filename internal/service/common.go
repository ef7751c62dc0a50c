package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

// Caller is the authenticated principal a service call runs on behalf of.
type Caller struct {
	UserID int64
	Role   domain.Role
}

// CallerFromClaims builds a Caller from a verified token.
func CallerFromClaims(claims *auth.Claims) Caller {
	if claims == nil {
		return Caller{}
	}
	return Caller{UserID: claims.UserID, Role: claims.UserType}
}

func (c Caller) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}

// owns reports whether the caller may act on a record belonging to ownerID.
func (c Caller) owns(ownerID int64) bool {
	return c.IsAdmin() || (c.Role == domain.RoleCustomer && c.UserID == ownerID)
}

func (c Caller) actor() events.Actor {
	return events.Actor{UserID: c.UserID, UserType: c.Role}
}

var errForbidden = apperrors.NewForbidden("Insufficient permissions")

// lookupErr turns a missing row into a named 404 and maps everything else.
func lookupErr(err error, resource, key string, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{key: id})
	}
	return apperrors.MapError(err)
}

// invalid reports a single rejected field.
func invalid(field, msg string) error {
	return apperrors.NewValidationError("validation failed", map[string]any{field: msg})
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func publish(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(ctx, event)
}
