package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

// pathID parses a positive integer path parameter. Anything else is reported
// as "Invalid <resource> ID".
func pathID(c *fiber.Ctx, param, resource string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Invalid "+resource+" ID", map[string]any{param: c.Params(param)})
	}
	return id, nil
}

// queryID parses an optional positive integer query parameter.
func queryID(c *fiber.Ctx, key string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperrors.NewValidationError("invalid query parameter", map[string]any{key: raw})
	}
	return &id, nil
}

// parseBody decodes JSON into req and runs struct validation.
func parseBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return dto.Validate(req)
}

// caller returns the principal admitted by the auth gate.
func caller(c *fiber.Ctx) (service.Caller, error) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return service.Caller{}, apperrors.NewUnauthorized("authentication required")
	}
	return service.CallerFromClaims(claims), nil
}

func deleted(c *fiber.Ctx, resource string) error {
	return c.JSON(fiber.Map{"message": resource + " deleted successfully"})
}
