package auth

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	claimsKey    = "auth_claims"
	bearerPrefix = "Bearer "
)

// Rejection messages returned to callers.
const (
	MsgHeaderRequired    = "Authorization header is required"
	MsgBearerRequired    = "Bearer token is required"
	MsgInvalidToken      = "Invalid or expired token"
	MsgInsufficientPerms = "Insufficient permissions"
)

// ErrorKind is the coarse reason a request was rejected. It is used for logs and
// metrics only and never appears in a response.
type ErrorKind string

const (
	KindMissing          ErrorKind = "missing"
	KindMalformed        ErrorKind = "malformed"
	KindInvalidOrExpired ErrorKind = "invalid_or_expired"
	KindForbidden        ErrorKind = "forbidden"
)

// Rejection is a terminal gate outcome.
type Rejection struct {
	Kind    ErrorKind
	Status  int
	Message string
	Cause   error
}

// RejectionRecorder counts gate rejections.
type RejectionRecorder interface {
	RecordAuthRejection(kind string)
}

// Gate verifies bearer tokens and enforces route role policies.
type Gate struct {
	tokens   *TokenManager
	logger   *zap.Logger
	recorder RejectionRecorder
}

// NewGate constructs the gate. recorder may be nil.
func NewGate(tokens *TokenManager, logger *zap.Logger, recorder RejectionRecorder) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{tokens: tokens, logger: logger, recorder: recorder}
}

// Authorize evaluates an Authorization header value against a policy. Exactly
// one of the results is non-nil.
func (g *Gate) Authorize(header string, policy Policy) (*Claims, *Rejection) {
	if header == "" {
		return nil, &Rejection{Kind: KindMissing, Status: http.StatusUnauthorized, Message: MsgHeaderRequired}
	}

	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return nil, &Rejection{Kind: KindMalformed, Status: http.StatusUnauthorized, Message: MsgBearerRequired}
	}

	claims, err := g.tokens.ParseToken(token)
	if err != nil {
		return nil, &Rejection{Kind: KindInvalidOrExpired, Status: http.StatusUnauthorized, Message: MsgInvalidToken, Cause: err}
	}

	if !policy.Allows(claims.UserType) {
		return nil, &Rejection{Kind: KindForbidden, Status: http.StatusForbidden, Message: MsgInsufficientPerms}
	}
	return claims, nil
}

// Require returns a handler admitting only requests whose token satisfies policy.
// Rejections are written in place and the chain stops.
func (g *Gate) Require(policy Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, rejection := g.Authorize(c.Get(fiber.HeaderAuthorization), policy)
		if rejection != nil {
			g.observe(c, policy, rejection)
			return c.Status(rejection.Status).JSON(fiber.Map{"error": rejection.Message})
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// AdminOnly admits admin tokens.
func (g *Gate) AdminOnly() fiber.Handler { return g.Require(RequireAdmin) }

// CustomerOnly admits customer tokens.
func (g *Gate) CustomerOnly() fiber.Handler { return g.Require(RequireCustomer) }

// AnyRole admits admin or customer tokens.
func (g *Gate) AnyRole() fiber.Handler { return g.Require(RequireAny) }

func (g *Gate) observe(c *fiber.Ctx, policy Policy, rejection *Rejection) {
	if g.recorder != nil {
		g.recorder.RecordAuthRejection(string(rejection.Kind))
	}
	fields := []zap.Field{
		zap.String("kind", string(rejection.Kind)),
		zap.String("policy", policy.String()),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	}
	if rejection.Cause != nil {
		fields = append(fields, zap.Error(rejection.Cause))
	}
	g.logger.Debug("request rejected by auth gate", fields...)
}

// ClaimsFromContext retrieves the decoded credential attached by the gate.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
