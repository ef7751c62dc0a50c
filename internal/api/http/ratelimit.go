package http

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/observability"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

// Scope selects which per-minute budget a request draws from.
type Scope string

const (
	ScopeGeneral Scope = "general"
	ScopeAuth    Scope = "auth"
)

const (
	authPathPrefix  = "/api/auth"
	limiterIdleTTL  = 10 * time.Minute
	limiterGCAt     = 1000
	rateLimitWindow = time.Minute
)

// Limiter decides whether a client may make another request.
type Limiter interface {
	Allow(ctx context.Context, client string, scope Scope) bool
}

// WindowCounter is the Redis operation used by the distributed limiter.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// NewLimiter builds the backend named by cfg.Backend. The redis backend needs
// counter; any other value selects the in-process limiter.
func NewLimiter(cfg config.RateLimitConfig, counter WindowCounter, logger *zap.Logger) Limiter {
	if strings.EqualFold(cfg.Backend, "redis") && counter != nil {
		return NewRedisLimiter(counter, cfg.GeneralRPM, cfg.AuthRPM, logger)
	}
	return NewMemoryLimiter(cfg.GeneralRPM, cfg.AuthRPM)
}

type clientLimiter struct {
	general  *rate.Limiter
	auth     *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps a token bucket pair per client.
type MemoryLimiter struct {
	generalRPM int
	authRPM    int
	mu         sync.Mutex
	clients    map[string]*clientLimiter
	now        func() time.Time
}

func NewMemoryLimiter(generalRPM, authRPM int) *MemoryLimiter {
	generalRPM, authRPM = budgets(generalRPM, authRPM)
	return &MemoryLimiter{
		generalRPM: generalRPM,
		authRPM:    authRPM,
		clients:    map[string]*clientLimiter{},
		now:        time.Now,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, client string, scope Scope) bool {
	limiter := m.getLimiter(client)
	if scope == ScopeAuth {
		return limiter.auth.Allow()
	}
	return limiter.general.Allow()
}

func (m *MemoryLimiter) getLimiter(client string) *clientLimiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if limiter, ok := m.clients[client]; ok {
		limiter.lastSeen = now
		m.gcLocked(now)
		return limiter
	}

	created := &clientLimiter{
		general:  rate.NewLimiter(rate.Every(rateLimitWindow/time.Duration(m.generalRPM)), m.generalRPM),
		auth:     rate.NewLimiter(rate.Every(rateLimitWindow/time.Duration(m.authRPM)), m.authRPM),
		lastSeen: now,
	}
	m.clients[client] = created
	m.gcLocked(now)
	return created
}

func (m *MemoryLimiter) gcLocked(now time.Time) {
	if len(m.clients) < limiterGCAt {
		return
	}
	cutoff := now.Add(-limiterIdleTTL)
	for client, limiter := range m.clients {
		if limiter.lastSeen.Before(cutoff) {
			delete(m.clients, client)
		}
	}
}

// RedisLimiter counts requests per client in fixed one-minute windows shared
// across instances. Redis failures let the request through.
type RedisLimiter struct {
	counter    WindowCounter
	generalRPM int
	authRPM    int
	logger     *zap.Logger
	now        func() time.Time
}

func NewRedisLimiter(counter WindowCounter, generalRPM, authRPM int, logger *zap.Logger) *RedisLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	generalRPM, authRPM = budgets(generalRPM, authRPM)
	return &RedisLimiter{counter: counter, generalRPM: generalRPM, authRPM: authRPM, logger: logger, now: time.Now}
}

func (r *RedisLimiter) Allow(ctx context.Context, client string, scope Scope) bool {
	limit := r.generalRPM
	if scope == ScopeAuth {
		limit = r.authRPM
	}
	window := r.now().Unix() / int64(rateLimitWindow/time.Second)
	key := "ratelimit:" + string(scope) + ":" + client + ":" + strconv.FormatInt(window, 10)

	count, err := r.counter.IncrWindow(ctx, key, rateLimitWindow)
	if err != nil {
		r.logger.Warn("rate limiter unavailable, allowing request", zap.String("client", client), zap.Error(err))
		return true
	}
	return count <= int64(limit)
}

func budgets(generalRPM, authRPM int) (int, int) {
	if generalRPM <= 0 {
		generalRPM = 100
	}
	if authRPM <= 0 {
		authRPM = 10
	}
	return generalRPM, authRPM
}

// rateLimitMiddleware applies limiter to every request keyed by client IP.
// Auth endpoints draw from the stricter budget.
func rateLimitMiddleware(limiter Limiter, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope := ScopeGeneral
		if strings.HasPrefix(c.Path(), authPathPrefix) {
			scope = ScopeAuth
		}
		if !limiter.Allow(c.UserContext(), c.IP(), scope) {
			metrics.RecordRateLimited(string(scope))
			c.Set(fiber.HeaderRetryAfter, "60")
			return apperrors.NewRateLimited()
		}
		return c.Next()
	}
}
