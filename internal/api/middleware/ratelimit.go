package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/api/metrics"
)

// Limiter is the throttle backing the rate-limit middleware (Redis in
// production).
type Limiter interface {
	Allow(ctx context.Context, scope, key string) (bool, error)
}

// RateLimit throttles a route group by client IP. A limiter outage fails
// open: blocking every login because Redis is down is worse than briefly
// losing the throttle.
func RateLimit(limiter Limiter, scope string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), scope, c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable, request allowed")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.WithLabelValues(scope).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
