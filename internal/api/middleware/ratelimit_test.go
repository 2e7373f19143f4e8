package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	allowed bool
	err     error
	scope   string
	key     string
}

func (l *stubLimiter) Allow(_ context.Context, scope, key string) (bool, error) {
	l.scope, l.key = scope, key
	return l.allowed, l.err
}

func runRateLimit(t *testing.T, limiter Limiter) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return RateLimit(limiter, "login", zerolog.Nop())(next)(c)
}

func TestRateLimit_AllowsUnderLimit(t *testing.T) {
	limiter := &stubLimiter{allowed: true}

	if err := runRateLimit(t, limiter); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if limiter.scope != "login" || limiter.key == "" {
		t.Fatalf("limiter called with scope=%q key=%q", limiter.scope, limiter.key)
	}
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	limiter := &stubLimiter{allowed: false}

	err := runRateLimit(t, limiter)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
}

func TestRateLimit_FailsOpenOnLimiterError(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis: connection refused")}

	if err := runRateLimit(t, limiter); err != nil {
		t.Fatalf("expected fail-open pass-through, got %v", err)
	}
}
