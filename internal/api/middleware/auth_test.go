package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/ports"
)

type stubSigner struct {
	claims *ports.AccessClaims
	err    error
}

func (s *stubSigner) Issue(userID int64, username, email string) (string, error) {
	return "unused", nil
}

func (s *stubSigner) Verify(token string) (*ports.AccessClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func runAuthMiddleware(t *testing.T, signer ports.TokenSigner, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/videos/favorites", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := Auth(signer)(next)(c)
	return c, err
}

func TestAuth_InjectsClaims(t *testing.T) {
	signer := &stubSigner{claims: &ports.AccessClaims{UserID: 42, Username: "alice", Email: "alice@x.com"}}

	c, err := runAuthMiddleware(t, signer, "Bearer some-token")
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if got, _ := c.Get("user_id").(int64); got != 42 {
		t.Fatalf("expected user_id 42, got %v", c.Get("user_id"))
	}
	if c.Get("username") != "alice" || c.Get("email") != "alice@x.com" {
		t.Fatalf("identity claims not injected: %v %v", c.Get("username"), c.Get("email"))
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	signer := &stubSigner{claims: &ports.AccessClaims{UserID: 1}}

	_, err := runAuthMiddleware(t, signer, "")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	signer := &stubSigner{claims: &ports.AccessClaims{UserID: 1}}

	for _, header := range []string{"some-token", "Basic dXNlcjpwYXNz"} {
		_, err := runAuthMiddleware(t, signer, header)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	signer := &stubSigner{err: errors.New("signature mismatch")}

	_, err := runAuthMiddleware(t, signer, "Bearer forged")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
