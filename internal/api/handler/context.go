package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/ports"
)

// ctxUserID extracts the authenticated user id injected by the Auth
// middleware. A zero id means the middleware did not run; fail fast with
// 401 before any service call.
func ctxUserID(c echo.Context) (int64, error) {
	userID, _ := c.Get("user_id").(int64)
	if userID == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}

// clientMeta captures the request metadata recorded with every mutating
// operation.
func clientMeta(c echo.Context) ports.ClientMeta {
	return ports.ClientMeta{
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}
