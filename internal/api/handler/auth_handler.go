package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/api/metrics"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/domain"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/ports"
)

// AuthHandler exposes the credential and session lifecycle endpoints.
type AuthHandler struct {
	authService ports.AuthService
	// exposeResetCode echoes the recovery code in the forgot-password
	// response. Testing convenience only; off in production.
	exposeResetCode bool
}

func NewAuthHandler(authService ports.AuthService, exposeResetCode bool) *AuthHandler {
	return &AuthHandler{authService: authService, exposeResetCode: exposeResetCode}
}

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type forgotPasswordRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type resetPasswordRequest struct {
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type forgotPasswordResponse struct {
	Message   string `json:"message"`
	ResetCode string `json:"reset_code,omitempty"`
}

// Register creates a new account and returns its first session bundle.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  ports.TokenPair
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pair, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
	}, clientMeta(c))
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerResult(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, pair)
}

// Login authenticates by username or email and returns a session bundle.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  ports.TokenPair
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pair, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password, clientMeta(c))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, pair)
}

// Refresh rotates a refresh token into a new session bundle.
//
// @Summary      Rotate a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  ports.TokenPair
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pair, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken, clientMeta(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRefreshToken) {
			metrics.RefreshRotationsTotal.WithLabelValues("invalid").Inc()
		} else {
			metrics.RefreshRotationsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.RefreshRotationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, pair)
}

// Logout revokes the caller's session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Param        sessionId  query  int  true  "Session to revoke"
// @Success      204
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	sessionID, err := strconv.ParseInt(c.QueryParam("sessionId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "sessionId must be an integer")
	}

	if err := h.authService.Logout(c.Request().Context(), sessionID, userID, clientMeta(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ForgotPassword starts the password recovery handshake.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Username or email"
// @Success      200   {object}  forgotPasswordResponse
// @Failure      403   {object}  map[string]string
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.ForgotPassword(c.Request().Context(), req.Identifier, clientMeta(c))
	if err != nil {
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()

	resp := forgotPasswordResponse{Message: result.Message}
	if h.exposeResetCode {
		resp.ResetCode = result.ResetCode
	}
	return c.JSON(http.StatusOK, resp)
}

// ResetPassword redeems a recovery code and returns a fresh session bundle.
//
// @Summary      Reset password with a recovery code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Recovery code and new password"
// @Success      200   {object}  ports.TokenPair
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pair, err := h.authService.ResetPassword(c.Request().Context(), req.Code, req.NewPassword, clientMeta(c))
	if err != nil {
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("completed").Inc()
	return c.JSON(http.StatusOK, pair)
}

func registerResult(err error) string {
	if errors.Is(err, domain.ErrUserExists) {
		return "conflict"
	}
	return "error"
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountDisabled):
		return "disabled"
	default:
		return "error"
	}
}
