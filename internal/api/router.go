package api

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/IDGS-901-22001379/innovatube-backend/docs"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/api/handler"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/api/middleware"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/ports"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/service"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/infrastructure/db/postgres"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/infrastructure/db/redis"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/infrastructure/security"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/pkg/config"
)

const (
	loginRateWindow = time.Minute
	loginRateMax    = 10
)

// NewRouter builds the Echo instance with all dependencies wired and routes
// registered. The audit log is injected so main controls its lifecycle.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, rdb *goredis.Client, audit ports.AuditLog, notifier ports.Notifier, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("innovatube"))

	// --- Dependencies ---
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTTTL)

	authRepo := postgres.NewAuthRepository(pool)
	favoriteRepo := postgres.NewFavoriteRepository(pool)

	authService := service.NewAuthService(authRepo, hasher, signer, audit, notifier, log)
	favoriteService := service.NewFavoriteService(favoriteRepo, audit)

	authHandler := handler.NewAuthHandler(authService, !cfg.IsProduction())
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)

	authMiddleware := middleware.Auth(signer)
	limiter := redis.NewRateLimiter(rdb, loginRateWindow, loginRateMax)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login, middleware.RateLimit(limiter, "login", log))
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/forgot-password", authHandler.ForgotPassword, middleware.RateLimit(limiter, "forgot_password", log))
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.POST("/logout", authHandler.Logout, authMiddleware)

	// --- Favorites routes ---
	videos := e.Group("/api/videos", authMiddleware)
	videos.POST("/favorites", favoriteHandler.Add)
	videos.GET("/favorites", favoriteHandler.List)
	videos.DELETE("/favorites/:videoId", favoriteHandler.Remove)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
