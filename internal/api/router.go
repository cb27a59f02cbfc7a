package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/drawforge/auth-service/docs"
	"github.com/drawforge/auth-service/internal/api/handler"
	"github.com/drawforge/auth-service/internal/api/middleware"
	"github.com/drawforge/auth-service/internal/core/ports"
)

// RouterConfig carries the dependencies the router wires into handlers.
type RouterConfig struct {
	AuthService ports.AuthService
	Tokens      ports.TokenService
	CookieTTL   time.Duration
	AuthEnabled bool
	Logger      zerolog.Logger

	// Mongo and Redis back the readiness probe; when either is nil the
	// /health/ready route is not registered (in-memory deployments, tests).
	Mongo *mongo.Database
	Redis *redis.Client

	// EnableMetrics attaches the echoprometheus middleware and /metrics
	// endpoint. Off in tests: the middleware registers collectors with the
	// default registry, which tolerates only one registration per process.
	EnableMetrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	if cfg.EnableMetrics {
		e.Use(echoprometheus.NewMiddleware("auth"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.CookieTTL)
	optionalAuth := middleware.OptionalAuth(cfg.Tokens, cfg.AuthEnabled)

	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/status", authHandler.Status, optionalAuth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness – is the process alive?

	if cfg.Mongo != nil && cfg.Redis != nil {
		readinessHandler := handler.NewReadinessHandler(cfg.Mongo, cfg.Redis)
		e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	}

	// --- API documentation ---
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
