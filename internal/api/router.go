package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/foodmarket/platform-api/internal/api/handler"
	"github.com/foodmarket/platform-api/internal/api/middleware"
	"github.com/foodmarket/platform-api/internal/core/domain"
	"github.com/foodmarket/platform-api/internal/core/ports"
)

// RouterConfig carries everything NewRouter wires into the Echo instance.
type RouterConfig struct {
	AuthService ports.AuthService
	Resolver    ports.IdentityResolver
	Health      *handler.HealthHandler
	Log         zerolog.Logger

	AllowedOrigins []string
	AuthRateRPS    float64
	AuthRateBurst  int

	// MetricsSubsystem is the echoprometheus subsystem name. Empty disables
	// the HTTP metrics middleware and the /metrics endpoint.
	MetricsSubsystem string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(cfg.Log))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.MetricsSubsystem != "" {
		e.Use(echoprometheus.NewMiddleware(cfg.MetricsSubsystem))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	userHandler := handler.NewUserHandler(cfg.AuthService)
	authenticate := middleware.Authenticate(cfg.Resolver)

	// --- Health probes and docs (no auth required) ---
	if cfg.Health != nil {
		e.GET("/", cfg.Health.Root)
		e.GET("/health", cfg.Health.Liveness)
		e.GET("/health/ready", cfg.Health.Readiness)
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	var credentialLimits []echo.MiddlewareFunc
	if cfg.AuthRateRPS > 0 {
		credentialLimits = append(credentialLimits, middleware.RateLimit(cfg.AuthRateRPS, cfg.AuthRateBurst))
	}
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register, credentialLimits...)
	auth.POST("/login", authHandler.Login, credentialLimits...)
	auth.GET("/me", authHandler.Me, authenticate)
	auth.PUT("/me", authHandler.UpdateMe, authenticate)

	// --- Admin routes ---
	users := v1.Group("/users", authenticate, middleware.RequireRole(domain.RoleSuperAdmin))
	users.GET("/:id", userHandler.Get)

	return e
}
