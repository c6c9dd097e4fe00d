package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/cliplink/affiliate-system/docs"
	"github.com/cliplink/affiliate-system/internal/api/handler"
	"github.com/cliplink/affiliate-system/internal/api/middleware"
	"github.com/cliplink/affiliate-system/internal/core/domain"
	"github.com/cliplink/affiliate-system/internal/core/ports"
)

// Dependencies carries the collaborators the router wires into handlers.
type Dependencies struct {
	AuthService   ports.AuthService
	RewardService ports.RewardService
	Limiter       middleware.Limiter
	Mongo         *mongo.Database
	Redis         *goredis.Client
	Logger        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Secure())
	e.Use(echoprometheus.NewMiddleware("affiliate"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	adminHandler := handler.NewAdminHandler(deps.RewardService)
	dashboardHandler := handler.NewDashboardHandler(deps.RewardService)
	trackHandler := handler.NewTrackHandler(deps.RewardService)

	authMiddleware := middleware.Auth(deps.AuthService)
	rateLimit := middleware.RateLimit(deps.Limiter, deps.Logger)

	// --- Auth routes (rate limited) ---
	auth := e.Group("/auth", rateLimit)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/dashboard", dashboardHandler.Get)

	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.POST("/links", adminHandler.GenerateLink)
	admin.POST("/entries", adminHandler.CreditEntries)

	// --- Public click tracking ---
	e.GET("/l/:id", trackHandler.Redirect)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
