package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/acquisitions/identity-api/docs"
	"github.com/acquisitions/identity-api/internal/api/cookies"
	"github.com/acquisitions/identity-api/internal/api/handler"
	"github.com/acquisitions/identity-api/internal/api/middleware"
	"github.com/acquisitions/identity-api/internal/core/domain"
	"github.com/acquisitions/identity-api/internal/core/ports"
	"github.com/acquisitions/identity-api/internal/core/service"
	mongodb "github.com/acquisitions/identity-api/internal/infrastructure/db/mongo"
	redisdb "github.com/acquisitions/identity-api/internal/infrastructure/db/redis"
	"github.com/acquisitions/identity-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// It fails when the token service cannot be constructed (missing secret),
// which callers must treat as fatal.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, hasher ports.PasswordHasher, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	jar := cookies.NewManager(cookies.TokenCookie, tokens.TTL(), cfg.Production())
	userRepo := mongodb.NewUserRepository(db)
	userCache := redisdb.NewUserCache(rdb)

	authService := service.NewAuthService(userRepo, hasher, tokens)
	userService := service.NewUserService(userRepo, hasher, userCache)

	authHandler := handler.NewAuthHandler(authService, tokens, jar, log)
	userHandler := handler.NewUserHandler(userService, log)
	authenticated := middleware.Auth(tokens, jar)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/sign-up", authHandler.SignUp)
	auth.POST("/sign-in", authHandler.SignIn)
	auth.POST("/sign-out", authHandler.SignOut)

	// --- User management routes ---
	users := e.Group("/api/users", authenticated)
	users.GET("", userHandler.List, middleware.RequireRole(domain.RoleAdmin))
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello from Acquisitions!")
	})
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, nil
}
