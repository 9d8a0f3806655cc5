package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rentassist/identity-service/internal/api/handler"
	"github.com/rentassist/identity-service/internal/api/middleware"
	"github.com/rentassist/identity-service/internal/core/domain"
	"github.com/rentassist/identity-service/internal/core/ports"
	"github.com/rentassist/identity-service/internal/core/service"
	"github.com/rentassist/identity-service/internal/infrastructure/config"
	mongodb "github.com/rentassist/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/rentassist/identity-service/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance over the real Mongo and Redis backends
// and registers all routes.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	accountRepo := mongodb.NewAccountRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)

	e := newRouter(cfg, accountRepo, sessionStore, log)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	return e
}

// newRouter registers the core routes over the given ports. Split out so the
// HTTP surface can be exercised against in-memory backends.
func newRouter(cfg *config.Config, accountRepo ports.AccountRepository, sessionStore ports.SessionStore, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	authService := service.NewAuthService(accountRepo)
	registrationService := service.NewRegistrationService(accountRepo)
	issuer := service.NewSessionIssuer(sessionStore, cfg.JWTSecret, cfg.SessionTTL)
	approvalService := service.NewApprovalService(accountRepo)

	authHandler := handler.NewAuthHandler(authService, registrationService, issuer)
	customerHandler := handler.NewCustomerHandler(approvalService, accountRepo)
	profileHandler := handler.NewProfileHandler(accountRepo)

	authMW := middleware.Auth(issuer)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/logout", authHandler.Logout, authMW)

	// --- Admin approval workflow ---
	admin := e.Group("/admin", authMW, adminOnly)
	admin.GET("/customers", customerHandler.List)
	admin.GET("/customers/:id", customerHandler.GetByID)
	admin.PATCH("/customers/:id/approval", customerHandler.SetApproval)

	// --- Role-scoped profiles ---
	e.GET("/roles/:role/profile", profileHandler.Get, authMW)

	return e
}
