package api

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/rollcall/attendance-system/docs"
	"github.com/rollcall/attendance-system/internal/api/handler"
	"github.com/rollcall/attendance-system/internal/api/middleware"
	"github.com/rollcall/attendance-system/internal/core/domain"
	"github.com/rollcall/attendance-system/internal/core/ports"
	"github.com/rollcall/attendance-system/internal/core/service"
	"github.com/rollcall/attendance-system/internal/infrastructure/config"
	postgresdb "github.com/rollcall/attendance-system/internal/infrastructure/db/postgres"
	redisdb "github.com/rollcall/attendance-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit trail is owned by the caller so it can be started and drained
// alongside the process lifecycle.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, audit ports.AuditTrail, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("attendance"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := postgresdb.NewUserRepository(pool)
	sessionRepo := postgresdb.NewSessionRepository(pool)
	scanRepo := postgresdb.NewScanRepository(pool)
	dedup := redisdb.NewScanDedup(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour, audit, log)
	userService := service.NewUserService(userRepo, audit, log)
	sessionService := service.NewSessionService(sessionRepo, userRepo, audit, log)
	scanService := service.NewScanService(sessionRepo, scanRepo, dedup, audit, log)

	authHandler := handler.NewAuthHandler(authService, cfg.IsProduction())
	usersHandler := handler.NewAdminUsersHandler(userService)
	sessionsHandler := handler.NewAdminSessionsHandler(sessionService, scanService)
	scannerHandler := handler.NewScannerHandler(scanService)

	authRequired := middleware.Auth(authService)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me, authRequired)

	// --- Admin surface ---
	admin := e.Group("/admin", authRequired, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", usersHandler.List)
	admin.POST("/users", usersHandler.Create)
	admin.PATCH("/users/:id", usersHandler.Update)
	admin.GET("/sessions", sessionsHandler.List)
	admin.POST("/sessions", sessionsHandler.Create)
	admin.PATCH("/sessions/:id", sessionsHandler.Update)
	admin.POST("/sessions/:id/assign", sessionsHandler.Assign)
	admin.DELETE("/sessions/:id/assign", sessionsHandler.Unassign)
	admin.GET("/sessions/:id/assignments", sessionsHandler.Assignments)
	admin.GET("/sessions/:id/scans", sessionsHandler.Scans)
	admin.GET("/sessions/:id/export.csv", sessionsHandler.ExportCSV)

	// --- Scanner surface ---
	scanner := e.Group("/scanner", authRequired, middleware.RBAC(domain.RoleScanner))
	scanner.GET("/sessions", scannerHandler.Sessions)
	scanner.POST("/sessions/:id/scan", scannerHandler.Scan)
	scanner.GET("/sessions/:id/scans", scannerHandler.Scans)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
