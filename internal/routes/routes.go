package routes

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/medicart/medicart/internal/auth"
	"github.com/medicart/medicart/internal/cart"
	"github.com/medicart/medicart/internal/config"
	"github.com/medicart/medicart/internal/identity"
	"github.com/medicart/medicart/internal/middleware"
	"github.com/medicart/medicart/internal/profile"
	"github.com/medicart/medicart/internal/routing"
	"github.com/medicart/medicart/internal/session"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Device state (guest identity, session token, guest cart) lives in
	// Redis; there is no in-memory fallback for it.
	if d.Cache == nil {
		return fmt.Errorf("redis is required")
	}
	if !isDev(d.Cfg.AppEnv) && d.DB == nil {
		return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	var identityRepo identity.Repository
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
	}
	provider := identity.NewPasswordProvider(identityRepo, []byte(d.Cfg.SessionSecret), d.Cfg.SessionTTL)

	var profileStore profile.Store
	if d.DB != nil {
		profileStore = profile.NewPostgresStore(d.DB)
	} else {
		profileStore = profile.NewMemoryStore()
	}
	resolver := profile.NewResolver(profileStore, d.Logger)

	var userCarts cart.Repository
	if d.DB != nil {
		userCarts = cart.NewPostgresRepository(d.DB)
	} else {
		userCarts = cart.NewMemoryRepository()
	}
	carts := cart.NewService(cart.NewRedisRepository(d.Cache), userCarts, d.Logger)

	sessions := session.NewStore(d.Cache, d.Cfg.SessionTTL)
	sessions.LogTransitions(d.Logger)

	authSvc := auth.NewService(provider, sessions, resolver, profileStore, carts, d.Logger)
	authHandler := auth.NewHandler(authSvc)
	cartHandler := cart.NewHandler(carts, sessions)
	viewHandler := routing.NewHandler(sessions)

	// API routes, all scoped to a device identity.
	api := app.Group("/api/v1", middleware.RequireDeviceID())

	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)
	RegisterCartRoutes(api, cartHandler)
	RegisterViewRoutes(api, viewHandler)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
