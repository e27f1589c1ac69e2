package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medicart/medicart/internal/auth"
)

// RegisterAuthRoutes wires login/signup/logout/session endpoints.
func RegisterAuthRoutes(router fiber.Router, handler *auth.Handler, rateLimiter fiber.Handler) {
	grp := router.Group("/auth")
	grp.Post("/login", rateLimiter, handler.Login)
	grp.Post("/signup", rateLimiter, handler.Signup)
	grp.Post("/logout", handler.Logout)
	grp.Get("/session", handler.Session)
}
