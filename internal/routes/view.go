package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medicart/medicart/internal/routing"
)

// RegisterViewRoutes wires the view-routing endpoint.
func RegisterViewRoutes(router fiber.Router, handler *routing.Handler) {
	router.Get("/view", handler.View)
}
