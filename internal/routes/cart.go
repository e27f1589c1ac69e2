package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medicart/medicart/internal/cart"
)

// RegisterCartRoutes wires the cart endpoints.
func RegisterCartRoutes(router fiber.Router, handler *cart.Handler) {
	grp := router.Group("/cart")
	grp.Get("/", handler.Get)
	grp.Post("/items", handler.AddItem)
	grp.Delete("/items/:itemID", handler.RemoveItem)
	grp.Delete("/", handler.Clear)
}
