package routing

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/medicart/medicart/internal/middleware"
	"github.com/medicart/medicart/internal/session"
)

// Handler exposes the view-routing endpoint the display layer consumes.
type Handler struct {
	sessions *session.Store
}

// NewHandler constructs the routing HTTP handler.
func NewHandler(sessions *session.Store) *Handler {
	return &Handler{sessions: sessions}
}

// View reports which view variant the device should render.
func (h *Handler) View(c *fiber.Ctx) error {
	sess := h.sessions.Current(middleware.DeviceID(c))
	route := For(sess)
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"view":         string(route.View),
		"unknown_role": route.UnknownRole,
	})
}
