package cart

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/medicart/medicart/internal/middleware"
	"github.com/medicart/medicart/internal/session"
)

// Handler exposes cart endpoints. The cart a request operates on follows the
// device's session: signed-in devices work on the user cart, everyone else on
// the guest cart. Switching scope never moves data; only the sign-in transfer
// does.
type Handler struct {
	svc      *Service
	sessions *session.Store
}

// NewHandler constructs the cart HTTP handler.
func NewHandler(svc *Service, sessions *session.Store) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

type lineResponse struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type cartResponse struct {
	Lines []lineResponse `json:"lines"`
	Total int64          `json:"total"`
}

func toCartResponse(c Cart) cartResponse {
	resp := cartResponse{Lines: make([]lineResponse, 0, len(c.Lines)), Total: c.Total()}
	for _, line := range c.Lines {
		resp.Lines = append(resp.Lines, lineResponse(line))
	}
	return resp
}

func (h *Handler) scope(c *fiber.Ctx) (Scope, error) {
	deviceID := middleware.DeviceID(c)
	if sess := h.sessions.Current(deviceID); sess.Status == session.StatusSignedIn {
		return UserScope(sess.User.ID), nil
	}
	guestID, err := h.sessions.GetOrCreateGuestID(c.UserContext(), deviceID)
	if err != nil {
		return Scope{}, fiber.NewError(http.StatusInternalServerError, "guest identity unavailable")
	}
	return GuestScope(guestID), nil
}

// Get returns the cart for the device's current scope.
func (h *Handler) Get(c *fiber.Ctx) error {
	scope, err := h.scope(c)
	if err != nil {
		return err
	}
	crt, err := h.svc.Get(c.UserContext(), scope)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toCartResponse(crt))
}

type addItemRequest struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// AddItem inserts or accumulates a line. Quantity defaults to one.
func (h *Handler) AddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.ItemID == "" {
		return fiber.NewError(http.StatusBadRequest, "item_id is required")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	scope, err := h.scope(c)
	if err != nil {
		return err
	}
	crt, err := h.svc.AddItem(c.UserContext(), scope, Line(req))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toCartResponse(crt))
}

// RemoveItem deletes a line; removing an absent item still succeeds.
func (h *Handler) RemoveItem(c *fiber.Ctx) error {
	itemID := c.Params("itemID")
	if itemID == "" {
		return fiber.NewError(http.StatusBadRequest, "item id is required")
	}

	scope, err := h.scope(c)
	if err != nil {
		return err
	}
	crt, err := h.svc.RemoveItem(c.UserContext(), scope, itemID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toCartResponse(crt))
}

// Clear empties the cart for the device's current scope.
func (h *Handler) Clear(c *fiber.Ctx) error {
	scope, err := h.scope(c)
	if err != nil {
		return err
	}
	if err := h.svc.Clear(c.UserContext(), scope); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toCartResponse(Cart{}))
}
