package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/medicart/medicart/internal/identity"
	"github.com/medicart/medicart/internal/middleware"
	"github.com/medicart/medicart/internal/session"
)

// Handler exposes the auth endpoints for login/signup/logout/session.
type Handler struct {
	svc *Service
}

// NewHandler constructs the auth HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type sessionResponse struct {
	Status string `json:"status"`
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
}

func toSessionResponse(s session.Session) sessionResponse {
	return sessionResponse{
		Status: s.Status.String(),
		UserID: s.User.ID,
		Email:  s.User.Email,
		Role:   string(s.Role),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and establishes a session for the device.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	sess, err := h.svc.Login(c.UserContext(), middleware.DeviceID(c), req.Email, req.Password)
	if err != nil {
		return mapAuthError(err)
	}
	return c.Status(http.StatusOK).JSON(toSessionResponse(sess))
}

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
	Address     string `json:"address"`
}

type signupResponse struct {
	sessionResponse
	Warning string `json:"warning,omitempty"`
}

// Signup registers an account and establishes a session for the device. A
// failed profile write is reported as a warning on an otherwise successful
// response.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	attrs := SignupAttrs{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
		Address:     req.Address,
	}
	result, err := h.svc.Signup(c.UserContext(), middleware.DeviceID(c), req.Email, req.Password, attrs)
	if err != nil {
		return mapAuthError(err)
	}

	resp := signupResponse{sessionResponse: toSessionResponse(result.Session)}
	if result.Warning != nil {
		resp.Warning = "profile_write_failed"
	}
	return c.Status(http.StatusCreated).JSON(resp)
}

// Logout returns the device to the signed-out state.
func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.svc.Logout(c.UserContext(), middleware.DeviceID(c)); err != nil {
		return mapAuthError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": session.StatusSignedOut.String()})
}

// Session reports the device session, restoring a persisted one if needed.
func (h *Handler) Session(c *fiber.Ctx) error {
	sess, err := h.svc.Restore(c.UserContext(), middleware.DeviceID(c))
	if err != nil {
		return mapAuthError(err)
	}
	return c.Status(http.StatusOK).JSON(toSessionResponse(sess))
}

func mapAuthError(err error) error {
	switch {
	case errors.Is(err, ErrBusy):
		return fiber.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, identity.ErrInvalidCredentials):
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, identity.ErrEmailTaken):
		return fiber.NewError(http.StatusConflict, err.Error())
	default:
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
}
