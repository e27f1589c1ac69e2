package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const (
	deviceIDHeader = "X-Device-ID"
	deviceIDLocal  = "device_id"
)

// RequireDeviceID rejects requests that do not identify their device. All
// session and cart state is scoped to this identifier.
func RequireDeviceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		deviceID := c.Get(deviceIDHeader)
		if deviceID == "" {
			return fiber.NewError(http.StatusBadRequest, "missing X-Device-ID header")
		}
		c.Locals(deviceIDLocal, deviceID)
		return c.Next()
	}
}

// DeviceID returns the device identifier established by RequireDeviceID.
func DeviceID(c *fiber.Ctx) string {
	deviceID, _ := c.Locals(deviceIDLocal).(string)
	return deviceID
}
