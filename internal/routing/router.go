package routing

import (
	"github.com/medicart/medicart/internal/profile"
	"github.com/medicart/medicart/internal/session"
)

// ViewVariant names the authorized view a device should render.
type ViewVariant string

const (
	ViewCustomer ViewVariant = "customer_view"
	ViewAdmin    ViewVariant = "admin_view"
	ViewDelivery ViewVariant = "delivery_view"
	ViewPartner  ViewVariant = "partner_view"
)

// Route is a routing decision. UnknownRole is set when a live session carried
// a role outside the closed set (or none at all); an unauthenticated guest
// also lands on the customer view but without the flag.
type Route struct {
	View        ViewVariant
	UnknownRole bool
}

// For maps a session onto a view variant. Total: every session, including
// ones carrying unrecognized role strings, yields a defined route.
func For(sess session.Session) Route {
	if sess.Status != session.StatusSignedIn {
		return Route{View: ViewCustomer}
	}

	switch sess.Role {
	case profile.RoleCustomer:
		return Route{View: ViewCustomer}
	case profile.RoleAdmin:
		return Route{View: ViewAdmin}
	case profile.RoleDeliveryPartner:
		return Route{View: ViewDelivery}
	case profile.RolePartner:
		return Route{View: ViewPartner}
	default:
		return Route{View: ViewCustomer, UnknownRole: true}
	}
}
