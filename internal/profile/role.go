package profile

// Role tags an authenticated user with an authorization level. The set is
// closed: anything outside it must be flagged as unknown and never granted
// a view of its own.
type Role string

const (
	RoleCustomer        Role = "customer"
	RoleAdmin           Role = "admin"
	RoleDeliveryPartner Role = "delivery_partner"
	RolePartner         Role = "partner"
)

// ParseRole maps a stored role string onto the closed role set. The boolean
// reports whether the input named a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleAdmin, RoleDeliveryPartner, RolePartner:
		return Role(s), true
	}
	return RoleCustomer, false
}
