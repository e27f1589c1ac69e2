package cart

import "fmt"

// ScopeKind distinguishes pre-authentication guest carts from user carts.
type ScopeKind int

const (
	ScopeGuest ScopeKind = iota
	ScopeUser
)

// Scope names the single owner of a cart. A cart belongs to exactly one
// guest identity or one user id, never both.
type Scope struct {
	Kind    ScopeKind
	OwnerID string
}

// GuestScope scopes a cart to a device-bound guest identity.
func GuestScope(guestID string) Scope {
	return Scope{Kind: ScopeGuest, OwnerID: guestID}
}

// UserScope scopes a cart to an authenticated user.
func UserScope(userID string) Scope {
	return Scope{Kind: ScopeUser, OwnerID: userID}
}

// Key renders a stable storage key for the scope.
func (s Scope) Key() string {
	if s.Kind == ScopeUser {
		return fmt.Sprintf("cart:user:%s", s.OwnerID)
	}
	return fmt.Sprintf("cart:guest:%s", s.OwnerID)
}
