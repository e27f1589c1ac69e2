package session

import (
	"github.com/medicart/medicart/internal/identity"
	"github.com/medicart/medicart/internal/profile"
)

// Status tags the authentication state of a device.
type Status int

const (
	// StatusSignedOut is the resting state: only a guest identity exists.
	StatusSignedOut Status = iota
	// StatusResolving means credentials were accepted but the role is still
	// being looked up.
	StatusResolving
	// StatusSignedIn means the device holds an authenticated user and role.
	StatusSignedIn
)

func (s Status) String() string {
	switch s {
	case StatusResolving:
		return "resolving"
	case StatusSignedIn:
		return "signed_in"
	default:
		return "signed_out"
	}
}

// Session is the current authentication state of a device. User, Role and
// Token are only meaningful while Status is Resolving or SignedIn.
type Session struct {
	Status Status
	User   identity.Account
	Role   profile.Role
	Token  string
}

// SignedOut returns the resting session state.
func SignedOut() Session {
	return Session{Status: StatusSignedOut}
}

// Resolving returns the transitional state entered after the provider
// accepted credentials but before the role is known.
func Resolving(user identity.Account, token string) Session {
	return Session{Status: StatusResolving, User: user, Token: token}
}

// SignedIn returns the fully established session state.
func SignedIn(user identity.Account, role profile.Role, token string) Session {
	return Session{Status: StatusSignedIn, User: user, Role: role, Token: token}
}
