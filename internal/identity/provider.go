package identity

import (
	"context"
	"errors"
)

var (
	// ErrInvalidCredentials is returned when the email/password pair does not
	// match a registered account.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned by SignUp when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNoSession is returned by GetSession when the token is absent, expired
	// or invalidated.
	ErrNoSession = errors.New("no active session")
)

// Provider is the identity-provider capability the rest of the application
// consumes. Credential verification and session issuance live behind it so
// the auth flow never depends on a concrete backend.
type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (Grant, error)
	SignUp(ctx context.Context, email, password string) (Grant, error)
	SignOut(ctx context.Context, accessToken string) error
	GetSession(ctx context.Context, accessToken string) (Account, error)
}
