package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/medicart/medicart/internal/cart"
	"github.com/medicart/medicart/internal/identity"
	"github.com/medicart/medicart/internal/profile"
	"github.com/medicart/medicart/internal/session"
)

// Service drives the session state machine: it delegates credential checks
// to the identity provider, resolves roles, and triggers the one-time guest
// cart transfer on each fresh sign-in.
type Service struct {
	provider identity.Provider
	sessions *session.Store
	resolver *profile.Resolver
	profiles profile.Store
	carts    *cart.Service
	logger   *slog.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewService builds the auth service.
func NewService(provider identity.Provider, sessions *session.Store, resolver *profile.Resolver, profiles profile.Store, carts *cart.Service, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		sessions: sessions,
		resolver: resolver,
		profiles: profiles,
		carts:    carts,
		logger:   logger,
		inFlight: make(map[string]bool),
	}
}

// SignupAttrs carries the profile attributes collected at registration.
type SignupAttrs struct {
	FullName    string
	PhoneNumber string
	Role        string
	Address     string
}

// SignupResult is a successful signup outcome. Warning is ErrProfileWrite
// when the account exists but its profile record could not be written; the
// session is valid either way.
type SignupResult struct {
	Session session.Session
	Warning error
}

// Login verifies credentials and establishes a signed-in session. On
// provider failure the current session is left untouched.
func (s *Service) Login(ctx context.Context, deviceID, email, password string) (session.Session, error) {
	if err := s.begin(deviceID); err != nil {
		return s.sessions.Current(deviceID), err
	}
	defer s.end(deviceID)

	// An abandoned caller must not abort the transition midway; the state
	// change completes and is visible on the next read.
	ctx = context.WithoutCancel(ctx)

	grant, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return s.sessions.Current(deviceID), err
	}

	return s.establish(ctx, deviceID, grant, true)
}

// Signup registers a new account, writes its profile record best-effort, and
// establishes a signed-in session.
func (s *Service) Signup(ctx context.Context, deviceID, email, password string, attrs SignupAttrs) (SignupResult, error) {
	if err := s.begin(deviceID); err != nil {
		return SignupResult{Session: s.sessions.Current(deviceID)}, err
	}
	defer s.end(deviceID)

	ctx = context.WithoutCancel(ctx)

	grant, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return SignupResult{Session: s.sessions.Current(deviceID)}, err
	}

	var warning error
	role, _ := profile.ParseRole(attrs.Role)
	address := attrs.Address
	if address == "" {
		address = "N/A"
	}
	record := profile.Profile{
		UserID:      grant.Account.ID,
		FullName:    attrs.FullName,
		PhoneNumber: attrs.PhoneNumber,
		Role:        role,
		Address:     address,
	}
	if err := s.profiles.Insert(ctx, record); err != nil {
		// The account exists; surfacing the failure is mandatory but it must
		// not undo the sign-in.
		s.logger.Error("profile write failed after signup", "user_id", grant.Account.ID, "error", err)
		warning = ErrProfileWrite
	}

	sess, err := s.establish(ctx, deviceID, grant, true)
	if err != nil {
		return SignupResult{Session: sess, Warning: warning}, err
	}
	return SignupResult{Session: sess, Warning: warning}, nil
}

// Logout invalidates the provider session and returns the device to the
// signed-out state. The guest identity is retained, so a fresh guest cart
// starts accumulating under the same identifier.
func (s *Service) Logout(ctx context.Context, deviceID string) error {
	if err := s.begin(deviceID); err != nil {
		return err
	}
	defer s.end(deviceID)

	ctx = context.WithoutCancel(ctx)

	// The in-memory record is empty right after a restart; the persisted
	// token decides which provider session to invalidate.
	token := s.sessions.Current(deviceID).Token
	if token == "" {
		persisted, err := s.sessions.PersistedToken(ctx, deviceID)
		if err != nil {
			return err
		}
		token = persisted
	}
	if token != "" {
		if err := s.provider.SignOut(ctx, token); err != nil && !errors.Is(err, identity.ErrNoSession) {
			return err
		}
	}

	return s.sessions.Set(ctx, deviceID, session.SignedOut())
}

// Restore reports the current session, reviving a persisted one after a
// restart. Restoring a prior signed-in session never re-triggers the cart
// transfer.
func (s *Service) Restore(ctx context.Context, deviceID string) (session.Session, error) {
	current := s.sessions.Current(deviceID)
	if current.Status != session.StatusSignedOut {
		return current, nil
	}

	if err := s.begin(deviceID); err != nil {
		return current, err
	}
	defer s.end(deviceID)

	token, err := s.sessions.PersistedToken(ctx, deviceID)
	if err != nil {
		return session.SignedOut(), err
	}
	if token == "" {
		return session.SignedOut(), nil
	}

	account, err := s.provider.GetSession(ctx, token)
	if err != nil {
		// Stale or invalidated token; drop it.
		if setErr := s.sessions.Set(ctx, deviceID, session.SignedOut()); setErr != nil {
			return session.SignedOut(), setErr
		}
		return session.SignedOut(), nil
	}

	return s.establish(ctx, deviceID, identity.Grant{Account: account, AccessToken: token}, false)
}

// establish walks the Resolving -> SignedIn transition and, for fresh
// sign-ins, merges the guest cart into the user cart.
func (s *Service) establish(ctx context.Context, deviceID string, grant identity.Grant, freshSignIn bool) (session.Session, error) {
	if err := s.sessions.Set(ctx, deviceID, session.Resolving(grant.Account, grant.AccessToken)); err != nil {
		return s.sessions.Current(deviceID), err
	}

	role, diag := s.resolver.Resolve(ctx, grant.Account.ID)
	if diag != profile.DiagnosticNone {
		s.logger.Debug("role resolved with fallback", "user_id", grant.Account.ID, "diagnostic", diag.String())
	}

	sess := session.SignedIn(grant.Account, role, grant.AccessToken)
	if err := s.sessions.Set(ctx, deviceID, sess); err != nil {
		return s.sessions.Current(deviceID), err
	}

	if freshSignIn {
		guestID, err := s.sessions.GetOrCreateGuestID(ctx, deviceID)
		if err != nil {
			return sess, err
		}
		if err := s.carts.Transfer(ctx, guestID, grant.Account.ID); err != nil {
			return sess, err
		}
	}

	return sess, nil
}

func (s *Service) begin(deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[deviceID] {
		return ErrBusy
	}
	s.inFlight[deviceID] = true
	return nil
}

func (s *Service) end(deviceID string) {
	s.mu.Lock()
	delete(s.inFlight, deviceID)
	s.mu.Unlock()
}
