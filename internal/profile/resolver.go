package profile

import (
	"context"
	"errors"
	"log/slog"
)

// Diagnostic qualifies how a role was resolved. The returned role alone never
// reveals whether the profile was missing or the lookup failed; callers that
// care inspect the diagnostic.
type Diagnostic int

const (
	// DiagnosticNone means the profile record was found and its role was valid.
	DiagnosticNone Diagnostic = iota
	// DiagnosticNotFound means no profile record exists for the user.
	DiagnosticNotFound
	// DiagnosticLookupFailure means the store errored; treated as transient.
	DiagnosticLookupFailure
	// DiagnosticUnknownRole means the record held a role outside the closed set.
	DiagnosticUnknownRole
)

func (d Diagnostic) String() string {
	switch d {
	case DiagnosticNotFound:
		return "not_found"
	case DiagnosticLookupFailure:
		return "lookup_failure"
	case DiagnosticUnknownRole:
		return "unknown_role"
	default:
		return "none"
	}
}

// Resolver maps a user id to a role. Lookup failures and missing records both
// fall back to the customer role so sign-in is never blocked on the profile
// store; a stored role outside the closed set is returned verbatim so the
// display layer can flag it. The diagnostic keeps the cases distinguishable.
type Resolver struct {
	store  Store
	logger *slog.Logger
}

// NewResolver builds a role resolver over the given store.
func NewResolver(store Store, logger *slog.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

// Resolve returns the role for userID, defaulting to customer when the
// profile is absent or the store fails.
func (r *Resolver) Resolve(ctx context.Context, userID string) (Role, Diagnostic) {
	p, err := r.store.Fetch(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			r.logger.Info("profile not found, defaulting role to customer", "user_id", userID)
			return RoleCustomer, DiagnosticNotFound
		}
		r.logger.Error("profile lookup failed, defaulting role to customer", "user_id", userID, "error", err)
		return RoleCustomer, DiagnosticLookupFailure
	}

	role, known := ParseRole(string(p.Role))
	if !known {
		// The stored role is carried through as-is; routing flags it and
		// maps it onto the customer view.
		r.logger.Warn("profile holds unknown role", "user_id", userID, "role", string(p.Role))
		return p.Role, DiagnosticUnknownRole
	}
	return role, DiagnosticNone
}
