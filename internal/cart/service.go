package cart

import (
	"context"
	"log/slog"
	"sync"
)

// Service routes cart operations to the repository owning each scope and
// serializes all mutation behind one mutex. The guest-to-user transfer runs
// under the same mutex, so no add or remove can interleave with a merge.
type Service struct {
	mu     sync.Mutex
	guests Repository
	users  Repository
	logger *slog.Logger
}

// NewService builds a cart service over a guest and a user repository.
func NewService(guests, users Repository, logger *slog.Logger) *Service {
	return &Service{guests: guests, users: users, logger: logger}
}

func (s *Service) repoFor(scope Scope) Repository {
	if scope.Kind == ScopeUser {
		return s.users
	}
	return s.guests
}

// Get returns the current cart for the scope.
func (s *Service) Get(ctx context.Context, scope Scope) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repoFor(scope).Load(ctx, scope)
}

// AddItem accumulates quantity onto an existing line or inserts a new one.
func (s *Service) AddItem(ctx context.Context, scope Scope, line Line) (Cart, error) {
	if line.Quantity < 1 {
		return Cart{}, ErrInvalidQuantity
	}
	if line.UnitPrice < 0 {
		return Cart{}, ErrInvalidPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	repo := s.repoFor(scope)
	c, err := repo.Load(ctx, scope)
	if err != nil {
		return Cart{}, err
	}
	c.Add(line)
	if err := repo.Save(ctx, scope, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// RemoveItem deletes the line for itemID. Absent items are a no-op.
func (s *Service) RemoveItem(ctx context.Context, scope Scope, itemID string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := s.repoFor(scope)
	c, err := repo.Load(ctx, scope)
	if err != nil {
		return Cart{}, err
	}
	c.Remove(itemID)
	if err := repo.Save(ctx, scope, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// Clear empties the cart for the scope.
func (s *Service) Clear(ctx context.Context, scope Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repoFor(scope).Clear(ctx, scope)
}

// Transfer merges the guest cart into the user cart and clears the guest
// cart. Quantities for overlapping item ids are added; other guest lines are
// appended after the user's existing lines. Transferring an empty guest cart
// is a no-op, so re-running a completed transfer changes nothing.
func (s *Service) Transfer(ctx context.Context, guestID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	guestScope := GuestScope(guestID)
	userScope := UserScope(userID)

	guest, err := s.guests.Load(ctx, guestScope)
	if err != nil {
		return err
	}
	if guest.IsEmpty() {
		return nil
	}

	user, err := s.users.Load(ctx, userScope)
	if err != nil {
		return err
	}
	for _, line := range guest.Lines {
		user.Add(line)
	}

	if err := s.users.Save(ctx, userScope, user); err != nil {
		return err
	}
	if err := s.guests.Clear(ctx, guestScope); err != nil {
		return err
	}

	s.logger.Info("guest cart transferred",
		"guest_id", guestID,
		"user_id", userID,
		"lines", len(guest.Lines),
	)
	return nil
}
