package cart

import "context"

// Repository persists carts per scope. Loading an unknown scope returns an
// empty cart, not an error.
type Repository interface {
	Load(ctx context.Context, scope Scope) (Cart, error)
	Save(ctx context.Context, scope Scope, c Cart) error
	Clear(ctx context.Context, scope Scope) error
}
