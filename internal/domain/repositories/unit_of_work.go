package repositories

import "context"

// UnitOfWork scopes a function to a single database transaction. The
// transaction handle travels in the context; repositories pick it up
// transparently. Any returned error rolls the whole transaction back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
