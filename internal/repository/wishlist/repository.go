package wishlist

import "context"

// Repository is the wishlist persistence collaborator. Subscribe delivers the
// user's full product id set immediately and after every change.
type Repository interface {
	Subscribe(ctx context.Context, userID string, fn func(productIDs []string)) (func(), error)
	SetMembership(ctx context.Context, userID, productID string, present bool) error
}
