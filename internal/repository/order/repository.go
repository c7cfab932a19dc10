package order

import (
	"context"

	"storefront/internal/domain"
)

// Repository is the order persistence collaborator. Create assigns the key;
// SubscribeByUser delivers the user's orders newest-first on every change.
type Repository interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetByKey(ctx context.Context, key string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	DeleteByKey(ctx context.Context, key string) error
	UpdateStatus(ctx context.Context, key, status string) (*domain.Order, error)
	SubscribeByUser(ctx context.Context, userID string, fn func([]domain.Order)) (func(), error)
}
