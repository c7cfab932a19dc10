package product

import (
	"context"

	"storefront/internal/domain"
)

// Repository is the catalog read collaborator. Subscriptions deliver the full
// current result set on every catalog change, not incremental diffs.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
	SubscribeAll(ctx context.Context, fn func([]domain.Product)) (func(), error)
	SubscribeByCategory(ctx context.Context, category string, fn func([]domain.Product)) (func(), error)
}
