package catalog

import (
	"context"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

// Service exposes catalog reads and live product streams to the rest of the
// app. Products are owned by the catalog; nothing here mutates them.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

// SubscribeAll delivers the full product list now and after every catalog
// change until the returned unsubscribe function is called.
func (s *Service) SubscribeAll(ctx context.Context, fn func([]domain.Product)) (func(), error) {
	return s.repo.SubscribeAll(ctx, fn)
}

// SubscribeByCategory behaves like SubscribeAll scoped to one category label.
func (s *Service) SubscribeByCategory(ctx context.Context, category string, fn func([]domain.Product)) (func(), error) {
	return s.repo.SubscribeByCategory(ctx, category, fn)
}
