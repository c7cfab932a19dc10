package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/pricing"
)

type orderRepo interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetByKey(ctx context.Context, key string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	DeleteByKey(ctx context.Context, key string) error
	UpdateStatus(ctx context.Context, key, status string) (*domain.Order, error)
	SubscribeByUser(ctx context.Context, userID string, fn func([]domain.Order)) (func(), error)
}

// cartContents is the slice of the cart aggregator Submit needs: read the
// lines, and clear after the order persisted.
type cartContents interface {
	Lines() []domain.CartLine
	Clear()
}

// Service composes cart contents into persisted orders and enforces the
// lifecycle rules around cancellation and fulfillment transitions.
type Service struct {
	repo orderRepo
	now  func() time.Time
}

func New(repo orderRepo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Submit builds an order from the cart's current lines and persists it. The
// cart is cleared only after persistence succeeded; any validation failure or
// write error leaves both cart and store unchanged.
func (s *Service) Submit(ctx context.Context, user *domain.User, cart cartContents, address, phone string) (*domain.Order, error) {
	if user == nil {
		return nil, fmt.Errorf("submit order: %w", domain.ErrUnauthenticated)
	}
	address = strings.TrimSpace(address)
	phone = strings.TrimSpace(phone)
	if address == "" {
		return nil, fmt.Errorf("%w: address required", domain.ErrValidation)
	}
	if phone == "" {
		return nil, fmt.Errorf("%w: phone required", domain.ErrValidation)
	}
	lines := cart.Lines()
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}

	orderLines := make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		orderLines = append(orderLines, domain.OrderLine{
			ProductID:      line.ProductID,
			Name:           line.Name,
			ImageURL:       line.ImageURL,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
			TotalCents:     pricing.LineTotalCents(line.UnitPriceCents, line.Quantity),
		})
	}

	now := s.now()
	created, err := s.repo.Create(ctx, domain.Order{
		TransactionID: fmt.Sprintf("TXN%d", now.UnixMilli()),
		UserID:        user.ID,
		UserName:      user.DisplayName,
		Address:       address,
		Phone:         phone,
		PaymentMethod: domain.PaymentMethodCashOnDelivery,
		Status:        domain.StatusConfirmed,
		CreatedAt:     now,
		Lines:         orderLines,
	})
	if err != nil {
		return nil, err
	}
	cart.Clear()
	return created, nil
}

// Get returns one of the user's orders. Orders belonging to other users read
// as not found.
func (s *Service) Get(ctx context.Context, userID, key string) (*domain.Order, error) {
	o, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// ListByUser returns the user's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// SubscribeByUser delivers the user's order list now and after every change
// until unsubscribed.
func (s *Service) SubscribeByUser(ctx context.Context, userID string, fn func([]domain.Order)) (func(), error) {
	return s.repo.SubscribeByUser(ctx, userID, fn)
}

// Cancel deletes the order record outright. Permitted only while the order is
// still in the first stage; afterwards the request is rejected and nothing is
// deleted.
func (s *Service) Cancel(ctx context.Context, userID, key string) error {
	o, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return err
	}
	if o.UserID != userID {
		return domain.ErrNotFound
	}
	if !CanCancel(o.Status) {
		return fmt.Errorf("%w: order with status %q can no longer be cancelled", domain.ErrValidation, o.Status)
	}
	return s.repo.DeleteByKey(ctx, key)
}

// AdvanceStatus applies a fulfillment-driven transition. Only the next step of
// the progression is accepted; everything else, including transitions out of a
// terminal state or to an unknown status, is rejected.
func (s *Service) AdvanceStatus(ctx context.Context, key, next string) (*domain.Order, error) {
	o, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	nextIdx := StatusIndex(next)
	if nextIdx < 0 {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, next)
	}
	curIdx := StatusIndex(o.Status)
	if curIdx < 0 {
		return nil, fmt.Errorf("%w: order status %q is not in the progression", domain.ErrValidation, o.Status)
	}
	if nextIdx != curIdx+1 {
		return nil, fmt.Errorf("%w: invalid transition from %q to %q", domain.ErrValidation, o.Status, next)
	}
	return s.repo.UpdateStatus(ctx, key, next)
}

// Track fetches an order and renders its tracking view.
func (s *Service) Track(ctx context.Context, userID, key string) (*domain.Order, []TrackingStep, error) {
	o, err := s.Get(ctx, userID, key)
	if err != nil {
		return nil, nil, err
	}
	return o, TrackingSteps(o.Status), nil
}
