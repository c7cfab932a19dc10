// Package wishlist keeps a per-user mirror of wishlist membership, fed by a
// live subscription to the wishlist store.
package wishlist

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"storefront/internal/domain"
)

// Store is the external wishlist persistence collaborator. Subscribe delivers
// the full current set of product ids on every change, not a diff.
type Store interface {
	Subscribe(ctx context.Context, userID string, fn func(productIDs []string)) (func(), error)
	SetMembership(ctx context.Context, userID, productID string, present bool) error
}

// Service caches one signed-in user's wishlisted product ids. The cache is
// replaced wholesale by each subscription callback; Toggle never mutates it
// directly.
type Service struct {
	store Store

	mu          sync.Mutex
	userID      string
	ids         map[string]struct{}
	unsubscribe func()
	watchers    map[int]func([]string)
	nextWatcher int
}

func New(store Store) *Service {
	return &Service{
		store:    store,
		ids:      make(map[string]struct{}),
		watchers: make(map[int]func([]string)),
	}
}

// SetUser switches the signed-in identity. The cached set is reset and the old
// subscription torn down; a fresh subscription is established unless userID is
// empty (signed out).
func (s *Service) SetUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.userID = userID
	s.ids = make(map[string]struct{})
	s.mu.Unlock()

	if userID == "" {
		return nil
	}
	unsub, err := s.store.Subscribe(ctx, userID, func(productIDs []string) {
		next := make(map[string]struct{}, len(productIDs))
		for _, id := range productIDs {
			next[id] = struct{}{}
		}
		s.mu.Lock()
		if s.userID != userID {
			s.mu.Unlock()
			return
		}
		s.ids = next
		watchers := make([]func([]string), 0, len(s.watchers))
		for _, w := range s.watchers {
			watchers = append(watchers, w)
		}
		s.mu.Unlock()

		for _, w := range watchers {
			snapshot := make([]string, len(productIDs))
			copy(snapshot, productIDs)
			sort.Strings(snapshot)
			w(snapshot)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe wishlist for user %s: %w", userID, err)
	}
	s.mu.Lock()
	s.unsubscribe = unsub
	s.mu.Unlock()
	return nil
}

// IsWishlisted reports membership against the cached set.
func (s *Service) IsWishlisted(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[productID]
	return ok
}

// ProductIDs returns the cached set in sorted order.
func (s *Service) ProductIDs() []string {
	s.mu.Lock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	s.mu.Unlock()
	sort.Strings(out)
	return out
}

// Watch registers an observer that receives the current product id set
// immediately and again after every change. The returned function removes the
// observer.
func (s *Service) Watch(fn func(productIDs []string)) func() {
	s.mu.Lock()
	id := s.nextWatcher
	s.nextWatcher++
	s.watchers[id] = fn
	s.mu.Unlock()

	fn(s.ProductIDs())
	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

// Toggle reads current membership from the cache and issues the opposite
// write to the store. The cache itself is only updated by the subscription, so
// two rapid toggles for the same product can race on the store write.
func (s *Service) Toggle(ctx context.Context, productID string) error {
	s.mu.Lock()
	userID := s.userID
	_, present := s.ids[productID]
	s.mu.Unlock()

	if userID == "" {
		return fmt.Errorf("wishlist toggle: %w", domain.ErrUnauthenticated)
	}
	return s.store.SetMembership(ctx, userID, productID, !present)
}
