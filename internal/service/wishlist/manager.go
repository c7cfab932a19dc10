package wishlist

import (
	"context"
	"sync"
)

// Manager hands out one Service per signed-in user so sessions stay isolated.
type Manager struct {
	store  Store
	mu     sync.Mutex
	byUser map[string]*Service
}

func NewManager(store Store) *Manager {
	return &Manager{store: store, byUser: make(map[string]*Service)}
}

// ForUser returns the user's wishlist service, establishing the subscription
// on first use.
func (m *Manager) ForUser(ctx context.Context, userID string) (*Service, error) {
	m.mu.Lock()
	svc, ok := m.byUser[userID]
	m.mu.Unlock()
	if ok {
		return svc, nil
	}

	svc = New(m.store)
	if err := svc.SetUser(ctx, userID); err != nil {
		return nil, err
	}
	m.mu.Lock()
	if existing, ok := m.byUser[userID]; ok {
		m.mu.Unlock()
		_ = svc.SetUser(context.Background(), "")
		return existing, nil
	}
	m.byUser[userID] = svc
	m.mu.Unlock()
	return svc, nil
}

// Drop tears down a user's subscription and cache.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	svc, ok := m.byUser[userID]
	delete(m.byUser, userID)
	m.mu.Unlock()
	if ok {
		_ = svc.SetUser(context.Background(), "")
	}
}
