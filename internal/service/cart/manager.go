package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Manager owns the session-to-cart mapping. Each session gets its own Cart;
// carts are discarded on session end and never shared across sessions.
type Manager struct {
	catalog          Catalog
	shippingFeeCents int64
	mu               sync.Mutex
	carts            map[string]*Cart
}

func NewManager(catalog Catalog, shippingFeeCents int64) *Manager {
	return &Manager{
		catalog:          catalog,
		shippingFeeCents: shippingFeeCents,
		carts:            make(map[string]*Cart),
	}
}

// Open creates a new session and returns its id.
func (m *Manager) Open() string {
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[id] = New(m.catalog, m.shippingFeeCents)
	return id
}

// Get returns the cart for a session, or nil for an unknown session id.
func (m *Manager) Get(sessionID string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.carts[sessionID]
}

// Close discards a session's cart.
func (m *Manager) Close(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
}
