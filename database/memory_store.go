package database

import (
	"context"
	"sync"
	"time"

	"github.com/stockhub/storefront-service/models"
)

// MemoryStore is an in-process SessionStore for local development and
// tests. Semantics match the Redis repository: absent keys read as nil,
// DeleteCart removes the key.
type MemoryStore struct {
	mu       sync.RWMutex
	carts    map[string]*models.Cart
	invoices map[string]*models.Order
	idem     map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts:    make(map[string]*models.Cart),
		invoices: make(map[string]*models.Order),
		idem:     make(map[string]string),
	}
}

func (m *MemoryStore) GetCart(_ context.Context, sessionID string) (*models.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cart, ok := m.carts[sessionID]
	if !ok {
		return nil, nil
	}
	return cart.Clone(), nil
}

func (m *MemoryStore) SaveCart(_ context.Context, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart.UpdatedAt = time.Now()
	m.carts[cart.SessionID] = cart.Clone()
	return nil
}

func (m *MemoryStore) DeleteCart(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}

func (m *MemoryStore) GetInvoice(_ context.Context, sessionID string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, ok := m.invoices[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *order
	return &cp, nil
}

func (m *MemoryStore) SaveInvoice(_ context.Context, sessionID string, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *order
	m.invoices[sessionID] = &cp
	return nil
}

func (m *MemoryStore) GetIdempotency(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.idem[key], nil
}

func (m *MemoryStore) SetIdempotency(_ context.Context, key, orderID string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.idem[key] = orderID
	return nil
}
