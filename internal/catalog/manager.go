package catalog

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
	"storefront-service/internal/storage"
)

// Manager hands out one initialized Store per merchant scope.
type Manager struct {
	mu     sync.Mutex
	kv     storage.Store
	logger *logrus.Logger
	stores map[string]*Store
}

// NewManager creates a manager backed by kv.
func NewManager(kv storage.Store, logger *logrus.Logger) *Manager {
	return &Manager{
		kv:     kv,
		logger: logger,
		stores: make(map[string]*Store),
	}
}

// ForMerchant returns the merchant's store, initializing it on first use.
// A merchant without persisted data is seeded from the default template.
func (m *Manager) ForMerchant(ctx context.Context, merchantID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[merchantID]; ok {
		return s
	}
	s := NewStore(m.kv, m.logger)
	s.InitializeForMerchant(ctx, merchantID)
	m.stores[merchantID] = s
	return s
}

// Existing returns the merchant's store only when the merchant already has
// a catalog, either loaded in memory or persisted. It never seeds.
func (m *Manager) Existing(ctx context.Context, merchantID string) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[merchantID]; ok {
		return s, true
	}
	var snap models.CatalogSnapshot
	found, err := storage.GetJSON(ctx, m.kv, SnapshotKey(merchantID), &snap)
	if err != nil || !found {
		return nil, false
	}
	s := NewStore(m.kv, m.logger)
	s.InitializeForMerchant(ctx, merchantID)
	m.stores[merchantID] = s
	return s, true
}
