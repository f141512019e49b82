package memory

import (
	"context"
	"sort"
	"sync"

	"sku-pricing-lab/internal/domain"
	"sku-pricing-lab/internal/storage"
)

// CatalogStore is an in-memory implementation of storage.CatalogStore,
// used for fixtures and tests.
type CatalogStore struct {
	mu    sync.RWMutex
	bySKU map[string]*domain.SKUMetrics
}

// NewCatalogStore creates a new in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{bySKU: make(map[string]*domain.SKUMetrics)}
}

// Compile-time interface check.
var _ storage.CatalogStore = (*CatalogStore)(nil)

// Upsert inserts a SKU or replaces its metrics if it already exists.
func (s *CatalogStore) Upsert(_ context.Context, m *domain.SKUMetrics) error {
	if m == nil || m.SKU == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	metricsCopy := *m
	s.bySKU[m.SKU] = &metricsCopy
	return nil
}

// GetBySKU retrieves one SKU's metrics. Returns ErrNotFound if not exists.
func (s *CatalogStore) GetBySKU(_ context.Context, sku string) (*domain.SKUMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, exists := s.bySKU[sku]
	if !exists {
		return nil, storage.ErrNotFound
	}

	metricsCopy := *m
	return &metricsCopy, nil
}

// List retrieves all SKUs ordered by SKU key.
func (s *CatalogStore) List(_ context.Context) ([]*domain.SKUMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.SKUMetrics, 0, len(s.bySKU))
	for _, m := range s.bySKU {
		metricsCopy := *m
		out = append(out, &metricsCopy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}
