package memory

import (
	"context"
	"sync"
	"time"

	"sku-pricing-lab/internal/domain"
	"sku-pricing-lab/internal/storage"
)

// AdPerformanceStore is an in-memory implementation of
// storage.AdPerformanceStore.
type AdPerformanceStore struct {
	mu   sync.RWMutex
	rows []domain.AdPerformanceDay
}

// NewAdPerformanceStore creates a new in-memory ad performance store.
func NewAdPerformanceStore() *AdPerformanceStore {
	return &AdPerformanceStore{}
}

// Compile-time interface check.
var _ storage.AdPerformanceStore = (*AdPerformanceStore)(nil)

// RecordDaily appends daily performance rows.
func (s *AdPerformanceStore) RecordDaily(_ context.Context, rows []*domain.AdPerformanceDay) error {
	for _, r := range rows {
		if r == nil || r.SKU == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range rows {
		s.rows = append(s.rows, *r)
	}
	return nil
}

// WindowTotals sums spend, sales, and units per SKU for days at or after since.
func (s *AdPerformanceStore) WindowTotals(_ context.Context, since time.Time) (map[string]domain.AdTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]domain.AdTotals)
	for _, r := range s.rows {
		if r.Day.Before(since) {
			continue
		}
		t := totals[r.SKU]
		t.Spend += r.Spend
		t.Sales += r.Sales
		t.UnitsSold += r.UnitsSold
		totals[r.SKU] = t
	}
	return totals, nil
}
