// Package storage defines the persistence interfaces for evaluation
// inputs: the SKU catalog and raw advertising performance. Recommendations
// are never persisted; every evaluation is recomputed from inputs.
package storage

import (
	"context"
	"time"

	"sku-pricing-lab/internal/domain"
)

// CatalogStore provides access to the SKU catalog. Advertising fields of
// SKUMetrics are not part of the catalog; they come from an
// AdPerformanceStore and are merged by the caller.
type CatalogStore interface {
	// Upsert inserts a SKU or replaces its metrics if it already exists.
	Upsert(ctx context.Context, m *domain.SKUMetrics) error

	// GetBySKU retrieves one SKU's metrics. Returns ErrNotFound if not exists.
	GetBySKU(ctx context.Context, sku string) (*domain.SKUMetrics, error)

	// List retrieves all SKUs ordered by SKU key.
	List(ctx context.Context) ([]*domain.SKUMetrics, error)
}

// AdPerformanceStore provides access to daily advertising performance rows.
type AdPerformanceStore interface {
	// RecordDaily appends daily performance rows.
	RecordDaily(ctx context.Context, rows []*domain.AdPerformanceDay) error

	// WindowTotals sums spend, sales, and units per SKU for days at or
	// after since.
	WindowTotals(ctx context.Context, since time.Time) (map[string]domain.AdTotals, error)
}
