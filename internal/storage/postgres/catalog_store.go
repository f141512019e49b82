package postgres

import (
	"context"
	"fmt"

	"sku-pricing-lab/internal/domain"
	"sku-pricing-lab/internal/storage"
)

// CatalogStore implements storage.CatalogStore using PostgreSQL.
type CatalogStore struct {
	pool *Pool
}

// NewCatalogStore creates a new CatalogStore.
func NewCatalogStore(pool *Pool) *CatalogStore {
	return &CatalogStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CatalogStore = (*CatalogStore)(nil)

// Upsert inserts a SKU or replaces its metrics if it already exists.
func (s *CatalogStore) Upsert(ctx context.Context, m *domain.SKUMetrics) error {
	if m == nil || m.SKU == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO sku_catalog (
			sku, unit_cost, current_price, competitor_price,
			min_margin_pct, target_margin_pct, return_rate_pct, inventory_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (sku) DO UPDATE SET
			unit_cost = EXCLUDED.unit_cost,
			current_price = EXCLUDED.current_price,
			competitor_price = EXCLUDED.competitor_price,
			min_margin_pct = EXCLUDED.min_margin_pct,
			target_margin_pct = EXCLUDED.target_margin_pct,
			return_rate_pct = EXCLUDED.return_rate_pct,
			inventory_days = EXCLUDED.inventory_days,
			updated_at = now()
	`

	_, err := s.pool.Exec(ctx, query,
		m.SKU,
		m.UnitCost,
		m.CurrentPrice,
		m.CompetitorPrice,
		m.MinMarginPct,
		m.TargetMarginPct,
		m.ReturnRatePct,
		m.InventoryDays,
	)
	if err != nil {
		return fmt.Errorf("upsert sku: %w", err)
	}
	return nil
}

// GetBySKU retrieves one SKU's metrics. Returns ErrNotFound if not exists.
func (s *CatalogStore) GetBySKU(ctx context.Context, sku string) (*domain.SKUMetrics, error) {
	query := `
		SELECT sku, unit_cost, current_price, competitor_price,
		       min_margin_pct, target_margin_pct, return_rate_pct, inventory_days
		FROM sku_catalog
		WHERE sku = $1
	`

	var m domain.SKUMetrics
	err := s.pool.QueryRow(ctx, query, sku).Scan(
		&m.SKU,
		&m.UnitCost,
		&m.CurrentPrice,
		&m.CompetitorPrice,
		&m.MinMarginPct,
		&m.TargetMarginPct,
		&m.ReturnRatePct,
		&m.InventoryDays,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get sku: %w", err)
	}
	return &m, nil
}

// List retrieves all SKUs ordered by SKU key.
func (s *CatalogStore) List(ctx context.Context) ([]*domain.SKUMetrics, error) {
	query := `
		SELECT sku, unit_cost, current_price, competitor_price,
		       min_margin_pct, target_margin_pct, return_rate_pct, inventory_days
		FROM sku_catalog
		ORDER BY sku ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list skus: %w", err)
	}
	defer rows.Close()

	var out []*domain.SKUMetrics
	for rows.Next() {
		var m domain.SKUMetrics
		if err := rows.Scan(
			&m.SKU,
			&m.UnitCost,
			&m.CurrentPrice,
			&m.CompetitorPrice,
			&m.MinMarginPct,
			&m.TargetMarginPct,
			&m.ReturnRatePct,
			&m.InventoryDays,
		); err != nil {
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skus: %w", err)
	}
	return out, nil
}
