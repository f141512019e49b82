package clickhouse

import (
	"context"
	"fmt"
	"time"

	"sku-pricing-lab/internal/domain"
	"sku-pricing-lab/internal/storage"
)

// AdPerformanceStore implements storage.AdPerformanceStore using ClickHouse.
// Daily advertising rows are append-only facts; window totals aggregate
// them server-side.
type AdPerformanceStore struct {
	conn *Conn
}

// NewAdPerformanceStore creates a new AdPerformanceStore.
func NewAdPerformanceStore(conn *Conn) *AdPerformanceStore {
	return &AdPerformanceStore{conn: conn}
}

// Compile-time interface check.
var _ storage.AdPerformanceStore = (*AdPerformanceStore)(nil)

// RecordDaily appends daily performance rows.
func (s *AdPerformanceStore) RecordDaily(ctx context.Context, rows []*domain.AdPerformanceDay) error {
	if len(rows) == 0 {
		return nil
	}
	for _, r := range rows {
		if r == nil || r.SKU == "" {
			return storage.ErrInvalidInput
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO ad_performance_daily (sku, day, spend, sales, units_sold)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range rows {
		if err := batch.Append(r.SKU, r.Day, r.Spend, r.Sales, r.UnitsSold); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// WindowTotals sums spend, sales, and units per SKU for days at or after since.
func (s *AdPerformanceStore) WindowTotals(ctx context.Context, since time.Time) (map[string]domain.AdTotals, error) {
	query := `
		SELECT sku, sum(spend), sum(sales), sum(units_sold)
		FROM ad_performance_daily
		WHERE day >= ?
		GROUP BY sku
	`

	rows, err := s.conn.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("query window totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]domain.AdTotals)
	for rows.Next() {
		var sku string
		var t domain.AdTotals
		if err := rows.Scan(&sku, &t.Spend, &t.Sales, &t.UnitsSold); err != nil {
			return nil, fmt.Errorf("scan window totals: %w", err)
		}
		totals[sku] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate window totals: %w", err)
	}
	return totals, nil
}
