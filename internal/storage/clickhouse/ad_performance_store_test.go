package clickhouse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sku-pricing-lab/internal/domain"
	"sku-pricing-lab/internal/storage"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestAdPerformanceStore_RecordAndWindowTotals(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewAdPerformanceStore(conn)
	ctx := context.Background()

	rows := []*domain.AdPerformanceDay{
		{SKU: "A", Day: day(t, "2026-08-01"), Spend: 300, Sales: 1200, UnitsSold: 60},
		{SKU: "A", Day: day(t, "2026-08-02"), Spend: 200, Sales: 800, UnitsSold: 40},
		{SKU: "B", Day: day(t, "2026-08-02"), Spend: 50, Sales: 400, UnitsSold: 20},
		{SKU: "A", Day: day(t, "2026-07-01"), Spend: 999, Sales: 999, UnitsSold: 999},
	}
	require.NoError(t, store.RecordDaily(ctx, rows))

	totals, err := store.WindowTotals(ctx, day(t, "2026-08-01"))
	require.NoError(t, err)
	require.Len(t, totals, 2)

	require.Equal(t, domain.AdTotals{Spend: 500, Sales: 2000, UnitsSold: 100}, totals["A"])
	require.Equal(t, domain.AdTotals{Spend: 50, Sales: 400, UnitsSold: 20}, totals["B"])
}

func TestAdPerformanceStore_EmptyBatchIsNoop(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewAdPerformanceStore(conn)
	require.NoError(t, store.RecordDaily(context.Background(), nil))
}

func TestAdPerformanceStore_InvalidInput(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewAdPerformanceStore(conn)
	err := store.RecordDaily(context.Background(), []*domain.AdPerformanceDay{{SKU: ""}})
	require.ErrorIs(t, err, storage.ErrInvalidInput)
}
