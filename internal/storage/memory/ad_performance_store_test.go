package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"sku-pricing-lab/internal/domain"
	"sku-pricing-lab/internal/storage"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAdPerformanceStore_WindowTotals(t *testing.T) {
	store := NewAdPerformanceStore()
	ctx := context.Background()

	rows := []*domain.AdPerformanceDay{
		{SKU: "A", Day: day("2026-08-01"), Spend: 300, Sales: 1200, UnitsSold: 60},
		{SKU: "A", Day: day("2026-08-02"), Spend: 200, Sales: 800, UnitsSold: 40},
		{SKU: "B", Day: day("2026-08-02"), Spend: 50, Sales: 400, UnitsSold: 20},
		{SKU: "A", Day: day("2026-07-01"), Spend: 999, Sales: 999, UnitsSold: 999}, // outside window
	}
	if err := store.RecordDaily(ctx, rows); err != nil {
		t.Fatalf("RecordDaily failed: %v", err)
	}

	totals, err := store.WindowTotals(ctx, day("2026-08-01"))
	if err != nil {
		t.Fatalf("WindowTotals failed: %v", err)
	}

	a := totals["A"]
	if a.Spend != 500 || a.Sales != 2000 || a.UnitsSold != 100 {
		t.Errorf("totals[A] = %+v, want {500 2000 100}", a)
	}
	b := totals["B"]
	if b.Spend != 50 || b.Sales != 400 || b.UnitsSold != 20 {
		t.Errorf("totals[B] = %+v, want {50 400 20}", b)
	}
}

func TestAdPerformanceStore_InvalidInput(t *testing.T) {
	store := NewAdPerformanceStore()
	ctx := context.Background()

	err := store.RecordDaily(ctx, []*domain.AdPerformanceDay{{SKU: ""}})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}
