package pricing

import (
	"math"
	"testing"

	"sku-pricing-lab/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeEconomics(t *testing.T) {
	m := domain.SKUMetrics{
		UnitCost:        10,
		CurrentPrice:    20,
		CompetitorPrice: 22,
		ReturnRatePct:   2,
		InventoryDays:   45,
		AdSpend:         500,
		AdSales:         2000,
		UnitsSold:       100,
	}

	eco := ComputeEconomics(m, PlatinumConfig())

	if !almostEqual(eco.CPA, 5) {
		t.Errorf("CPA = %v, want 5", eco.CPA)
	}
	if !almostEqual(eco.ActualACOS, 25) {
		t.Errorf("ActualACOS = %v, want 25", eco.ActualACOS)
	}
	if eco.RefundTax != 0 {
		t.Errorf("RefundTax = %v, want 0 (returns below threshold)", eco.RefundTax)
	}
	if !almostEqual(eco.TotalLoadedCost, 15) {
		t.Errorf("TotalLoadedCost = %v, want 15", eco.TotalLoadedCost)
	}
	if !almostEqual(eco.NetProfit, 5) {
		t.Errorf("NetProfit = %v, want 5", eco.NetProfit)
	}
	if !almostEqual(eco.BreakEvenACOS, 50) {
		t.Errorf("BreakEvenACOS = %v, want 50", eco.BreakEvenACOS)
	}
	if !almostEqual(eco.CurrentMargin, 0.5) {
		t.Errorf("CurrentMargin = %v, want 0.5", eco.CurrentMargin)
	}
}

func TestComputeEconomics_ZeroDenominators(t *testing.T) {
	// Each guarded ratio is 0 when its denominator is 0 — a policy
	// decision, not an error.
	m := domain.SKUMetrics{
		UnitCost:     10,
		CurrentPrice: 0,
		AdSpend:      500,
		AdSales:      0,
		UnitsSold:    0,
	}

	eco := ComputeEconomics(m, PlatinumConfig())

	if eco.CurrentMargin != 0 {
		t.Errorf("CurrentMargin = %v, want 0", eco.CurrentMargin)
	}
	if eco.CPA != 0 {
		t.Errorf("CPA = %v, want 0", eco.CPA)
	}
	if eco.ActualACOS != 0 {
		t.Errorf("ActualACOS = %v, want 0", eco.ActualACOS)
	}
	if eco.BreakEvenACOS != 0 {
		t.Errorf("BreakEvenACOS = %v, want 0", eco.BreakEvenACOS)
	}
}

func TestComputeEconomics_RefundTaxActivation(t *testing.T) {
	cfg := PlatinumConfig() // threshold 8.1

	base := domain.SKUMetrics{UnitCost: 10, CurrentPrice: 20}

	// Exactly at the threshold: no tax.
	base.ReturnRatePct = 8.1
	if eco := ComputeEconomics(base, cfg); eco.RefundTax != 0 {
		t.Errorf("RefundTax at threshold = %v, want 0", eco.RefundTax)
	}

	// Strictly above: tax is return_rate/100 * price.
	base.ReturnRatePct = 10
	eco := ComputeEconomics(base, cfg)
	if !almostEqual(eco.RefundTax, 2) {
		t.Errorf("RefundTax = %v, want 2", eco.RefundTax)
	}
	if !almostEqual(eco.TotalLoadedCost, 12) {
		t.Errorf("TotalLoadedCost = %v, want 12", eco.TotalLoadedCost)
	}
	// Break-even ACOS shrinks by the refund tax share of price.
	if !almostEqual(eco.BreakEvenACOS, 40) {
		t.Errorf("BreakEvenACOS = %v, want 40", eco.BreakEvenACOS)
	}
}
