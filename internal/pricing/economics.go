package pricing

import "sku-pricing-lab/internal/domain"

// ComputeEconomics derives per-unit economics from raw SKU metrics.
//
// Zero denominators are a numeric policy decision, not an error: each
// guarded ratio is 0 when its denominator is 0. The refund tax activates
// only strictly above the configured return-rate threshold; at or below it
// is exactly 0.
func ComputeEconomics(m domain.SKUMetrics, cfg Config) domain.UnitEconomics {
	var eco domain.UnitEconomics

	if m.CurrentPrice != 0 {
		eco.CurrentMargin = (m.CurrentPrice - m.UnitCost) / m.CurrentPrice
	}

	if m.UnitsSold > 0 {
		eco.CPA = m.AdSpend / m.UnitsSold
	}

	if m.AdSales > 0 {
		eco.ActualACOS = m.AdSpend / m.AdSales * 100
	}

	if m.ReturnRatePct > cfg.ReturnRateThreshold {
		eco.RefundTax = m.ReturnRatePct / 100 * m.CurrentPrice
	}

	eco.TotalLoadedCost = m.UnitCost + eco.CPA + eco.RefundTax
	eco.NetProfit = m.CurrentPrice - eco.TotalLoadedCost

	if m.CurrentPrice > 0 {
		eco.BreakEvenACOS = (m.CurrentPrice - (m.UnitCost + eco.RefundTax)) / m.CurrentPrice * 100
	}

	return eco
}
