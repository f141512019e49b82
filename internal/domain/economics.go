package domain

// UnitEconomics holds the derived per-unit economics for one evaluation.
// Nothing here is stored beyond the evaluation that produced it.
type UnitEconomics struct {
	// CurrentMargin is (current_price - unit_cost) / current_price.
	// 0 when current_price is 0.
	CurrentMargin float64

	// CPA is ad_spend / units_sold. 0 when no units sold.
	CPA float64

	// ActualACOS is ad spend as a percentage of ad-attributed revenue.
	// 0 when ad_sales is 0.
	ActualACOS float64

	// RefundTax is the modeled refund-loss penalty per unit. Exactly 0 at
	// or below the configured return-rate threshold.
	RefundTax float64

	// TotalLoadedCost is unit_cost + CPA + RefundTax.
	TotalLoadedCost float64

	// NetProfit is current_price - TotalLoadedCost.
	NetProfit float64

	// BreakEvenACOS is the maximum ACOS the margin can absorb before
	// profit turns negative. 0 when current_price is 0.
	BreakEvenACOS float64
}
