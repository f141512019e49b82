package domain

// SKUMetrics is the per-SKU input bundle for one pricing evaluation.
// All percentage fields are on a 0-100 scale; the loader normalizes
// sources that express them as ratios.
type SKUMetrics struct {
	SKU string // product key, informational only

	UnitCost        float64 // true cost to produce/acquire one unit
	CurrentPrice    float64 // current selling price; may be 0 (degenerate)
	CompetitorPrice float64 // average price of comparable offerings

	MinMarginPct    float64 // minimum acceptable gross margin, [0,100)
	TargetMarginPct float64 // desired gross margin, [0,100)

	ReturnRatePct float64 // units returned within trailing window, percent
	InventoryDays float64 // days of supply at current sales velocity

	// Advertising aggregates over the measurement window.
	// Used only by the platinum ladder.
	AdSpend   float64
	AdSales   float64 // ad-attributed revenue
	UnitsSold float64
}
