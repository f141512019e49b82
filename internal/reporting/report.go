package reporting

import (
	"time"

	"sku-pricing-lab/internal/domain"
	"sku-pricing-lab/internal/pricing"
)

// Report is the batch evaluation output consumed by the renderers.
type Report struct {
	GeneratedAt time.Time
	Config      pricing.Config

	Rows []EvaluationRow

	// StrategyCounts is the distribution of chosen strategies.
	StrategyCounts map[domain.Strategy]int
}

// EvaluationRow pairs one SKU's inputs with its recommendation and the
// price bands shown in the position analysis.
type EvaluationRow struct {
	Metrics        domain.SKUMetrics
	Recommendation domain.Recommendation
	Bands          PriceBands
}

// PriceBands are the reference price points for one SKU: the original tool
// charted these side by side to show where the current price sits.
type PriceBands struct {
	UnitCost      float64
	MarginFloor   float64 // price at the minimum acceptable margin
	CurrentPrice  float64
	TargetIdeal   float64 // price at the target margin
	CompetitorAvg float64
}
