package reporting

import (
	"fmt"
	"time"

	"sku-pricing-lab/internal/domain"
	"sku-pricing-lab/internal/pricing"
)

// Generator produces reports by evaluating SKU metrics through one ladder.
type Generator struct {
	evaluator *pricing.Evaluator
	now       func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(evaluator *pricing.Evaluator) *Generator {
	return &Generator{
		evaluator: evaluator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate evaluates every SKU independently and assembles the report.
// Row order follows input order.
func (g *Generator) Generate(metrics []domain.SKUMetrics) (*Report, error) {
	report := &Report{
		GeneratedAt:    g.now(),
		Config:         g.evaluator.Config(),
		Rows:           make([]EvaluationRow, 0, len(metrics)),
		StrategyCounts: make(map[domain.Strategy]int),
	}

	for _, m := range metrics {
		rec, err := g.evaluator.Evaluate(m)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", m.SKU, err)
		}

		report.Rows = append(report.Rows, EvaluationRow{
			Metrics:        m,
			Recommendation: *rec,
			Bands:          bandsFor(m),
		})
		report.StrategyCounts[rec.Strategy]++
	}

	return report, nil
}

// bandsFor computes the reference price points for one SKU. Margins were
// validated during evaluation, so the inversions cannot fail here.
func bandsFor(m domain.SKUMetrics) PriceBands {
	floor, _ := pricing.PriceFromMargin(m.UnitCost, m.MinMarginPct)
	target, _ := pricing.PriceFromMargin(m.UnitCost, m.TargetMarginPct)

	return PriceBands{
		UnitCost:      m.UnitCost,
		MarginFloor:   floor,
		CurrentPrice:  m.CurrentPrice,
		TargetIdeal:   target,
		CompetitorAvg: m.CompetitorPrice,
	}
}
