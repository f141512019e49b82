package pricing

import (
	"fmt"
	"math"

	"sku-pricing-lab/internal/domain"
)

// Thresholds internal to individual ladder rules. Unlike the block and
// liquidation thresholds these never drifted between deployments, so they
// stay constants rather than configuration.
const (
	// offenseMaxInventoryDays caps days of supply for the offensive
	// price nudge: stock must be moving before raising price.
	offenseMaxInventoryDays = 90

	// offenseACOSHeadroom requires actual ACOS comfortably below break
	// even (80% of it) before scaling up.
	offenseACOSHeadroom = 0.8

	// catchUpGapRatio marks a SKU as severely underpriced when its price
	// is below 90% of the competitor average.
	catchUpGapRatio = 0.9

	// simpleCatchUpGap is the absolute underpricing gap (in currency
	// units) that triggers the margin-only ladder's catch-up rule.
	simpleCatchUpGap = 1.0

	// simpleCatchUpUndercut is how far below the competitor the
	// margin-only catch-up lands.
	simpleCatchUpUndercut = 0.50
)

// Evaluator runs one ladder variant over SKU metrics. It is pure and
// stateless: every call is fully determined by its inputs, safe to repeat
// or to run from multiple goroutines.
type Evaluator struct {
	cfg Config
}

// NewEvaluator creates an evaluator for the given ladder configuration.
// Malformed configuration is rejected here, not at evaluation time.
func NewEvaluator(cfg Config) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ladder config: %w", err)
	}
	return &Evaluator{cfg: cfg}, nil
}

// Config returns the ladder configuration the evaluator runs.
func (e *Evaluator) Config() Config {
	return e.cfg
}

// Evaluate maps one SKU's metrics to a recommendation. Exactly one ladder
// rule fires; the first matching rule wins.
//
// A zero current price is an expected degenerate case and yields the ERROR
// sentinel, not an error. Margin percentages outside [0,100) are malformed
// input and yield an error.
func (e *Evaluator) Evaluate(m domain.SKUMetrics) (*domain.Recommendation, error) {
	if m.CurrentPrice == 0 {
		return finish(&domain.Recommendation{
			SKU:              m.SKU,
			RecommendedPrice: 0,
			Strategy:         domain.StrategyError,
			Reason:           "price is zero",
		}), nil
	}

	if err := validateMargins(m); err != nil {
		return nil, err
	}

	eco := ComputeEconomics(m, e.cfg)

	var rec *domain.Recommendation
	switch e.cfg.Ladder {
	case LadderSimple:
		rec = e.evaluateSimple(m, eco)
	default:
		rec = e.evaluatePlatinum(m, eco)
	}

	rec.SKU = m.SKU
	rec.Economics = eco
	return finish(rec), nil
}

// evaluatePlatinum runs the full ladder with advertising economics.
func (e *Evaluator) evaluatePlatinum(m domain.SKUMetrics, eco domain.UnitEconomics) *domain.Recommendation {
	// Rule 1 is an absolute block: raising prices on a high-return SKU is
	// operationally unsafe regardless of every other signal.
	if m.ReturnRatePct > e.cfg.ReturnRateThreshold {
		return &domain.Recommendation{
			Strategy:         domain.StrategyBlockHike,
			RecommendedPrice: m.CurrentPrice,
			Reason: fmt.Sprintf("return rate %.1f%% exceeds %.1f%%: fix quality before any price move",
				m.ReturnRatePct, e.cfg.ReturnRateThreshold),
		}
	}

	if m.InventoryDays > e.cfg.LiquidationDays {
		return &domain.Recommendation{
			Strategy:         domain.StrategyLiquidate,
			RecommendedPrice: LiquidationPrice(m.UnitCost, m.CompetitorPrice),
			Reason: fmt.Sprintf("%.0f days of supply exceeds %.0f: move stock without selling below cost",
				m.InventoryDays, e.cfg.LiquidationDays),
		}
	}

	if eco.ActualACOS > eco.BreakEvenACOS {
		return &domain.Recommendation{
			Strategy:         domain.StrategyDefenseCutAds,
			RecommendedPrice: m.CurrentPrice,
			Reason: fmt.Sprintf("ACOS %.1f%% is above break-even %.1f%%: cut ad spend, hold price",
				eco.ActualACOS, eco.BreakEvenACOS),
		}
	}

	if eco.NetProfit < 0 {
		// Loaded cost already includes CPA and refund tax, so the floor
		// price restores the minimum margin over the true cost.
		price, _ := PriceFromMargin(eco.TotalLoadedCost, m.MinMarginPct)
		return &domain.Recommendation{
			Strategy:         domain.StrategyProfitRecovery,
			RecommendedPrice: price,
			Reason: fmt.Sprintf("net profit %.2f per unit: reprice to earn %.0f%% over loaded cost",
				eco.NetProfit, m.MinMarginPct),
		}
	}

	if eco.ActualACOS < eco.BreakEvenACOS*offenseACOSHeadroom &&
		m.InventoryDays < offenseMaxInventoryDays &&
		m.CurrentPrice < m.CompetitorPrice {
		return &domain.Recommendation{
			Strategy:         domain.StrategyOffenseScale,
			RecommendedPrice: math.Min(m.CompetitorPrice, m.CurrentPrice*1.05),
			Reason:           "ads efficient, stock moving, priced below market: scale price up 5%",
		}
	}

	if m.CurrentPrice < m.CompetitorPrice*catchUpGapRatio {
		return &domain.Recommendation{
			Strategy:         domain.StrategyCatchUp,
			RecommendedPrice: m.CompetitorPrice * 0.95,
			Reason: fmt.Sprintf("price %.2f is more than 10%% below competitor %.2f: close the gap",
				m.CurrentPrice, m.CompetitorPrice),
		}
	}

	return &domain.Recommendation{
		Strategy:         domain.StrategyMaintain,
		RecommendedPrice: m.CurrentPrice,
		Reason:           "no signal crossed a threshold: hold current price",
	}
}

// evaluateSimple runs the margin-only ladder used by deployments without
// advertising data.
func (e *Evaluator) evaluateSimple(m domain.SKUMetrics, eco domain.UnitEconomics) *domain.Recommendation {
	if m.ReturnRatePct > e.cfg.ReturnRateThreshold {
		return &domain.Recommendation{
			Strategy:         domain.StrategyBlockHike,
			RecommendedPrice: m.CurrentPrice,
			Reason: fmt.Sprintf("return rate %.1f%% exceeds %.1f%%: fix quality before any price move",
				m.ReturnRatePct, e.cfg.ReturnRateThreshold),
		}
	}

	// Margins were validated in Evaluate, so inversion cannot fail here.
	floorPrice, _ := PriceFromMargin(m.UnitCost, m.MinMarginPct)
	targetPrice, _ := PriceFromMargin(m.UnitCost, m.TargetMarginPct)

	if m.CurrentPrice < floorPrice {
		// Restore the minimum-margin floor, with the target-margin price
		// as the ceiling bound.
		return &domain.Recommendation{
			Strategy:         domain.StrategyProfitRecovery,
			RecommendedPrice: math.Min(floorPrice, targetPrice),
			Reason: fmt.Sprintf("price %.2f is below the %.0f%% margin floor %.2f",
				m.CurrentPrice, m.MinMarginPct, floorPrice),
		}
	}

	if m.InventoryDays > e.cfg.LiquidationDays {
		return &domain.Recommendation{
			Strategy:         domain.StrategyLiquidate,
			RecommendedPrice: LiquidationPrice(m.UnitCost, m.CompetitorPrice),
			Reason: fmt.Sprintf("%.0f days of supply exceeds %.0f: move stock without selling below cost",
				m.InventoryDays, e.cfg.LiquidationDays),
		}
	}

	if m.CurrentPrice < m.CompetitorPrice-simpleCatchUpGap &&
		eco.CurrentMargin < m.TargetMarginPct/100 {
		return &domain.Recommendation{
			Strategy:         domain.StrategyMarketCatchUp,
			RecommendedPrice: math.Min(targetPrice, m.CompetitorPrice-simpleCatchUpUndercut),
			Reason: fmt.Sprintf("underpriced against competitor %.2f and below the %.0f%% target margin",
				m.CompetitorPrice, m.TargetMarginPct),
		}
	}

	return &domain.Recommendation{
		Strategy:         domain.StrategyMaintain,
		RecommendedPrice: m.CurrentPrice,
		Reason:           "no signal crossed a threshold: hold current price",
	}
}

// finish applies the output-boundary invariants: severity derived from
// strategy, price rounded to 2 decimal places.
func finish(rec *domain.Recommendation) *domain.Recommendation {
	rec.Severity = domain.SeverityOf(rec.Strategy)
	rec.RecommendedPrice = RoundPrice(rec.RecommendedPrice)
	return rec
}

// validateMargins rejects margin percentages that cannot be inverted to a
// price. The relation target >= min is historically unvalidated and stays
// the caller's responsibility.
func validateMargins(m domain.SKUMetrics) error {
	if m.MinMarginPct < 0 || m.MinMarginPct >= 100 {
		return fmt.Errorf("sku %s: min margin %v%% out of range [0,100)", m.SKU, m.MinMarginPct)
	}
	if m.TargetMarginPct < 0 || m.TargetMarginPct >= 100 {
		return fmt.Errorf("sku %s: target margin %v%% out of range [0,100)", m.SKU, m.TargetMarginPct)
	}
	return nil
}
