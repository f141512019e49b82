package domain

// Strategy identifies the single pricing action chosen for a SKU.
type Strategy string

const (
	// StrategyBlockHike blocks any price change on a high-return SKU.
	StrategyBlockHike Strategy = "BLOCK_HIKE"

	// StrategyLiquidate moves overstocked inventory at a discounted price.
	StrategyLiquidate Strategy = "LIQUIDATE"

	// StrategyDefenseCutAds holds price while advertising burns the margin.
	StrategyDefenseCutAds Strategy = "DEFENSE_CUT_ADS"

	// StrategyProfitRecovery raises price back above the loaded-cost floor.
	StrategyProfitRecovery Strategy = "PROFIT_RECOVERY"

	// StrategyOffenseScale nudges price up while ads are efficient and
	// stock is moving.
	StrategyOffenseScale Strategy = "OFFENSE_SCALE"

	// StrategyCatchUp closes a large gap to the competitor price.
	StrategyCatchUp Strategy = "CATCH_UP"

	// StrategyMarketCatchUp is the margin-only ladder's catch-up action.
	StrategyMarketCatchUp Strategy = "MARKET_CATCH_UP"

	// StrategyMaintain keeps the current price.
	StrategyMaintain Strategy = "MAINTAIN"

	// StrategyError is the sentinel for degenerate input (price is zero).
	StrategyError Strategy = "ERROR"
)

// Severity categorizes a recommendation for presentation purposes.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityPositive Severity = "positive"
	SeverityNeutral  Severity = "neutral"
)

// severityByStrategy derives severity purely from the strategy.
var severityByStrategy = map[Strategy]Severity{
	StrategyBlockHike:      SeverityCritical,
	StrategyLiquidate:      SeverityCritical,
	StrategyDefenseCutAds:  SeverityWarning,
	StrategyProfitRecovery: SeverityWarning,
	StrategyOffenseScale:   SeverityPositive,
	StrategyCatchUp:        SeverityPositive,
	StrategyMarketCatchUp:  SeverityPositive,
	StrategyMaintain:       SeverityNeutral,
	StrategyError:          SeverityCritical,
}

// SeverityOf returns the severity tied to a strategy.
// Unknown strategies map to neutral.
func SeverityOf(s Strategy) Severity {
	if sev, ok := severityByStrategy[s]; ok {
		return sev
	}
	return SeverityNeutral
}

// Recommendation is the output bundle of one pricing evaluation.
type Recommendation struct {
	SKU string

	// RecommendedPrice is rounded to 2 decimal places at this boundary;
	// all intermediate computation keeps full float precision.
	RecommendedPrice float64

	Strategy Strategy
	Reason   string
	Severity Severity

	// Economics exposes the derived intermediates for transparency.
	Economics UnitEconomics
}
