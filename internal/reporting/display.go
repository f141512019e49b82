package reporting

import "sku-pricing-lab/internal/domain"

// DisplayAttrs are the presentation attributes for one strategy. They live
// here so the engine stays free of colors and icons; renderers and UIs map
// strategy to display through this table instead of re-deriving anything.
type DisplayAttrs struct {
	Label string
	Icon  string
	Color string
}

var displayByStrategy = map[domain.Strategy]DisplayAttrs{
	domain.StrategyBlockHike:      {Label: "Blocked (High Returns)", Icon: "⛔", Color: "red"},
	domain.StrategyLiquidate:      {Label: "Liquidate", Icon: "📉", Color: "orange"},
	domain.StrategyDefenseCutAds:  {Label: "Defense: Cut Ads", Icon: "🛡️", Color: "orange"},
	domain.StrategyProfitRecovery: {Label: "Profit Recovery", Icon: "📈", Color: "orange"},
	domain.StrategyOffenseScale:   {Label: "Offense: Scale Up", Icon: "🚀", Color: "green"},
	domain.StrategyCatchUp:        {Label: "Market Catch-Up", Icon: "🚀", Color: "green"},
	domain.StrategyMarketCatchUp:  {Label: "Market Catch-Up", Icon: "🚀", Color: "green"},
	domain.StrategyMaintain:       {Label: "Maintain", Icon: "⚖️", Color: "gray"},
	domain.StrategyError:          {Label: "Input Error", Icon: "❗", Color: "red"},
}

// Display returns the presentation attributes for a strategy.
func Display(s domain.Strategy) DisplayAttrs {
	if attrs, ok := displayByStrategy[s]; ok {
		return attrs
	}
	return DisplayAttrs{Label: string(s), Color: "gray"}
}
