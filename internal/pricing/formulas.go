package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// PriceFromMargin inverts the gross-margin formula: the price at which a
// unit with the given cost earns marginPct.
//
// Precondition: marginPct strictly less than 100. Returns an error instead
// of silently producing an infinite or negative price.
func PriceFromMargin(cost, marginPct float64) (float64, error) {
	if marginPct >= 100 {
		return 0, fmt.Errorf("margin %v%% is not invertible to a price (must be < 100)", marginPct)
	}
	return cost / (1 - marginPct/100), nil
}

// LiquidationPrice balances cash recovery against the margin floor:
// at least a 5% markup over cost while undercutting competitors by 5%.
func LiquidationPrice(cost, competitorPrice float64) float64 {
	return math.Max(cost*1.05, competitorPrice*0.95)
}

// RoundPrice rounds a monetary amount to 2 decimal places. Applied at the
// output boundary only; intermediate computation keeps full float precision.
func RoundPrice(price float64) float64 {
	return decimal.NewFromFloat(price).Round(2).InexactFloat64()
}
