package pricing

import "fmt"

// Ladder selects which historical rule set the evaluator runs.
type Ladder string

const (
	// LadderSimple is the margin-only rule set for deployments without
	// advertising data.
	LadderSimple Ladder = "simple"

	// LadderPlatinum is the full rule set with advertising economics.
	LadderPlatinum Ladder = "platinum"
)

// Config parameterizes one ladder variant. The historical deployments
// drifted on thresholds (8.0 vs 8.1 percent returns, 120 vs 180 days), so
// variants are configuration instances, not separate code paths.
type Config struct {
	Ladder Ladder

	// ReturnRateThreshold is the return-rate percentage above which price
	// hikes are blocked and the refund tax activates. Strictly greater.
	ReturnRateThreshold float64

	// LiquidationDays is the days-of-supply level above which the SKU is
	// liquidated.
	LiquidationDays float64
}

// PlatinumConfig returns the default configuration for the full ladder.
func PlatinumConfig() Config {
	return Config{
		Ladder:              LadderPlatinum,
		ReturnRateThreshold: 8.1,
		LiquidationDays:     180,
	}
}

// SimpleConfig returns the default configuration for the margin-only ladder.
func SimpleConfig() Config {
	return Config{
		Ladder:              LadderSimple,
		ReturnRateThreshold: 8.0,
		LiquidationDays:     120,
	}
}

// ConfigForLadder returns the default configuration for a ladder name.
func ConfigForLadder(name string) (Config, error) {
	switch Ladder(name) {
	case LadderSimple:
		return SimpleConfig(), nil
	case LadderPlatinum:
		return PlatinumConfig(), nil
	default:
		return Config{}, fmt.Errorf("unknown ladder %q", name)
	}
}

// Validate rejects malformed configuration at construction time.
func (c Config) Validate() error {
	switch c.Ladder {
	case LadderSimple, LadderPlatinum:
	default:
		return fmt.Errorf("unknown ladder %q", c.Ladder)
	}
	if c.ReturnRateThreshold < 0 {
		return fmt.Errorf("return rate threshold must be >= 0, got %v", c.ReturnRateThreshold)
	}
	if c.LiquidationDays < 0 {
		return fmt.Errorf("liquidation days must be >= 0, got %v", c.LiquidationDays)
	}
	return nil
}
