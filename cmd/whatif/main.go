// Package main provides the single-SKU what-if simulator: enter product
// parameters, get the recommended price, strategy, and decision logic.
package main

import (
	"flag"
	"fmt"
	"os"

	"sku-pricing-lab/internal/domain"
	"sku-pricing-lab/internal/pricing"
	"sku-pricing-lab/internal/reporting"
)

func main() {
	ladder := flag.String("ladder", "platinum", "Rule set to run: simple or platinum")
	returnThreshold := flag.Float64("return-threshold", -1, "Override the return-rate block threshold (percent)")
	liquidationDays := flag.Float64("liquidation-days", -1, "Override the liquidation days-of-supply threshold")

	sku := flag.String("sku", "WHAT-IF", "SKU name (informational)")
	cost := flag.Float64("cost", 15.00, "True unit cost")
	price := flag.Float64("price", 22.00, "Current selling price")
	competitor := flag.Float64("competitor", 25.00, "Average competitor price")
	minMargin := flag.Float64("min-margin", 20, "Minimum acceptable margin (percent)")
	targetMargin := flag.Float64("target-margin", 40, "Target gross margin (percent)")
	returns := flag.Float64("returns", 2.5, "Return rate (percent)")
	inventory := flag.Float64("inventory", 45, "Days of supply")
	adSpend := flag.Float64("ad-spend", 0, "Advertising spend over the window")
	adSales := flag.Float64("ad-sales", 0, "Ad-attributed revenue over the window")
	unitsSold := flag.Float64("units-sold", 0, "Units sold over the window")
	flag.Parse()

	cfg, err := pricing.ConfigForLadder(*ladder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *returnThreshold >= 0 {
		cfg.ReturnRateThreshold = *returnThreshold
	}
	if *liquidationDays >= 0 {
		cfg.LiquidationDays = *liquidationDays
	}

	evaluator, err := pricing.NewEvaluator(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	metrics := domain.SKUMetrics{
		SKU:             *sku,
		UnitCost:        *cost,
		CurrentPrice:    *price,
		CompetitorPrice: *competitor,
		MinMarginPct:    *minMargin,
		TargetMarginPct: *targetMargin,
		ReturnRatePct:   *returns,
		InventoryDays:   *inventory,
		AdSpend:         *adSpend,
		AdSales:         *adSales,
		UnitsSold:       *unitsSold,
	}

	report, err := reporting.NewGenerator(evaluator).Generate([]domain.SKUMetrics{metrics})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(reporting.RenderMarkdown(report))
}
