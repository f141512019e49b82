package reporting

import (
	"fmt"
	"strings"
)

// RenderMarkdown renders a Report as a Markdown string.
func RenderMarkdown(report *Report) string {
	var sb strings.Builder

	sb.WriteString("# Pricing Recommendation Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))
	sb.WriteString(fmt.Sprintf("Ladder: %s (return-rate block > %.1f%%, liquidation > %.0f days)\n\n",
		report.Config.Ladder, report.Config.ReturnRateThreshold, report.Config.LiquidationDays))

	// Summary table
	sb.WriteString("## Recommendations\n\n")
	sb.WriteString("| SKU | Current | Recommended | Delta | Strategy | Severity | Reason |\n")
	sb.WriteString("|-----|---------|-------------|-------|----------|----------|--------|\n")
	for _, row := range report.Rows {
		rec := row.Recommendation
		attrs := Display(rec.Strategy)
		delta := rec.RecommendedPrice - row.Metrics.CurrentPrice
		sb.WriteString(fmt.Sprintf("| %s | $%.2f | $%.2f | %+.2f | %s %s | %s | %s |\n",
			row.Metrics.SKU,
			row.Metrics.CurrentPrice,
			rec.RecommendedPrice,
			delta,
			attrs.Icon, attrs.Label,
			rec.Severity,
			rec.Reason,
		))
	}
	sb.WriteString("\n")

	// Strategy distribution
	sb.WriteString("## Strategy Distribution\n\n")
	sb.WriteString("| Strategy | Count |\n")
	sb.WriteString("|----------|-------|\n")
	emitted := make(map[string]bool)
	for _, row := range report.Rows {
		s := row.Recommendation.Strategy
		if emitted[string(s)] {
			continue
		}
		emitted[string(s)] = true
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", Display(s).Label, report.StrategyCounts[s]))
	}
	sb.WriteString("\n")

	// Per-SKU detail
	for _, row := range report.Rows {
		sb.WriteString(renderDetail(&row))
	}

	return sb.String()
}

// renderDetail renders one SKU's price position analysis and decision
// logic panel.
func renderDetail(row *EvaluationRow) string {
	var sb strings.Builder

	m := row.Metrics
	rec := row.Recommendation
	eco := rec.Economics
	attrs := Display(rec.Strategy)

	sb.WriteString(fmt.Sprintf("## %s\n\n", m.SKU))

	sb.WriteString("### Price Position\n\n")
	sb.WriteString("| Price Point | Value |\n")
	sb.WriteString("|-------------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Unit Cost | $%.2f |\n", row.Bands.UnitCost))
	sb.WriteString(fmt.Sprintf("| Min Margin Floor | $%.2f |\n", row.Bands.MarginFloor))
	sb.WriteString(fmt.Sprintf("| Current Price | $%.2f |\n", row.Bands.CurrentPrice))
	sb.WriteString(fmt.Sprintf("| Target Ideal | $%.2f |\n", row.Bands.TargetIdeal))
	sb.WriteString(fmt.Sprintf("| Competitor Avg | $%.2f |\n\n", row.Bands.CompetitorAvg))

	sb.WriteString("### Decision Logic\n\n")
	sb.WriteString(fmt.Sprintf("1. **Floor check:** cost / (1 - %.0f%%) = $%.2f\n",
		m.MinMarginPct, row.Bands.MarginFloor))
	sb.WriteString(fmt.Sprintf("2. **Ceiling check:** competitor at $%.2f\n", m.CompetitorPrice))
	sb.WriteString(fmt.Sprintf("3. **Health check:** returns %.1f%%, %.0f days of supply\n",
		m.ReturnRatePct, m.InventoryDays))
	if m.UnitsSold > 0 || m.AdSales > 0 {
		sb.WriteString(fmt.Sprintf("4. **Ad economics:** ACOS %.1f%% vs break-even %.1f%%, net profit $%.2f/unit\n",
			eco.ActualACOS, eco.BreakEvenACOS, eco.NetProfit))
	}
	sb.WriteString(fmt.Sprintf("\n**Verdict:** %s %s — %s\n\n", attrs.Icon, attrs.Label, rec.Reason))

	return sb.String()
}
