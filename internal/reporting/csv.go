package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders evaluation rows as a CSV string.
func RenderCSV(rows []EvaluationRow) string {
	var sb strings.Builder

	sb.WriteString("sku,current_price,competitor_price,recommended_price,delta,strategy,severity,")
	sb.WriteString("current_margin,cpa,actual_acos,break_even_acos,refund_tax,total_loaded_cost,net_profit,reason\n")

	for _, row := range rows {
		rec := row.Recommendation
		eco := rec.Economics
		sb.WriteString(fmt.Sprintf("%s,%.2f,%.2f,%.2f,%.2f,%s,%s,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%q\n",
			row.Metrics.SKU,
			row.Metrics.CurrentPrice,
			row.Metrics.CompetitorPrice,
			rec.RecommendedPrice,
			rec.RecommendedPrice-row.Metrics.CurrentPrice,
			rec.Strategy,
			rec.Severity,
			eco.CurrentMargin,
			eco.CPA,
			eco.ActualACOS,
			eco.BreakEvenACOS,
			eco.RefundTax,
			eco.TotalLoadedCost,
			eco.NetProfit,
			rec.Reason,
		))
	}

	return sb.String()
}
