// Package loader reads SKU metrics from CSV exports and merges them into
// fully-populated evaluation inputs. The engine requires every field
// present and percentages on a 0-100 scale; this package owns both
// guarantees.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"sku-pricing-lab/internal/domain"
)

// catalogColumns maps recognized catalog headers to a setter and a scale
// policy. Columns named with a _pct suffix are already 0-100; the bare
// margin/return columns are ratios and scale by 100. The policy is bound
// to the column name, never guessed from the data.
var catalogColumns = map[string]struct {
	set   func(*domain.SKUMetrics, float64)
	ratio bool
}{
	"unit_cost":         {set: func(m *domain.SKUMetrics, v float64) { m.UnitCost = v }},
	"current_price":     {set: func(m *domain.SKUMetrics, v float64) { m.CurrentPrice = v }},
	"competitor_price":  {set: func(m *domain.SKUMetrics, v float64) { m.CompetitorPrice = v }},
	"min_margin_pct":    {set: func(m *domain.SKUMetrics, v float64) { m.MinMarginPct = v }},
	"min_margin":        {set: func(m *domain.SKUMetrics, v float64) { m.MinMarginPct = v }, ratio: true},
	"target_margin_pct": {set: func(m *domain.SKUMetrics, v float64) { m.TargetMarginPct = v }},
	"target_margin":     {set: func(m *domain.SKUMetrics, v float64) { m.TargetMarginPct = v }, ratio: true},
	"return_rate_pct":   {set: func(m *domain.SKUMetrics, v float64) { m.ReturnRatePct = v }},
	"return_rate":       {set: func(m *domain.SKUMetrics, v float64) { m.ReturnRatePct = v }, ratio: true},
	"inventory_days":    {set: func(m *domain.SKUMetrics, v float64) { m.InventoryDays = v }},
}

// LoadCatalog reads the SKU catalog CSV. Advertising fields stay zero
// until merged. Missing columns and blank cells default to 0.
func LoadCatalog(path string) ([]domain.SKUMetrics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	metrics, err := readCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return metrics, nil
}

func readCatalog(r io.Reader) ([]domain.SKUMetrics, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	skuCol := -1
	for i, name := range header {
		if normalizeHeader(name) == "sku" {
			skuCol = i
			break
		}
	}
	if skuCol < 0 {
		return nil, fmt.Errorf("catalog has no sku column")
	}

	var metrics []domain.SKUMetrics
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		m := domain.SKUMetrics{SKU: strings.TrimSpace(record[skuCol])}
		if m.SKU == "" {
			return nil, fmt.Errorf("line %d: empty sku", line)
		}

		for i, name := range header {
			col, ok := catalogColumns[normalizeHeader(name)]
			if !ok || i >= len(record) {
				continue
			}
			v, err := parseCell(record[i])
			if err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w", line, name, err)
			}
			if col.ratio {
				v *= 100
			}
			col.set(&m, v)
		}

		metrics = append(metrics, m)
	}

	return metrics, nil
}

// LoadAdPerformance reads the advertising export, summing rows per SKU.
// Expected columns: sku, ad_spend, ad_sales, units_sold.
func LoadAdPerformance(path string) (map[string]domain.AdTotals, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ad performance: %w", err)
	}
	defer f.Close()

	totals, err := readAdPerformance(f)
	if err != nil {
		return nil, fmt.Errorf("read ad performance %s: %w", path, err)
	}
	return totals, nil
}

func readAdPerformance(r io.Reader) (map[string]domain.AdTotals, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int)
	for i, name := range header {
		cols[normalizeHeader(name)] = i
	}
	skuCol, ok := cols["sku"]
	if !ok {
		return nil, fmt.Errorf("ad performance has no sku column")
	}

	totals := make(map[string]domain.AdTotals)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		sku := strings.TrimSpace(record[skuCol])
		if sku == "" {
			return nil, fmt.Errorf("line %d: empty sku", line)
		}

		row := totals[sku]
		for name, add := range map[string]*float64{
			"ad_spend":   &row.Spend,
			"ad_sales":   &row.Sales,
			"units_sold": &row.UnitsSold,
		} {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				continue
			}
			v, err := parseCell(record[i])
			if err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w", line, name, err)
			}
			*add += v
		}
		totals[sku] = row
	}

	return totals, nil
}

// Merge joins ad totals onto catalog metrics by SKU key. SKUs without ad
// rows keep zero ad fields.
func Merge(catalog []domain.SKUMetrics, ads map[string]domain.AdTotals) []domain.SKUMetrics {
	merged := make([]domain.SKUMetrics, len(catalog))
	for i, m := range catalog {
		if totals, ok := ads[m.SKU]; ok {
			m.AdSpend = totals.Spend
			m.AdSales = totals.Sales
			m.UnitsSold = totals.UnitsSold
		}
		merged[i] = m
	}
	return merged
}

// LoadMerged loads the catalog and, when adsPath is non-empty, merges the
// advertising export into it.
func LoadMerged(catalogPath, adsPath string) ([]domain.SKUMetrics, error) {
	catalog, err := LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}
	if adsPath == "" {
		return catalog, nil
	}
	ads, err := LoadAdPerformance(adsPath)
	if err != nil {
		return nil, err
	}
	return Merge(catalog, ads), nil
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// parseCell parses a numeric cell; blank cells default to 0.
func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", cell, err)
	}
	return v, nil
}
