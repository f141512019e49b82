package domain

import "time"

// AdTotals aggregates advertising performance for one SKU over the
// measurement window.
type AdTotals struct {
	Spend     float64
	Sales     float64 // ad-attributed revenue
	UnitsSold float64
}

// AdPerformanceDay is one day of advertising performance for a SKU, the
// granularity the advertising exports arrive at.
type AdPerformanceDay struct {
	SKU       string
	Day       time.Time
	Spend     float64
	Sales     float64
	UnitsSold float64
}
