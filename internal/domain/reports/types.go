// Package reports provides revenue, margin, and statistics reporting.
//
// The calculators are pure functions over already-fetched collections;
// the Service fetches those collections through ports and delegates.
package reports

import (
	"time"

	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/types"
)

// Period selects the bucketing granularity for period reports.
type Period string

const (
	PeriodDaily   Period = "DAILY"
	PeriodMonthly Period = "MONTHLY"
	PeriodYearly  Period = "YEARLY"
)

// IsValidPeriod fails closed on values outside the enum.
func IsValidPeriod(p Period) bool {
	switch p {
	case PeriodDaily, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// BucketKey formats t into the period's bucket key.
func (p Period) BucketKey(t time.Time) string {
	switch p {
	case PeriodDaily:
		return t.Format("2006-01-02")
	case PeriodYearly:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

// IndirectCosts are the non-shipping fixed costs of a period.
type IndirectCosts struct {
	Marketing types.Money `json:"marketing"`
	Overhead  types.Money `json:"overhead"`
}

// RevenueData is the full revenue report for a date range.
//
// Rates are percentages and follow the zero policy: when revenue is
// zero the rate is zero, never NaN and never an error.
type RevenueData struct {
	Period    Period    `json:"period"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	TotalRevenue    types.Money `json:"totalRevenue"`
	MaterialCosts   types.Money `json:"materialCosts"`
	GrossMargin     types.Money `json:"grossMargin"`
	GrossMarginRate float64     `json:"grossMarginRate"`

	ShippingCost  types.Money   `json:"shippingCost"`
	IndirectCosts IndirectCosts `json:"indirectCosts"`

	NetResult     types.Money `json:"netResult"`
	NetMarginRate float64     `json:"netMarginRate"`
}

// TypeRevenue is revenue grouped by product category.
type TypeRevenue struct {
	Type    string      `json:"type"`
	Revenue types.Money `json:"revenue"`
	Count   int         `json:"count"`
}

// ProductRevenue is revenue grouped by individual product.
type ProductRevenue struct {
	ProductID id.ProductID `json:"productId"`
	ModelName string       `json:"modelName"`
	Coloris   string       `json:"coloris"`
	Revenue   types.Money  `json:"revenue"`
	Count     int          `json:"count"`
}

// PeriodStatistics is one bucket of the profits-by-period report.
type PeriodStatistics struct {
	Bucket         string      `json:"bucket"`
	Profit         types.Money `json:"profit"`
	TotalSales     types.Money `json:"totalSales"`
	TotalCreations int         `json:"totalCreations"`
}

// ProductMargin is the per-product margin rollup.
type ProductMargin struct {
	ProductID        id.ProductID `json:"productId"`
	Name             string       `json:"name"`
	Coloris          string       `json:"coloris"`
	SalesCount       int          `json:"salesCount"`
	TotalRevenue     types.Money  `json:"totalRevenue"`
	TotalCost        types.Money  `json:"totalCost"`
	Profit           types.Money  `json:"profit"`
	MarginPercentage float64      `json:"marginPercentage"`
}

// BusinessStatistics is the whole-business rollup.
type BusinessStatistics struct {
	SalesCount       int         `json:"salesCount"`
	TotalRevenue     types.Money `json:"totalRevenue"`
	TotalCost        types.Money `json:"totalCost"`
	Profit           types.Money `json:"profit"`
	MarginPercentage float64     `json:"marginPercentage"`
}
