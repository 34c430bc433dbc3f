package reports

import (
	"sort"
	"time"

	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain/catalogs/product"
	"atelierdesk/internal/domain/costs"
	"atelierdesk/internal/domain/documents/activity"
)

// Catalog bundles the fetched reference data the calculators join
// against. Lookups that fail resolve to nothing and the contribution is
// skipped; a best-effort report beats a hard failure here.
type Catalog struct {
	Products  []*product.Product
	Models    []*product.Model
	Colorways []*product.Coloris
}

// resolved is the flattened view of one product after joining its
// representation against the catalog.
type resolved struct {
	product  *product.Product
	typeName string
	name     string
	coloris  string
}

type catalogIndex struct {
	byID map[id.ProductID]resolved
}

func (c Catalog) index() catalogIndex {
	models := make(map[id.ModelID]*product.Model, len(c.Models))
	for _, m := range c.Models {
		models[m.ID] = m
	}
	colorways := make(map[id.ColorisID]*product.Coloris, len(c.Colorways))
	for _, cw := range c.Colorways {
		colorways[cw.ID] = cw
	}

	byID := make(map[id.ProductID]resolved, len(c.Products))
	for _, p := range c.Products {
		r := resolved{product: p, name: p.Name}
		switch p.Representation() {
		case product.ByReference:
			if m, ok := models[*p.ModelID]; ok {
				r.typeName = string(m.Type)
				r.name = m.Name
			}
			if cw, ok := colorways[*p.ColorisID]; ok {
				r.coloris = cw.Name
			}
		case product.Legacy:
			r.typeName = *p.LegacyType
			r.coloris = *p.LegacyColoris
		}
		byID[p.ID] = r
	}
	return catalogIndex{byID: byID}
}

func productsByID(products []*product.Product) map[id.ProductID]*product.Product {
	m := make(map[id.ProductID]*product.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}

// inRange checks [start, end] inclusive.
func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// inOptionalRange treats absent bounds as unbounded.
func inOptionalRange(d time.Time, start, end *time.Time) bool {
	if start != nil && d.Before(*start) {
		return false
	}
	if end != nil && d.After(*end) {
		return false
	}
	return true
}

// rate returns part/whole as a percentage, zero when the whole is zero.
func rate(part, whole types.Money) float64 {
	if whole.IsZero() {
		return 0
	}
	r, _ := part.Div(whole).Mul(types.MustMoney("100")).Float64()
	return r
}

// ComputeRevenue builds the full revenue report for [start, end].
//
// Sales missing a resolvable product contribute to revenue but are
// skipped for material costs. Fixed costs are summed over every
// calendar month whose key falls inside the range.
func ComputeRevenue(
	activities []*activity.Activity,
	products []*product.Product,
	monthlyCosts []*costs.MonthlyCost,
	period Period,
	start, end time.Time,
) RevenueData {
	byID := productsByID(products)

	totalRevenue := types.Zero()
	materialCosts := types.Zero()

	for _, a := range activities {
		if a.Type != activity.TypeSale || !inRange(a.Date, start, end) {
			continue
		}

		totalRevenue = totalRevenue.Add(a.Amount)

		if a.ProductID == nil {
			continue
		}
		p, ok := byID[*a.ProductID]
		if !ok {
			continue
		}
		materialCosts = materialCosts.Add(p.UnitCost.Mul(a.Quantity.Abs().Decimal()))
	}

	grossMargin := totalRevenue.Sub(materialCosts)

	shipping := types.Zero()
	marketing := types.Zero()
	overhead := types.Zero()
	wanted := make(map[types.MonthKey]bool)
	for _, k := range types.MonthKeysInRange(start, end) {
		wanted[k] = true
	}
	for _, c := range monthlyCosts {
		if !wanted[c.Month] {
			continue
		}
		shipping = shipping.Add(c.ShippingCost)
		marketing = marketing.Add(c.MarketingCost)
		overhead = overhead.Add(c.OverheadCost)
	}

	netResult := grossMargin.Sub(shipping).Sub(marketing.Add(overhead))

	return RevenueData{
		Period:          period,
		StartDate:       start,
		EndDate:         end,
		TotalRevenue:    totalRevenue,
		MaterialCosts:   materialCosts,
		GrossMargin:     grossMargin,
		GrossMarginRate: rate(grossMargin, totalRevenue),
		ShippingCost:    shipping,
		IndirectCosts:   IndirectCosts{Marketing: marketing, Overhead: overhead},
		NetResult:       netResult,
		NetMarginRate:   rate(netResult, totalRevenue),
	}
}

// ComputeRevenueByProductType groups sale revenue by product category.
// Groups appear in first-seen order. Sales whose product or category
// cannot be resolved are skipped.
func ComputeRevenueByProductType(activities []*activity.Activity, catalog Catalog, start, end time.Time) []TypeRevenue {
	idx := catalog.index()

	var order []string
	groups := make(map[string]*TypeRevenue)

	for _, a := range activities {
		if a.Type != activity.TypeSale || !inRange(a.Date, start, end) || a.ProductID == nil {
			continue
		}
		r, ok := idx.byID[*a.ProductID]
		if !ok || r.typeName == "" {
			continue
		}

		g, exists := groups[r.typeName]
		if !exists {
			g = &TypeRevenue{Type: r.typeName, Revenue: types.Zero()}
			groups[r.typeName] = g
			order = append(order, r.typeName)
		}
		g.Revenue = g.Revenue.Add(a.Amount)
		g.Count++
	}

	result := make([]TypeRevenue, 0, len(order))
	for _, t := range order {
		result = append(result, *groups[t])
	}
	return result
}

// ComputeRevenueByProduct groups sale revenue by individual product,
// keyed by product ID with its resolved model name and coloris.
func ComputeRevenueByProduct(activities []*activity.Activity, catalog Catalog, start, end time.Time) []ProductRevenue {
	idx := catalog.index()

	var order []id.ProductID
	groups := make(map[id.ProductID]*ProductRevenue)

	for _, a := range activities {
		if a.Type != activity.TypeSale || !inRange(a.Date, start, end) || a.ProductID == nil {
			continue
		}
		r, ok := idx.byID[*a.ProductID]
		if !ok {
			continue
		}

		g, exists := groups[*a.ProductID]
		if !exists {
			g = &ProductRevenue{
				ProductID: *a.ProductID,
				ModelName: r.name,
				Coloris:   r.coloris,
				Revenue:   types.Zero(),
			}
			groups[*a.ProductID] = g
			order = append(order, *a.ProductID)
		}
		g.Revenue = g.Revenue.Add(a.Amount)
		g.Count++
	}

	result := make([]ProductRevenue, 0, len(order))
	for _, pid := range order {
		result = append(result, *groups[pid])
	}
	return result
}

// ComputeProfitsByPeriod buckets sales and creations by the period key
// of their date. Buckets come back in chronological order.
func ComputeProfitsByPeriod(
	activities []*activity.Activity,
	products []*product.Product,
	period Period,
	start, end *time.Time,
) []PeriodStatistics {
	byID := productsByID(products)

	buckets := make(map[string]*PeriodStatistics)

	for _, a := range activities {
		if !inOptionalRange(a.Date, start, end) {
			continue
		}
		if a.Type != activity.TypeSale && a.Type != activity.TypeCreation {
			continue
		}

		key := period.BucketKey(a.Date)
		b, exists := buckets[key]
		if !exists {
			b = &PeriodStatistics{
				Bucket:     key,
				Profit:     types.Zero(),
				TotalSales: types.Zero(),
			}
			buckets[key] = b
		}

		switch a.Type {
		case activity.TypeCreation:
			b.TotalCreations++
		case activity.TypeSale:
			b.TotalSales = b.TotalSales.Add(a.Amount)
			if a.ProductID != nil {
				if p, ok := byID[*a.ProductID]; ok {
					b.Profit = b.Profit.Add(p.Margin().Mul(a.Quantity.Abs().Decimal()))
				}
			}
		}
	}

	result := make([]PeriodStatistics, 0, len(buckets))
	for _, b := range buckets {
		result = append(result, *b)
	}
	// Bucket keys sort lexically in chronological order for all three
	// period layouts.
	sort.Slice(result, func(i, j int) bool { return result[i].Bucket < result[j].Bucket })
	return result
}

// ComputeProductMargins builds the per-product margin rollup over all
// sale activities, sorted by profit descending.
func ComputeProductMargins(activities []*activity.Activity, catalog Catalog) []ProductMargin {
	idx := catalog.index()

	margins := make(map[id.ProductID]*ProductMargin)
	var order []id.ProductID

	for _, a := range activities {
		if a.Type != activity.TypeSale || a.ProductID == nil {
			continue
		}
		r, ok := idx.byID[*a.ProductID]
		if !ok {
			continue
		}

		m, exists := margins[*a.ProductID]
		if !exists {
			m = &ProductMargin{
				ProductID:    *a.ProductID,
				Name:         r.name,
				Coloris:      r.coloris,
				TotalRevenue: types.Zero(),
				TotalCost:    types.Zero(),
				Profit:       types.Zero(),
			}
			margins[*a.ProductID] = m
			order = append(order, *a.ProductID)
		}

		qty := a.Quantity.Abs().Decimal()
		m.SalesCount++
		m.TotalRevenue = m.TotalRevenue.Add(a.Amount)
		m.TotalCost = m.TotalCost.Add(r.product.UnitCost.Mul(qty))
	}

	result := make([]ProductMargin, 0, len(order))
	for _, pid := range order {
		m := margins[pid]
		m.Profit = m.TotalRevenue.Sub(m.TotalCost)
		m.MarginPercentage = rate(m.Profit, m.TotalRevenue)
		result = append(result, *m)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Profit.GreaterThan(result[j].Profit)
	})
	return result
}

// ComputeBusinessStatistics rolls the whole business into one row.
func ComputeBusinessStatistics(activities []*activity.Activity, products []*product.Product) BusinessStatistics {
	byID := productsByID(products)

	stats := BusinessStatistics{
		TotalRevenue: types.Zero(),
		TotalCost:    types.Zero(),
		Profit:       types.Zero(),
	}

	for _, a := range activities {
		if a.Type != activity.TypeSale {
			continue
		}
		stats.SalesCount++
		stats.TotalRevenue = stats.TotalRevenue.Add(a.Amount)

		if a.ProductID == nil {
			continue
		}
		if p, ok := byID[*a.ProductID]; ok {
			stats.TotalCost = stats.TotalCost.Add(p.UnitCost.Mul(a.Quantity.Abs().Decimal()))
		}
	}

	stats.Profit = stats.TotalRevenue.Sub(stats.TotalCost)
	stats.MarginPercentage = rate(stats.Profit, stats.TotalRevenue)
	return stats
}

// ComputeTotalCreations counts CREATION records in the optional range.
func ComputeTotalCreations(activities []*activity.Activity, start, end *time.Time) int {
	count := 0
	for _, a := range activities {
		if a.Type == activity.TypeCreation && inOptionalRange(a.Date, start, end) {
			count++
		}
	}
	return count
}
