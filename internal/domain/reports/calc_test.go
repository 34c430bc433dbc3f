package reports

import (
	"reflect"
	"testing"
	"time"

	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain/catalogs/product"
	"atelierdesk/internal/domain/costs"
	"atelierdesk/internal/domain/documents/activity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sale(productID id.ProductID, qty int64, amount string, when time.Time) *activity.Activity {
	a := activity.NewActivity(when, activity.TypeSale)
	a.ProductID = &productID
	a.Quantity = types.NewQuantityFromInt(qty)
	a.Amount = types.MustMoney(amount)
	return a
}

func creation(productID id.ProductID, qty int64, when time.Time) *activity.Activity {
	a := activity.NewActivity(when, activity.TypeCreation)
	a.ProductID = &productID
	a.Quantity = types.NewQuantityFromInt(qty)
	a.Amount = types.Zero()
	return a
}

func legacyProduct(pid id.ProductID, unitCost, salePrice, legacyType, coloris string) *product.Product {
	p := product.NewLegacyProduct("", "test product", legacyType, coloris)
	p.ID = pid
	p.UnitCost = types.MustMoney(unitCost)
	p.SalePrice = types.MustMoney(salePrice)
	return p
}

func TestComputeRevenue_ScenarioA(t *testing.T) {
	p1 := id.New()
	activities := []*activity.Activity{
		sale(p1, -5, "99.95", date(2025, 1, 15)),
	}
	products := []*product.Product{
		legacyProduct(p1, "10", "19.99", "bag", "noir"),
	}

	data := ComputeRevenue(activities, products, nil, PeriodMonthly,
		date(2025, 1, 1), date(2025, 1, 31))

	if data.TotalRevenue.String() != "99.95" {
		t.Errorf("totalRevenue = %s, want 99.95", data.TotalRevenue.String())
	}
	if data.MaterialCosts.String() != "50" {
		t.Errorf("materialCosts = %s, want 50", data.MaterialCosts.String())
	}
	if data.GrossMargin.String() != "49.95" {
		t.Errorf("grossMargin = %s, want 49.95", data.GrossMargin.String())
	}
}

func TestComputeRevenue_DivideByZeroPolicy(t *testing.T) {
	data := ComputeRevenue(nil, nil, nil, PeriodMonthly,
		date(2025, 1, 1), date(2025, 1, 31))

	if data.GrossMarginRate != 0 {
		t.Errorf("grossMarginRate = %v, want 0", data.GrossMarginRate)
	}
	if data.NetMarginRate != 0 {
		t.Errorf("netMarginRate = %v, want 0", data.NetMarginRate)
	}
}

func TestComputeRevenue_SkipsUnresolvableProduct(t *testing.T) {
	known := id.New()
	ghost := id.New()
	activities := []*activity.Activity{
		sale(known, -2, "40", date(2025, 1, 10)),
		sale(ghost, -3, "60", date(2025, 1, 11)),
	}
	products := []*product.Product{
		legacyProduct(known, "5", "20", "bag", "noir"),
	}

	data := ComputeRevenue(activities, products, nil, PeriodMonthly,
		date(2025, 1, 1), date(2025, 1, 31))

	// Revenue counts both sales; material costs only the resolvable one.
	if data.TotalRevenue.String() != "100" {
		t.Errorf("totalRevenue = %s, want 100", data.TotalRevenue.String())
	}
	if data.MaterialCosts.String() != "10" {
		t.Errorf("materialCosts = %s, want 10", data.MaterialCosts.String())
	}
}

func TestComputeRevenue_MonthlyCostsOverRange(t *testing.T) {
	mc := func(month types.MonthKey, shipping, marketing, overhead string) *costs.MonthlyCost {
		c := costs.NewMonthlyCost(month)
		c.ShippingCost = types.MustMoney(shipping)
		c.MarketingCost = types.MustMoney(marketing)
		c.OverheadCost = types.MustMoney(overhead)
		return c
	}
	monthly := []*costs.MonthlyCost{
		mc("2025-01", "10", "20", "5"),
		mc("2025-02", "10", "20", "5"),
		mc("2025-06", "99", "99", "99"), // outside range, ignored
	}

	// Range starts on the 31st: February must still be included.
	data := ComputeRevenue(nil, nil, monthly, PeriodMonthly,
		date(2025, 1, 31), date(2025, 2, 15))

	if data.ShippingCost.String() != "20" {
		t.Errorf("shipping = %s, want 20", data.ShippingCost.String())
	}
	if data.IndirectCosts.Marketing.String() != "40" {
		t.Errorf("marketing = %s, want 40", data.IndirectCosts.Marketing.String())
	}
	if data.NetResult.String() != "-70" {
		t.Errorf("netResult = %s, want -70", data.NetResult.String())
	}
}

func TestComputeRevenue_Idempotent(t *testing.T) {
	p1 := id.New()
	activities := []*activity.Activity{
		sale(p1, -5, "99.95", date(2025, 1, 15)),
	}
	products := []*product.Product{
		legacyProduct(p1, "10", "19.99", "bag", "noir"),
	}

	first := ComputeRevenue(activities, products, nil, PeriodMonthly,
		date(2025, 1, 1), date(2025, 1, 31))
	second := ComputeRevenue(activities, products, nil, PeriodMonthly,
		date(2025, 1, 1), date(2025, 1, 31))

	if !reflect.DeepEqual(first, second) {
		t.Error("ComputeRevenue is not deterministic over identical inputs")
	}
}

func TestComputeRevenueByProductType_FirstSeenOrder(t *testing.T) {
	bagID, beltID := id.New(), id.New()
	activities := []*activity.Activity{
		sale(bagID, -1, "100", date(2025, 1, 5)),
		sale(beltID, -1, "30", date(2025, 1, 6)),
		sale(bagID, -2, "200", date(2025, 1, 7)),
	}
	catalog := Catalog{
		Products: []*product.Product{
			legacyProduct(bagID, "10", "100", "bag", "noir"),
			legacyProduct(beltID, "5", "30", "belt", "cognac"),
		},
	}

	groups := ComputeRevenueByProductType(activities, catalog,
		date(2025, 1, 1), date(2025, 1, 31))

	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].Type != "bag" || groups[1].Type != "belt" {
		t.Errorf("group order = [%s, %s], want [bag, belt]", groups[0].Type, groups[1].Type)
	}
	if groups[0].Revenue.String() != "300" || groups[0].Count != 2 {
		t.Errorf("bag group = %s/%d, want 300/2", groups[0].Revenue.String(), groups[0].Count)
	}
}

func TestComputeRevenueByProduct_ResolvesReferenceShape(t *testing.T) {
	model := product.NewModel("MDL-1", "Marcie", product.CategoryBag)
	coloris := product.NewColoris("CLR-1", "cognac", model.ID)

	p := product.NewProduct("PRD-1", "Marcie cognac", model.ID, coloris.ID)
	p.UnitCost = types.MustMoney("10")
	p.SalePrice = types.MustMoney("25")

	activities := []*activity.Activity{
		sale(p.ID, -1, "25", date(2025, 1, 5)),
	}
	catalog := Catalog{
		Products:  []*product.Product{p},
		Models:    []*product.Model{model},
		Colorways: []*product.Coloris{coloris},
	}

	groups := ComputeRevenueByProduct(activities, catalog,
		date(2025, 1, 1), date(2025, 1, 31))

	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if groups[0].ModelName != "Marcie" || groups[0].Coloris != "cognac" {
		t.Errorf("resolved = %s/%s, want Marcie/cognac", groups[0].ModelName, groups[0].Coloris)
	}
}

func TestComputeProfitsByPeriod(t *testing.T) {
	p1 := id.New()
	products := []*product.Product{
		legacyProduct(p1, "10", "19.99", "bag", "noir"),
	}
	activities := []*activity.Activity{
		sale(p1, -5, "99.95", date(2025, 1, 15)),
		creation(p1, 3, date(2025, 1, 20)),
		sale(p1, -1, "19.99", date(2025, 2, 2)),
	}

	buckets := ComputeProfitsByPeriod(activities, products, PeriodMonthly, nil, nil)

	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}
	jan := buckets[0]
	if jan.Bucket != "2025-01" {
		t.Fatalf("first bucket = %s, want 2025-01", jan.Bucket)
	}
	// profit = (19.99 - 10) * 5 = 49.95
	if jan.Profit.String() != "49.95" {
		t.Errorf("jan profit = %s, want 49.95", jan.Profit.String())
	}
	if jan.TotalSales.String() != "99.95" {
		t.Errorf("jan sales = %s, want 99.95", jan.TotalSales.String())
	}
	if jan.TotalCreations != 1 {
		t.Errorf("jan creations = %d, want 1", jan.TotalCreations)
	}
}

func TestComputeProductMargins_SortedByProfitDesc(t *testing.T) {
	winner, loser := id.New(), id.New()
	catalog := Catalog{
		Products: []*product.Product{
			legacyProduct(winner, "5", "50", "bag", "noir"),
			legacyProduct(loser, "20", "22", "belt", "cognac"),
		},
	}
	activities := []*activity.Activity{
		sale(loser, -1, "22", date(2025, 1, 5)),
		sale(winner, -1, "50", date(2025, 1, 6)),
	}

	margins := ComputeProductMargins(activities, catalog)

	if len(margins) != 2 {
		t.Fatalf("margins = %d, want 2", len(margins))
	}
	if margins[0].ProductID != winner {
		t.Error("margins are not sorted by profit descending")
	}
	if margins[0].Profit.String() != "45" {
		t.Errorf("winner profit = %s, want 45", margins[0].Profit.String())
	}
}

func TestComputeBusinessStatistics_ZeroRevenue(t *testing.T) {
	stats := ComputeBusinessStatistics(nil, nil)
	if stats.MarginPercentage != 0 {
		t.Errorf("marginPercentage = %v, want 0", stats.MarginPercentage)
	}
	if stats.SalesCount != 0 {
		t.Errorf("salesCount = %v, want 0", stats.SalesCount)
	}
}

func TestComputeTotalCreations(t *testing.T) {
	p1 := id.New()
	activities := []*activity.Activity{
		creation(p1, 1, date(2025, 1, 10)),
		creation(p1, 1, date(2025, 2, 10)),
		sale(p1, -1, "10", date(2025, 1, 15)),
	}

	if got := ComputeTotalCreations(activities, nil, nil); got != 2 {
		t.Errorf("unbounded creations = %d, want 2", got)
	}

	from, to := date(2025, 2, 1), date(2025, 2, 28)
	if got := ComputeTotalCreations(activities, &from, &to); got != 1 {
		t.Errorf("bounded creations = %d, want 1", got)
	}
}
