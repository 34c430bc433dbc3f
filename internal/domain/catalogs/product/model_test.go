package product

import (
	"context"
	"testing"

	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/types"
)

func validProduct() *Product {
	p := NewProduct("PRD-001", "Grand sac", id.New(), id.New())
	p.UnitCost = types.MustMoney("10")
	p.SalePrice = types.MustMoney("19.99")
	p.Stock = types.NewQuantityFromInt(50)
	return p
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Product)
		want   bool
	}{
		{"valid", func(p *Product) {}, true},
		{"zero unit cost", func(p *Product) { p.UnitCost = types.Zero() }, false},
		{"negative unit cost", func(p *Product) { p.UnitCost = types.MustMoney("-1") }, false},
		{"zero sale price", func(p *Product) { p.SalePrice = types.Zero() }, false},
		{"zero stock is fine", func(p *Product) { p.Stock = 0 }, true},
		{"negative stock", func(p *Product) { p.Stock = types.NewQuantityFromInt(-1) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(p)
			if got := IsValid(p); got != tt.want {
				t.Errorf("IsValid = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProductRepresentation(t *testing.T) {
	ref := validProduct()
	if got := ref.Representation(); got != ByReference {
		t.Errorf("reference product: got %v", got)
	}

	legacy := NewLegacyProduct("PRD-002", "Vieux sac", "bag", "cognac")
	legacy.UnitCost = types.MustMoney("5")
	legacy.SalePrice = types.MustMoney("12")
	if got := legacy.Representation(); got != Legacy {
		t.Errorf("legacy product: got %v", got)
	}

	// Neither shape populated.
	bare := &Product{}
	if got := bare.Representation(); got != Unrepresented {
		t.Errorf("bare product: got %v", got)
	}

	// Both shapes populated.
	both := validProduct()
	lt, lc := "bag", "noir"
	both.LegacyType, both.LegacyColoris = &lt, &lc
	if got := both.Representation(); got != Unrepresented {
		t.Errorf("dual-shape product: got %v", got)
	}
}

func TestProductValidate(t *testing.T) {
	ctx := context.Background()

	if err := validProduct().Validate(ctx); err != nil {
		t.Fatalf("valid product rejected: %v", err)
	}

	noShape := &Product{}
	noShape.Name = "sac"
	noShape.UnitCost = types.MustMoney("1")
	noShape.SalePrice = types.MustMoney("2")
	if err := noShape.Validate(ctx); err == nil {
		t.Error("expected error for missing representation")
	}

	badWeight := validProduct()
	zero := int64(0)
	badWeight.WeightGrams = &zero
	if err := badWeight.Validate(ctx); err == nil {
		t.Error("expected error for non-positive weight")
	}

	goodWeight := validProduct()
	grams := int64(150)
	goodWeight.WeightGrams = &grams
	if err := goodWeight.Validate(ctx); err != nil {
		t.Errorf("positive weight rejected: %v", err)
	}
}

func TestModelValidate(t *testing.T) {
	ctx := context.Background()

	m := NewModel("MDL-001", "Marcie", CategoryBag)
	if err := m.Validate(ctx); err != nil {
		t.Fatalf("valid model rejected: %v", err)
	}

	m.Type = Category("spaceship")
	if err := m.Validate(ctx); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestColorisValidate(t *testing.T) {
	ctx := context.Background()

	c := NewColoris("CLR-001", "cognac", id.New())
	if err := c.Validate(ctx); err != nil {
		t.Fatalf("valid coloris rejected: %v", err)
	}

	c.ModelID = id.Nil()
	if err := c.Validate(ctx); err == nil {
		t.Error("expected error for missing model reference")
	}
}
