package product

import (
	"strings"
	"testing"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
)

func validForm() *Form {
	return &Form{
		Name:      "Grand sac",
		Type:      "bag",
		ModelID:   id.New().String(),
		ColorisID: id.New().String(),
		UnitCost:  "10",
		SalePrice: "19.99",
		Stock:     "50",
	}
}

func TestFormValidate(t *testing.T) {
	if err := validForm().Validate(); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(f *Form)
	}{
		{"missing name", func(f *Form) { f.Name = " " }},
		{"unknown category", func(f *Form) { f.Type = "spaceship" }},
		{"missing model", func(f *Form) { f.ModelID = "" }},
		{"missing coloris", func(f *Form) { f.ColorisID = "" }},
		{"zero unit cost", func(f *Form) { f.UnitCost = "0" }},
		{"negative sale price", func(f *Form) { f.SalePrice = "-5" }},
		{"negative stock", func(f *Form) { f.Stock = "-1" }},
		{"unit cost not a number", func(f *Form) { f.UnitCost = "abc" }},
		{"infinite amount", func(f *Form) { f.SalePrice = "Infinity" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(f)
			if err := f.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFormWeight(t *testing.T) {
	// Blank weight is absent, not an error.
	f := validForm()
	f.Weight = ""
	if err := f.Validate(); err != nil {
		t.Fatalf("blank weight rejected: %v", err)
	}

	f.Weight = "150"
	if err := f.Validate(); err != nil {
		t.Fatalf("integer weight rejected: %v", err)
	}

	// Trailing garbage fails on the weight field specifically.
	f.Weight = "150abc"
	err := f.Validate()
	if err == nil {
		t.Fatal("expected error for weight with trailing characters")
	}
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Details["field"] != "weight" {
		t.Errorf("error field = %v, want weight", appErr.Details["field"])
	}
	if !strings.Contains(appErr.Message, "invalid") {
		t.Errorf("message %q should mention invalid", appErr.Message)
	}

	// Fractional weights fail too.
	f.Weight = "2.5"
	if err := f.Validate(); err == nil {
		t.Error("expected error for fractional weight")
	}

	f.Weight = "-10"
	if err := f.Validate(); err == nil {
		t.Error("expected error for negative weight")
	}
}

func TestFormToProduct(t *testing.T) {
	f := validForm()
	f.Weight = "150"

	p, err := f.ToProduct()
	if err != nil {
		t.Fatalf("ToProduct failed: %v", err)
	}

	if p.Representation() != ByReference {
		t.Errorf("representation = %v, want %v", p.Representation(), ByReference)
	}
	if p.UnitCost.String() != "10" {
		t.Errorf("unit cost = %s", p.UnitCost.String())
	}
	if p.SalePrice.String() != "19.99" {
		t.Errorf("sale price = %s", p.SalePrice.String())
	}
	if p.Stock.Float64() != 50 {
		t.Errorf("stock = %v", p.Stock.Float64())
	}
	if p.WeightGrams == nil || *p.WeightGrams != 150 {
		t.Errorf("weight = %v, want 150", p.WeightGrams)
	}
}
