package activity

import (
	"testing"

	"atelierdesk/internal/core/id"
)

func saleForm() *Form {
	return &Form{
		Date:        "2025-01-15T10:30:00Z",
		Type:        "SALE",
		ProductID:   id.New().String(),
		ProductType: "bag",
		ModelID:     id.New().String(),
		ColorisID:   id.New().String(),
		Quantity:    "5",
		Amount:      "99.95",
	}
}

func TestFormValidate_Sale(t *testing.T) {
	if err := saleForm().Validate(); err != nil {
		t.Fatalf("valid sale rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(f *Form)
	}{
		{"missing date", func(f *Form) { f.Date = "" }},
		{"malformed date", func(f *Form) { f.Date = "2025-02-30T00:00:00Z" }},
		{"unknown type", func(f *Form) { f.Type = "BARTER" }},
		{"missing product", func(f *Form) { f.ProductID = "" }},
		{"zero quantity", func(f *Form) { f.Quantity = "0" }},
		{"negative quantity", func(f *Form) { f.Quantity = "-5" }},
		{"zero amount", func(f *Form) { f.Amount = "0" }},
		{"infinite amount", func(f *Form) { f.Amount = "Infinity" }},
		{"nan quantity", func(f *Form) { f.Quantity = "NaN" }},
		{"non-numeric amount", func(f *Form) { f.Amount = "abc" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := saleForm()
			tt.mutate(f)
			if err := f.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFormValidate_Creation(t *testing.T) {
	f := saleForm()
	f.Type = "CREATION"
	f.Amount = "0"
	if err := f.Validate(); err != nil {
		t.Fatalf("valid creation rejected: %v", err)
	}

	// Amount zero is the convention, but it must still parse.
	f.Amount = "NaN"
	if err := f.Validate(); err == nil {
		t.Error("expected error for NaN amount")
	}

	// Partial selection fails the all-or-nothing rule.
	f = saleForm()
	f.Type = "CREATION"
	f.Amount = "0"
	f.ColorisID = ""
	if err := f.Validate(); err == nil {
		t.Error("expected error for partial product selection")
	}
}

func TestFormValidate_StockCorrection(t *testing.T) {
	base := func() *Form {
		f := saleForm()
		f.Type = "STOCK_CORRECTION"
		f.Quantity = ""
		f.Amount = ""
		return f
	}

	// Both deltas blank fails the at-least-one rule.
	f := base()
	f.AddToStock = ""
	f.ReduceFromStock = ""
	if err := f.Validate(); err == nil {
		t.Error("expected error when both deltas are blank")
	}

	f = base()
	f.AddToStock = "3"
	if err := f.Validate(); err != nil {
		t.Fatalf("add-only correction rejected: %v", err)
	}

	f = base()
	f.ReduceFromStock = "2"
	if err := f.Validate(); err != nil {
		t.Fatalf("reduce-only correction rejected: %v", err)
	}

	f = base()
	f.AddToStock = "3"
	f.ReduceFromStock = "2"
	if err := f.Validate(); err != nil {
		t.Fatalf("both-deltas correction rejected: %v", err)
	}

	// Each present value must independently be positive and well formed.
	f = base()
	f.AddToStock = "3"
	f.ReduceFromStock = "-2"
	if err := f.Validate(); err == nil {
		t.Error("expected error for negative reduceFromStock")
	}

	f = base()
	f.AddToStock = "abc"
	if err := f.Validate(); err == nil {
		t.Error("expected error for non-numeric addToStock")
	}
}

func TestFormValidate_Other(t *testing.T) {
	f := &Form{
		Date:   "2025-01-15T10:30:00Z",
		Type:   "OTHER",
		Amount: "25",
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("minimal OTHER rejected: %v", err)
	}

	// Quantity of either sign is fine.
	f.Quantity = "-3"
	if err := f.Validate(); err != nil {
		t.Fatalf("negative quantity rejected for OTHER: %v", err)
	}

	// All-or-nothing selection still applies when anything is given.
	f.ModelID = id.New().String()
	if err := f.Validate(); err == nil {
		t.Error("expected error for partial product selection")
	}
}

func TestToActivity_SaleSignFlip(t *testing.T) {
	a, err := saleForm().ToActivity()
	if err != nil {
		t.Fatalf("ToActivity failed: %v", err)
	}
	if !a.Quantity.IsNegative() {
		t.Errorf("sale quantity = %s, want negative", a.Quantity.String())
	}
	if a.Quantity.Float64() != -5 {
		t.Errorf("sale quantity = %v, want -5", a.Quantity.Float64())
	}
	if a.Amount.String() != "99.95" {
		t.Errorf("amount = %s, want 99.95", a.Amount.String())
	}
	if !IsNegativeForSale(a) {
		t.Error("IsNegativeForSale should hold after submission")
	}
}

func TestToActivity_CorrectionNetsDeltas(t *testing.T) {
	f := saleForm()
	f.Type = "STOCK_CORRECTION"
	f.Quantity = ""
	f.Amount = ""
	f.AddToStock = "5"
	f.ReduceFromStock = "2"

	a, err := f.ToActivity()
	if err != nil {
		t.Fatalf("ToActivity failed: %v", err)
	}
	if a.Quantity.Float64() != 3 {
		t.Errorf("net quantity = %v, want 3", a.Quantity.Float64())
	}

	// Deltas that cancel produce no stock change and are rejected.
	f.AddToStock = "2"
	f.ReduceFromStock = "2"
	if _, err := f.ToActivity(); err == nil {
		t.Error("expected error for zero net correction")
	}
}
