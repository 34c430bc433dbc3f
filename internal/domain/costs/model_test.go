package costs

import (
	"context"
	"testing"

	"atelierdesk/internal/core/types"
)

func TestMonthlyCostValidate(t *testing.T) {
	ctx := context.Background()

	c := NewMonthlyCost("2025-03")
	c.ShippingCost = types.MustMoney("12.50")
	c.MarketingCost = types.MustMoney("40")
	if err := c.Validate(ctx); err != nil {
		t.Fatalf("valid cost row rejected: %v", err)
	}

	// Zero costs are fine.
	if err := NewMonthlyCost("2025-01").Validate(ctx); err != nil {
		t.Errorf("zero cost row rejected: %v", err)
	}

	bad := NewMonthlyCost("2025/03")
	if err := bad.Validate(ctx); err == nil {
		t.Error("expected error for malformed month key")
	}

	neg := NewMonthlyCost("2025-03")
	neg.OverheadCost = types.MustMoney("-1")
	if err := neg.Validate(ctx); err == nil {
		t.Error("expected error for negative overhead")
	}
}

func TestMonthlyCostTotal(t *testing.T) {
	c := NewMonthlyCost("2025-03")
	c.ShippingCost = types.MustMoney("10")
	c.MarketingCost = types.MustMoney("20.50")
	c.OverheadCost = types.MustMoney("5")

	if got := c.Total().String(); got != "35.5" {
		t.Errorf("total = %s, want 35.5", got)
	}
}
