package stock

import (
	"context"
	"testing"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/types"
)

func qty(v int64) types.Quantity { return types.NewQuantityFromInt(v) }

func TestIsValidQuantityForSource(t *testing.T) {
	tests := []struct {
		name   string
		q      types.Quantity
		source Source
		want   bool
	}{
		{"creation positive", qty(5), SourceCreation, true},
		{"creation zero", qty(0), SourceCreation, false},
		{"creation negative", qty(-5), SourceCreation, false},
		{"sale negative", qty(-5), SourceSale, true},
		{"sale zero", qty(0), SourceSale, false},
		{"sale positive", qty(5), SourceSale, false},
		{"adjustment positive", qty(3), SourceInventoryAdjustment, true},
		{"adjustment negative", qty(-3), SourceInventoryAdjustment, true},
		{"adjustment zero", qty(0), SourceInventoryAdjustment, false},
		{"unknown source fails closed", qty(5), Source("TELEPORT"), false},
		{"empty source fails closed", qty(5), Source(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidQuantityForSource(tt.q, tt.source); got != tt.want {
				t.Errorf("IsValidQuantityForSource(%v, %q) = %v, want %v", tt.q, tt.source, got, tt.want)
			}
		})
	}
}

func TestIsValidMovement(t *testing.T) {
	m := NewMovement(id.New(), qty(5), SourceCreation)
	if !IsValidMovement(m) {
		t.Error("valid movement rejected")
	}

	if IsValidMovement(nil) {
		t.Error("nil movement accepted")
	}

	noProduct := NewMovement(id.Nil(), qty(5), SourceCreation)
	if IsValidMovement(noProduct) {
		t.Error("movement without product accepted")
	}

	wrongSign := NewMovement(id.New(), qty(5), SourceSale)
	if IsValidMovement(wrongSign) {
		t.Error("positive sale movement accepted")
	}
}

func TestMovementValidate(t *testing.T) {
	ctx := context.Background()

	if err := NewMovement(id.New(), qty(-2), SourceSale).Validate(ctx); err != nil {
		t.Fatalf("valid sale movement rejected: %v", err)
	}

	err := NewMovement(id.New(), qty(5), Source("TELEPORT")).Validate(ctx)
	if err == nil {
		t.Fatal("expected error for unknown source")
	}
	if !apperror.IsCode(err, apperror.CodeUnknownSource) {
		t.Errorf("expected UNKNOWN_SOURCE code, got %v", err)
	}

	err = NewMovement(id.New(), qty(0), SourceInventoryAdjustment).Validate(ctx)
	if err == nil {
		t.Error("expected error for zero adjustment")
	}
}
