package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain/catalogs/product"
)

func TestExtractDBColumns_Product(t *testing.T) {
	cols := ExtractDBColumns[product.Product]()

	expectedCols := []string{
		"id", "deletion_mark", "version", "code", "name",
		"model_id", "coloris_id", "legacy_type", "legacy_coloris",
		"unit_cost", "sale_price", "stock", "weight_grams",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
}

func TestStructToMap_EmbeddedFields(t *testing.T) {
	p := product.NewLegacyProduct("PRD-1", "Vintage tote", "bag", "noir")
	p.UnitCost = types.MustMoney("12.50")
	p.Stock = types.NewQuantityFromInt(3)

	m := StructToMap(p)

	assert.Equal(t, "PRD-1", m["code"])
	assert.Equal(t, "Vintage tote", m["name"])
	// Embedded BaseEntity fields must be flattened in.
	assert.IsType(t, id.ID{}, m["id"])
	assert.Equal(t, 1, m["version"])
	assert.Equal(t, types.NewQuantityFromInt(3), m["stock"])
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
}

func TestStructToMap_CachedSecondCall(t *testing.T) {
	p1 := product.NewLegacyProduct("A", "first", "bag", "noir")
	p2 := product.NewLegacyProduct("B", "second", "belt", "cognac")

	first := StructToMap(p1)
	second := StructToMap(p2)

	assert.Equal(t, "A", first["code"])
	assert.Equal(t, "B", second["code"])
}
