package catalog_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelierdesk/internal/domain/catalogs/product"
	"atelierdesk/internal/domain/filter"
	"atelierdesk/internal/infrastructure/storage/postgres"
)

func newTestRepo() *BaseCatalogRepo[*product.Product] {
	return NewBaseCatalogRepo(
		nil,
		"cat_products",
		postgres.ExtractDBColumns[product.Product](),
		func() *product.Product { return &product.Product{} },
	)
}

func TestApplyAdvancedFilters_SQL(t *testing.T) {
	r := newTestRepo()

	tests := []struct {
		name     string
		item     filter.Item
		wantFrag string
	}{
		{"equal", filter.Item{Field: "name", Operator: filter.Equal, Value: "tote"}, "name = $1"},
		{"not equal", filter.Item{Field: "name", Operator: filter.NotEqual, Value: "tote"}, "name <> $1"},
		{"less", filter.Item{Field: "stock", Operator: filter.Less, Value: 10}, "stock < $1"},
		{"greater", filter.Item{Field: "stock", Operator: filter.Greater, Value: 10}, "stock > $1"},
		{"less or equal", filter.Item{Field: "stock", Operator: filter.LessOrEqual, Value: 10}, "stock <= $1"},
		{"greater or equal", filter.Item{Field: "stock", Operator: filter.GreaterOrEqual, Value: 10}, "stock >= $1"},
		{"contains", filter.Item{Field: "name", Operator: filter.Contains, Value: "tote"}, "name ILIKE $1"},
		{"not contains", filter.Item{Field: "name", Operator: filter.NotContains, Value: "tote"}, "name NOT ILIKE $1"},
		{"is null", filter.Item{Field: "model_id", Operator: filter.IsNull}, "model_id IS NULL"},
		{"is not null", filter.Item{Field: "model_id", Operator: filter.IsNotNull}, "model_id IS NOT NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := r.applyAdvancedFilters(r.baseSelect(), []filter.Item{tt.item})
			require.NoError(t, err)

			sql, _, err := q.ToSql()
			require.NoError(t, err)
			assert.Contains(t, sql, tt.wantFrag)
		})
	}
}

func TestApplyAdvancedFilters_RejectsUnknownColumn(t *testing.T) {
	r := newTestRepo()

	_, err := r.applyAdvancedFilters(r.baseSelect(), []filter.Item{
		{Field: "name; DROP TABLE cat_products", Operator: filter.Equal, Value: "x"},
	})
	assert.Error(t, err, "unknown column must not pass the whitelist")
}

func TestApplyAdvancedFilters_RejectsUnknownOperator(t *testing.T) {
	r := newTestRepo()

	_, err := r.applyAdvancedFilters(r.baseSelect(), []filter.Item{
		{Field: "name", Operator: filter.ComparisonType("regex"), Value: ".*"},
	})
	assert.Error(t, err, "unknown operator must be rejected")
}

func TestParseOrderBy(t *testing.T) {
	r := newTestRepo()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "name ASC", false},
		{"name", "name ASC", false},
		{"-name", "name DESC", false},
		{"+stock", "stock ASC", false},
		{"-unit_cost", "unit_cost DESC", false},
		{"evil; --", "", true},
		{"-", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := r.parseOrderBy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
