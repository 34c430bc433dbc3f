// Package filter defines advanced list filtering primitives.
package filter

// ComparisonType defines the kind of comparison applied to a field.
type ComparisonType string

const (
	Equal          ComparisonType = "eq"
	NotEqual       ComparisonType = "neq"
	Less           ComparisonType = "lt"
	Greater        ComparisonType = "gt"
	LessOrEqual    ComparisonType = "lte"
	GreaterOrEqual ComparisonType = "gte"
	InList         ComparisonType = "in"
	NotInList      ComparisonType = "nin"
	Contains       ComparisonType = "contains"  // ILIKE %val%
	NotContains    ComparisonType = "ncontains" // NOT ILIKE %val%

	IsNull    ComparisonType = "null"
	IsNotNull ComparisonType = "not_null"
)

// Item represents a single filter condition.
type Item struct {
	Field    string         `json:"field"`    // column name (snake_case)
	Operator ComparisonType `json:"operator"` // comparison kind
	Value    any            `json:"value"`    // string, number, or list of IDs
}
