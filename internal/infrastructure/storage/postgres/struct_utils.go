package postgres

import (
	"reflect"
	"sync"
)

// ExtractDBColumns extracts all column names from struct "db" tags.
// It handles embedded structs (like entity.Catalog) recursively.
// Called once at repository construction, so reflection overhead is fine.
func ExtractDBColumns[T any]() []string {
	var zero T
	return extractColumnsFromType(reflect.TypeOf(zero))
}

func extractColumnsFromType(t reflect.Type) []string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var cols []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Anonymous {
			cols = append(cols, extractColumnsFromType(field.Type)...)
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		cols = append(cols, tag)
	}
	return cols
}

// fieldInfo is pre-computed metadata about a struct field.
type fieldInfo struct {
	index int
	dbTag string
}

type typeMetadata struct {
	fields          []fieldInfo
	embeddedIndices []int
}

// typeCache holds reflection metadata per type (thread-safe).
var typeCache sync.Map // map[reflect.Type]*typeMetadata

func getTypeMetadata(t reflect.Type) *typeMetadata {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if cached, ok := typeCache.Load(t); ok {
		return cached.(*typeMetadata)
	}

	meta := &typeMetadata{}
	if t.Kind() != reflect.Struct {
		typeCache.Store(t, meta)
		return meta
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Anonymous {
			meta.embeddedIndices = append(meta.embeddedIndices, i)
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		meta.fields = append(meta.fields, fieldInfo{index: i, dbTag: tag})
	}

	typeCache.Store(t, meta)
	return meta
}

// StructToMap converts a struct to a map using "db" tags.
// Only fields with a "db" tag are included; "-" is skipped.
//
// Uses cached type metadata so repeated calls for the same type avoid
// re-walking the struct definition.
func StructToMap(v any) map[string]any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	meta := getTypeMetadata(rv.Type())

	res := make(map[string]any, len(meta.fields))
	for _, fi := range meta.fields {
		res[fi.dbTag] = rv.Field(fi.index).Interface()
	}
	for _, embIdx := range meta.embeddedIndices {
		for k, val := range StructToMap(rv.Field(embIdx).Interface()) {
			res[k] = val
		}
	}
	return res
}
