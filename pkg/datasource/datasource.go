// Package datasource adapts the shapes a form can be bound to (plain maps,
// records exposing fields directly, and records that convert themselves into
// a map) behind a single keyed-lookup interface. Resolution code depends only
// on DataSource and never inspects the concrete representation.
package datasource

import (
	"reflect"

	"github.com/goliatone/go-formfields/pkg/rules"
)

// DataSource provides keyed field lookup. Field reports whether the field is
// present; a present field may still hold a nil value.
type DataSource interface {
	Field(name string) (any, bool)
}

// Arrayable is implemented by records that can convert themselves into a
// plain mapping.
type Arrayable interface {
	ToMap() map[string]any
}

// Labeler is implemented by models exposing a label-lookup method.
type Labeler interface {
	FieldLabel(name string) (string, bool)
}

// RuleSource is implemented by models carrying their own validation metadata.
type RuleSource interface {
	ValidationRules() rules.Provider
}

// From wraps value in the adapter matching its shape:
//
//   - nil yields Empty
//   - a DataSource is returned unchanged
//   - maps keyed by strings (including named types such as url.Values)
//     become Map
//   - structs (or pointers to structs) and Arrayable values become Record
//
// Anything else yields Empty so resolution degrades to defaults instead of
// failing.
func From(value any) DataSource {
	switch v := value.(type) {
	case nil:
		return Empty{}
	case DataSource:
		return v
	case map[string]any:
		return Map(v)
	case map[string]string:
		out := make(Map, len(v))
		for key, val := range v {
			out[key] = val
		}
		return out
	case map[string][]string:
		out := make(Map, len(v))
		for key, val := range v {
			out[key] = val
		}
		return out
	}

	if _, ok := value.(Arrayable); ok {
		return NewRecord(value)
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Empty{}
		}
		rv = rv.Elem()
	}
	switch {
	case rv.Kind() == reflect.Struct:
		return NewRecord(value)
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String:
		out := make(Map, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out
	}
	return Empty{}
}

// Empty is a data source with no fields.
type Empty struct{}

// Field always reports the field as absent.
func (Empty) Field(string) (any, bool) {
	return nil, false
}

// Map adapts a plain mapping from field name to value.
type Map map[string]any

// Field looks up name in the mapping.
func (m Map) Field(name string) (any, bool) {
	if m == nil {
		return nil, false
	}
	value, ok := m[name]
	return value, ok
}
