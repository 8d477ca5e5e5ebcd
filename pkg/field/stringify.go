package field

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Stringify renders a data-source value as control text. Nil becomes "",
// booleans become "1"/"", times use RFC 3339, and collections are not joined
// (use Values for multi-value fields).
func Stringify(value any) string {
	if IsNil(value) {
		return ""
	}
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		if v {
			return "1"
		}
		return ""
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	case encoding.TextMarshaler:
		text, err := v.MarshalText()
		if err != nil {
			return ""
		}
		return string(text)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		return Stringify(rv.Elem().Interface())
	}
	return fmt.Sprint(value)
}

// IsNil reports whether value is nil or a nil pointer or interface.
func IsNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// IsCollection reports whether value holds multiple values (slice or array,
// excluding byte slices).
func IsCollection(value any) bool {
	if value == nil {
		return false
	}
	if _, ok := value.([]byte); ok {
		return false
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
}

// Members returns the stringified members of a collection, or a one-element
// slice for scalars. Nil yields nil.
func Members(value any) []string {
	if IsNil(value) {
		return nil
	}
	if !IsCollection(value) {
		return []string{Stringify(value)}
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	out := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, Stringify(rv.Index(i).Interface()))
	}
	return out
}
