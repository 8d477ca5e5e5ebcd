// Package attrs holds the insertion-ordered attribute dictionary shared by
// controls and groups, plus the merge and directive helpers built on it.
package attrs

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Dict is an insertion-ordered attribute dictionary. It carries both literal
// HTML attributes (class, id, accept, ...) and resolver directives (name,
// value, label, ...) that are consumed before serialization.
//
// A nil *Dict behaves as an empty, read-only dictionary.
type Dict struct {
	keys   []string
	values map[string]any
}

// New returns an empty dictionary.
func New() *Dict {
	return &Dict{values: make(map[string]any)}
}

// Of builds a dictionary from alternating key/value pairs, preserving order.
// A trailing key without a value is stored as boolean true.
func Of(pairs ...any) *Dict {
	d := New()
	for i := 0; i < len(pairs); i += 2 {
		key := strings.TrimSpace(fmt.Sprint(pairs[i]))
		if i+1 >= len(pairs) {
			d.Set(key, true)
			break
		}
		d.Set(key, pairs[i+1])
	}
	return d
}

// FromMap converts a plain map into a dictionary. Go maps are unordered, so
// keys are inserted in lexical order to keep output deterministic. Nested
// map[string]any values become nested dictionaries.
func FromMap(in map[string]any) *Dict {
	d := New()
	if len(in) == 0 {
		return d
	}
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := in[key]
		if nested, ok := value.(map[string]any); ok {
			value = FromMap(nested)
		}
		d.Set(key, value)
	}
	return d
}

// FromStrings converts a string map, inserting keys in lexical order.
func FromStrings(in map[string]string) *Dict {
	d := New()
	if len(in) == 0 {
		return d
	}
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		d.Set(key, in[key])
	}
	return d
}

// Set stores value under key. Existing keys keep their position.
func (d *Dict) Set(key string, value any) *Dict {
	key = strings.TrimSpace(key)
	if key == "" {
		return d
	}
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
	return d
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (any, bool) {
	if d == nil || d.values == nil {
		return nil, false
	}
	value, ok := d.values[key]
	return value, ok
}

// Has reports whether key is present, regardless of its value.
func (d *Dict) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Delete removes key, keeping the order of the remaining keys.
func (d *Dict) Delete(key string) {
	if d == nil || d.values == nil {
		return
	}
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, existing := range d.keys {
		if existing == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Take returns the value stored under key and removes it.
func (d *Dict) Take(key string) (any, bool) {
	value, ok := d.Get(key)
	if ok {
		d.Delete(key)
	}
	return value, ok
}

// String returns the value under key rendered as text. Missing keys and nil
// values yield "".
func (d *Dict) String(key string) string {
	value, ok := d.Get(key)
	if !ok {
		return ""
	}
	return ToString(value)
}

// Bool reports whether the value under key is truthy.
func (d *Dict) Bool(key string) bool {
	value, ok := d.Get(key)
	if !ok {
		return false
	}
	return Truthy(value)
}

// Dict returns the nested dictionary stored under key. Plain maps are
// converted. Missing or non-map values yield an empty dictionary.
func (d *Dict) Dict(key string) *Dict {
	value, ok := d.Get(key)
	if !ok {
		return New()
	}
	switch v := value.(type) {
	case *Dict:
		if v == nil {
			return New()
		}
		return v.Clone()
	case map[string]any:
		return FromMap(v)
	case map[string]string:
		return FromStrings(v)
	default:
		return New()
	}
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.keys...)
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Each visits every entry in insertion order.
func (d *Dict) Each(fn func(key string, value any)) {
	if d == nil || fn == nil {
		return
	}
	for _, key := range d.keys {
		fn(key, d.values[key])
	}
}

// Clone returns a copy of the dictionary. Nested dictionaries are cloned too.
func (d *Dict) Clone() *Dict {
	out := New()
	if d == nil {
		return out
	}
	for _, key := range d.keys {
		value := d.values[key]
		if nested, ok := value.(*Dict); ok && nested != nil {
			value = nested.Clone()
		}
		out.Set(key, value)
	}
	return out
}

// Map returns a shallow map copy, useful for template contexts.
func (d *Dict) Map() map[string]any {
	out := make(map[string]any, d.Len())
	d.Each(func(key string, value any) {
		if nested, ok := value.(*Dict); ok {
			out[key] = nested.Map()
			return
		}
		out[key] = value
	})
	return out
}

// MarshalJSON encodes the dictionary as an object in insertion order.
func (d *Dict) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	var err error
	d.Each(func(key string, value any) {
		if err != nil {
			return
		}
		var k, v []byte
		if k, err = json.Marshal(key); err != nil {
			return
		}
		if v, err = json.Marshal(value); err != nil {
			return
		}
		if len(buf) > 1 {
			buf = append(buf, ',')
		}
		buf = append(append(append(buf, k...), ':'), v...)
	})
	if err != nil {
		return nil, err
	}
	return append(buf, '}'), nil
}

// ToString renders an attribute value as text.
func ToString(value any) string {
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ""
	}
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return ""
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Truthy mirrors loose truthiness: empty strings, "0", false, nil, zero
// numbers and empty dictionaries are false.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "0"
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case *Dict:
		return v.Len() > 0
	default:
		return true
	}
}
