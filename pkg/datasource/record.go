package datasource

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/goliatone/go-formfields/pkg/rules"
)

// Record adapts a struct value (or pointer to struct) exposing named fields
// and/or getter methods. When a direct field is missing or nil and the value
// implements Arrayable, the lookup falls back to its mapping form.
type Record struct {
	value  any
	target reflect.Value
}

var (
	_ DataSource = (*Record)(nil)
	_ Labeler    = (*Record)(nil)
	_ RuleSource = (*Record)(nil)
)

// NewRecord wraps value. Non-struct values are accepted as long as they
// implement Arrayable; otherwise every lookup reports absent.
func NewRecord(value any) *Record {
	rv := reflect.ValueOf(value)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv = reflect.Value{}
			break
		}
		rv = rv.Elem()
	}
	return &Record{value: value, target: rv}
}

// Field resolves name against the record's fields, then its getter methods,
// then its Arrayable mapping.
func (r *Record) Field(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}

	if value, ok := r.direct(name); ok && !isNil(value) {
		return value, true
	}

	if arrayable, ok := r.value.(Arrayable); ok {
		if mapped := arrayable.ToMap(); mapped != nil {
			if value, ok := mapped[name]; ok && !isNil(value) {
				return value, true
			}
		}
	}
	return nil, false
}

// FieldLabel forwards to the wrapped model when it implements Labeler.
func (r *Record) FieldLabel(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	if labeler, ok := r.value.(Labeler); ok {
		return labeler.FieldLabel(name)
	}
	return "", false
}

// ValidationRules forwards to the wrapped model when it implements
// RuleSource. It returns nil otherwise.
func (r *Record) ValidationRules() rules.Provider {
	if r == nil {
		return nil
	}
	if source, ok := r.value.(RuleSource); ok {
		return source.ValidationRules()
	}
	return nil
}

// Value returns the wrapped value.
func (r *Record) Value() any {
	if r == nil {
		return nil
	}
	return r.value
}

func (r *Record) direct(name string) (any, bool) {
	if r.target.IsValid() && r.target.Kind() == reflect.Struct {
		if index, ok := fieldIndex(r.target.Type(), name); ok {
			field, err := r.target.FieldByIndexErr(index)
			if err == nil {
				return field.Interface(), true
			}
		}
	}
	return r.getter(name)
}

// reservedMethods are interface methods a record may implement that never
// stand for a field.
var reservedMethods = map[string]struct{}{
	"String":          {},
	"GoString":        {},
	"Error":           {},
	"MarshalText":     {},
	"MarshalJSON":     {},
	"ToMap":           {},
	"FieldLabel":      {},
	"ValidationRules": {},
}

func (r *Record) getter(name string) (any, bool) {
	if r.value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(r.value)
	camel := camelCase(name)
	candidates := []string{"Get" + camel}
	if _, reserved := reservedMethods[camel]; !reserved {
		candidates = append(candidates, camel)
	}
	for _, candidate := range candidates {
		method := rv.MethodByName(candidate)
		if !method.IsValid() {
			continue
		}
		mt := method.Type()
		if mt.NumIn() != 0 || mt.NumOut() != 1 {
			continue
		}
		return method.Call(nil)[0].Interface(), true
	}
	return nil, false
}

var fieldIndexCache sync.Map // map[fieldCacheKey][]int

type fieldCacheKey struct {
	typ  reflect.Type
	name string
}

type fieldMiss struct{}

func fieldIndex(t reflect.Type, name string) ([]int, bool) {
	key := fieldCacheKey{typ: t, name: name}
	if cached, ok := fieldIndexCache.Load(key); ok {
		if index, ok := cached.([]int); ok {
			return index, true
		}
		return nil, false
	}

	index, ok := lookupFieldIndex(t, name)
	if ok {
		fieldIndexCache.Store(key, index)
	} else {
		fieldIndexCache.Store(key, fieldMiss{})
	}
	return index, ok
}

// lookupFieldIndex matches, in order: the exact Go field name, a `form` tag,
// a `json` tag, and finally a case and underscore insensitive name match.
func lookupFieldIndex(t reflect.Type, name string) ([]int, bool) {
	fields := reflect.VisibleFields(t)

	matchers := []func(reflect.StructField) bool{
		func(f reflect.StructField) bool { return f.Name == name },
		func(f reflect.StructField) bool { return tagName(f.Tag.Get("form")) == name },
		func(f reflect.StructField) bool { return tagName(f.Tag.Get("json")) == name },
		func(f reflect.StructField) bool { return normalizeName(f.Name) == normalizeName(name) },
	}

	for _, match := range matchers {
		for _, field := range fields {
			if !field.IsExported() || field.Anonymous {
				continue
			}
			if match(field) {
				return field.Index, true
			}
		}
	}
	return nil, false
}

func tagName(tag string) string {
	if tag == "" || tag == "-" {
		return ""
	}
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	return strings.TrimSpace(tag)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(name))
}

func camelCase(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	var builder strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		builder.WriteString(string(runes))
	}
	return builder.String()
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
