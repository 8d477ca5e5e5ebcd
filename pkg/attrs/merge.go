package attrs

import "strings"

// ClassKey is the only attribute merged by concatenation instead of
// replacement.
const ClassKey = "class"

// Directive keys understood by the resolver and renderers. They are consumed
// before a dictionary reaches the HTML serializer.
const (
	KeyName            = "name"
	KeyValue           = "value"
	KeyLabel           = "label"
	KeyError           = "error"
	KeyID              = "id"
	KeyTemplate        = "template"
	KeyUncheckValue    = "uncheckValue"
	KeyChecked         = "checked"
	KeyType            = "type"
	KeyPrefix          = "prefix"
	KeySuffix          = "suffix"
	KeyHint            = "hint"
	KeyLabelAttributes = "labelAttributes"
	KeyErrorAttributes = "errorAttributes"
	KeyHintAttributes  = "hintAttributes"
	KeyAttributes      = "attributes"
	KeySeparator       = "separator"
	KeyItemAttributes  = "itemAttributes"
)

// Directives lists every resolver directive key.
var Directives = []string{
	KeyName,
	KeyValue,
	KeyLabel,
	KeyError,
	KeyID,
	KeyTemplate,
	KeyUncheckValue,
	KeyChecked,
	KeyType,
	KeyPrefix,
	KeySuffix,
	KeyHint,
	KeyLabelAttributes,
	KeyErrorAttributes,
	KeyHintAttributes,
	KeyAttributes,
	KeySeparator,
	KeyItemAttributes,
}

// Merge layers overrides on top of defaults. Override wins per key except for
// class, where the values are concatenated ("default override") so default
// CSS classes are never dropped. Neither input is mutated.
func Merge(defaults, overrides *Dict) *Dict {
	out := defaults.Clone()
	overrides.Each(func(key string, value any) {
		if key == ClassKey {
			out.Set(ClassKey, JoinClass(out.String(ClassKey), ToString(value)))
			return
		}
		if nested, ok := value.(*Dict); ok && nested != nil {
			value = nested.Clone()
		}
		out.Set(key, value)
	})
	return out
}

// AddClass returns a copy of d with className appended to its class value.
func AddClass(d *Dict, className string) *Dict {
	out := d.Clone()
	className = strings.TrimSpace(className)
	if className == "" {
		return out
	}
	out.Set(ClassKey, JoinClass(out.String(ClassKey), className))
	return out
}

// JoinClass concatenates two class lists, skipping empty halves.
func JoinClass(base, extra string) string {
	base = strings.TrimSpace(base)
	extra = strings.TrimSpace(extra)
	switch {
	case base == "":
		return extra
	case extra == "":
		return base
	default:
		return base + " " + extra
	}
}

// StripDirectives returns a copy of d without any directive key, ready for
// serialization.
func StripDirectives(d *Dict) *Dict {
	out := d.Clone()
	for _, key := range Directives {
		out.Delete(key)
	}
	return out
}

// IsDirective reports whether key is consumed by the resolver.
func IsDirective(key string) bool {
	for _, directive := range Directives {
		if directive == key {
			return true
		}
	}
	return false
}
