// Package defaults holds the lowest-precedence configuration of a form
// renderer: per-control attribute dictionaries, error-state class names, the
// checkbox uncheck sentinel and the group/auxiliary templates. Configurations
// are built in code (Bootstrap, Minimal), loaded from JSON/YAML files
// (LoadFS) or derived from a go-theme manifest (FromTheme).
package defaults

import (
	"strings"

	"github.com/goliatone/go-formfields/pkg/attrs"
)

// Control kinds with their own default attribute dictionary.
const (
	KindInput       = "input"
	KindPassword    = "password"
	KindUpload      = "upload"
	KindTextarea    = "textarea"
	KindHidden      = "hidden"
	KindDropdown    = "dropdown"
	KindMultiselect = "multiselect"
	KindCheckbox    = "checkbox"
	KindRadio       = "radio"
	KindDatalist    = "datalist"
	KindSubmit      = "submit"
	KindReset       = "reset"
	KindButton      = "button"
	KindLabel       = "label"
	KindError       = "error"
	KindMessage     = "message"
	KindHint        = "hint"
	KindGroup       = "group"
	KindForm        = "form"
	KindFieldset    = "fieldset"
	KindButtons     = "buttons"
)

// Kinds lists every known control kind.
var Kinds = []string{
	KindInput, KindPassword, KindUpload, KindTextarea, KindHidden,
	KindDropdown, KindMultiselect, KindCheckbox, KindRadio, KindDatalist,
	KindSubmit, KindReset, KindButton, KindLabel, KindError, KindMessage,
	KindHint, KindGroup, KindForm, KindFieldset, KindButtons,
}

// Built-in templates. Tokens are substituted in a single pass.
const (
	GroupTemplate   = `<div{attributes}>{label}{input}{hint}{error}</div>`
	ErrorTemplate   = `<div{attributes}>{error}</div>`
	MessageTemplate = `<div{attributes}>{message}</div>`
	HintTemplate    = `<small{attributes}>{hint}</small>`
	LabelTemplate   = `<label{attributes}>{label}</label>`
)

// DefaultUncheckValue is the hidden sentinel submitted for unchecked boxes.
const DefaultUncheckValue = "0"

// Set maps a control kind to its default attributes.
type Set map[string]*attrs.Dict

// Get returns a copy of the defaults for kind. Unknown kinds yield an empty
// dictionary.
func (s Set) Get(kind string) *attrs.Dict {
	if s == nil {
		return attrs.New()
	}
	return s[kind].Clone()
}

// Merge layers other on top of s per kind using attrs.Merge, so classes
// accumulate and other keys are replaced.
func (s Set) Merge(other Set) Set {
	out := make(Set, len(s)+len(other))
	for kind, values := range s {
		out[kind] = values.Clone()
	}
	for kind, values := range other {
		out[kind] = attrs.Merge(out[kind], values)
	}
	return out
}

// Clone returns a deep copy.
func (s Set) Clone() Set {
	return Set(nil).Merge(s)
}

// Templates holds the group and auxiliary fragment templates.
type Templates struct {
	Group   string `json:"group" yaml:"group"`
	Error   string `json:"error" yaml:"error"`
	Message string `json:"message" yaml:"message"`
	Hint    string `json:"hint" yaml:"hint"`
	Label   string `json:"label" yaml:"label"`
}

// WithFallbacks fills empty templates with the built-ins.
func (t Templates) WithFallbacks() Templates {
	t.Group = fallback(t.Group, GroupTemplate)
	t.Error = fallback(t.Error, ErrorTemplate)
	t.Message = fallback(t.Message, MessageTemplate)
	t.Hint = fallback(t.Hint, HintTemplate)
	t.Label = fallback(t.Label, LabelTemplate)
	return t
}

// Config is the complete defaults layer of a form renderer.
type Config struct {
	Attributes      Set
	ErrorClass      string
	GroupErrorClass string
	UncheckValue    string
	Templates       Templates
	// Partials maps view partial ids (e.g. "formfields.group") to template
	// names; populated from theme manifests.
	Partials map[string]string
}

// Bootstrap returns Bootstrap-flavoured defaults.
func Bootstrap() Config {
	control := func() *attrs.Dict { return attrs.Of("class", "form-control") }
	return Config{
		Attributes: Set{
			KindInput:       control(),
			KindPassword:    control(),
			KindUpload:      attrs.Of("class", "form-control-file"),
			KindTextarea:    control(),
			KindDropdown:    control(),
			KindMultiselect: control(),
			KindDatalist:    control(),
			KindCheckbox:    attrs.Of("class", "form-check-input"),
			KindRadio:       attrs.Of("class", "form-check-input"),
			KindSubmit:      attrs.Of("class", "btn btn-primary"),
			KindReset:       attrs.Of("class", "btn btn-secondary"),
			KindButton:      attrs.Of("class", "btn btn-secondary"),
			KindLabel:       attrs.Of("class", "control-label"),
			KindError:       attrs.Of("class", "error"),
			KindMessage:     attrs.Of("class", "message"),
			KindHint:        attrs.Of("class", "form-text"),
			KindGroup:       attrs.Of("class", "form-group"),
			KindButtons:     attrs.Of("class", "form-buttons"),
		},
		ErrorClass:      "is-invalid",
		GroupErrorClass: "has-error",
		UncheckValue:    DefaultUncheckValue,
		Templates:       Templates{}.WithFallbacks(),
	}
}

// Minimal returns class-free defaults: built-in templates, the default
// uncheck sentinel and the "error"/"message" classes of the classic markup.
func Minimal() Config {
	return Config{
		Attributes: Set{
			KindError:   attrs.Of("class", "error"),
			KindMessage: attrs.Of("class", "message"),
		},
		UncheckValue: DefaultUncheckValue,
		Templates:    Templates{}.WithFallbacks(),
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.Attributes = c.Attributes.Clone()
	if c.Partials != nil {
		out.Partials = make(map[string]string, len(c.Partials))
		for key, value := range c.Partials {
			out.Partials[key] = value
		}
	}
	return out
}

// Attribute returns the defaults for kind.
func (c Config) Attribute(kind string) *attrs.Dict {
	return c.Attributes.Get(kind)
}

// Partial returns the template name registered for id.
func (c Config) Partial(id string) (string, bool) {
	name, ok := c.Partials[id]
	name = strings.TrimSpace(name)
	return name, ok && name != ""
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
