package form

import (
	"strings"

	"github.com/goliatone/go-formfields/pkg/attrs"
	"github.com/goliatone/go-formfields/pkg/datasource"
	"github.com/goliatone/go-formfields/pkg/defaults"
	"github.com/goliatone/go-formfields/pkg/field"
	"github.com/goliatone/go-formfields/pkg/htmltag"
)

// control is a field resolved for one render call.
type control struct {
	source   datasource.DataSource
	name     string
	value    string
	hasError bool
	attrs    *attrs.Dict
}

// prepare resolves name, value and error for field, merges the kind
// defaults, applies the error class and strips directives. An explicit id is
// kept as a literal attribute.
func (f *Form) prepare(src any, name string, a *attrs.Dict, kind string) control {
	ds := datasource.From(src)
	_, hasError := f.resolver.Error(name, a)

	merged := field.MergeAttributes(f.cfg.Attribute(kind), a)
	merged = field.AddErrorClass(merged, hasError, f.cfg.ErrorClass)
	out := attrs.StripDirectives(merged)
	if a.Has(attrs.KeyID) {
		out.Set(attrs.KeyID, f.resolver.ID(name, a))
	}

	return control{
		source:   ds,
		name:     f.resolver.Name(a, name),
		value:    f.resolver.Value(ds, name, a, ""),
		hasError: hasError,
		attrs:    out,
	}
}

// Input renders a text-like input. The "type" directive selects the input
// type (text by default).
func (f *Form) Input(src any, name string, a *attrs.Dict) string {
	c := f.prepare(src, name, a, defaults.KindInput)
	return f.tags.Input(c.name, c.value, c.attrs, a.String(attrs.KeyType))
}

// Password renders a password input.
func (f *Form) Password(src any, name string, a *attrs.Dict) string {
	c := f.prepare(src, name, a, defaults.KindPassword)
	return f.tags.Password(c.name, c.value, c.attrs)
}

// Upload renders a file input.
func (f *Form) Upload(src any, name string, a *attrs.Dict) string {
	c := f.prepare(src, name, a, defaults.KindUpload)
	return f.tags.Upload(c.name, c.value, c.attrs)
}

// Textarea renders a textarea.
func (f *Form) Textarea(src any, name string, a *attrs.Dict) string {
	c := f.prepare(src, name, a, defaults.KindTextarea)
	return f.tags.Textarea(c.name, c.value, c.attrs)
}

// Hidden renders a hidden input.
func (f *Form) Hidden(src any, name string, a *attrs.Dict) string {
	c := f.prepare(src, name, a, defaults.KindHidden)
	return f.tags.Hidden(c.name, c.value, c.attrs)
}

// Dropdown renders a single-choice select. The current value selects the
// matching option.
func (f *Form) Dropdown(src any, name string, options []htmltag.Option, a *attrs.Dict) string {
	c := f.prepare(src, name, a, defaults.KindDropdown)
	return f.tags.Dropdown(c.name, options, f.resolver.Values(c.source, name, a), c.attrs)
}

// Multiselect renders a multiple-choice select. Every member of a collection
// value is selected.
func (f *Form) Multiselect(src any, name string, options []htmltag.Option, a *attrs.Dict) string {
	c := f.prepare(src, name, a, defaults.KindMultiselect)
	return f.tags.Multiselect(c.name, options, f.resolver.Values(c.source, name, a), c.attrs)
}

// Datalist renders a text input with a list of suggestions.
func (f *Form) Datalist(src any, name string, options []htmltag.Option, a *attrs.Dict) string {
	c := f.prepare(src, name, a, defaults.KindDatalist)
	return f.tags.Datalist(c.name, c.value, options, c.attrs)
}

// Submit renders a submit input. Buttons are not bound to a data source.
func (f *Form) Submit(name, value string, a *attrs.Dict) string {
	return f.tags.Submit(name, value, f.literal(defaults.KindSubmit, a))
}

// Reset renders a reset input.
func (f *Form) Reset(name, value string, a *attrs.Dict) string {
	return f.tags.Reset(name, value, f.literal(defaults.KindReset, a))
}

// Button renders a <button>. The "type" directive sets the button type.
func (f *Form) Button(name, content string, a *attrs.Dict) string {
	out := f.literal(defaults.KindButton, a)
	if buttonType := strings.TrimSpace(a.String(attrs.KeyType)); buttonType != "" {
		out.Set(attrs.KeyType, buttonType)
	}
	return f.tags.Button(name, content, out)
}

// Label renders a standalone <label> through the tag generator.
func (f *Form) Label(text, forID string, a *attrs.Dict) string {
	return f.tags.Label(f.clean(text), forID, f.literal(defaults.KindLabel, a))
}

// InputGroup renders Input wrapped in the group template.
func (f *Form) InputGroup(src any, name string, a, group *attrs.Dict) string {
	a = f.withID(name, a)
	return f.group(src, name, f.Input(src, name, a), a, group)
}

// PasswordGroup renders Password wrapped in the group template.
func (f *Form) PasswordGroup(src any, name string, a, group *attrs.Dict) string {
	a = f.withID(name, a)
	return f.group(src, name, f.Password(src, name, a), a, group)
}

// UploadGroup renders Upload wrapped in the group template.
func (f *Form) UploadGroup(src any, name string, a, group *attrs.Dict) string {
	a = f.withID(name, a)
	return f.group(src, name, f.Upload(src, name, a), a, group)
}

// TextareaGroup renders Textarea wrapped in the group template.
func (f *Form) TextareaGroup(src any, name string, a, group *attrs.Dict) string {
	a = f.withID(name, a)
	return f.group(src, name, f.Textarea(src, name, a), a, group)
}

// DropdownGroup renders Dropdown wrapped in the group template.
func (f *Form) DropdownGroup(src any, name string, options []htmltag.Option, a, group *attrs.Dict) string {
	a = f.withID(name, a)
	return f.group(src, name, f.Dropdown(src, name, options, a), a, group)
}

// MultiselectGroup renders Multiselect wrapped in the group template.
func (f *Form) MultiselectGroup(src any, name string, options []htmltag.Option, a, group *attrs.Dict) string {
	a = f.withID(name, a)
	return f.group(src, name, f.Multiselect(src, name, options, a), a, group)
}

// DatalistGroup renders Datalist wrapped in the group template.
func (f *Form) DatalistGroup(src any, name string, options []htmltag.Option, a, group *attrs.Dict) string {
	a = f.withID(name, a)
	return f.group(src, name, f.Datalist(src, name, options, a), a, group)
}

// withID returns a copy of a carrying the resolved control id.
func (f *Form) withID(name string, a *attrs.Dict) *attrs.Dict {
	out := a.Clone()
	if !out.Has(attrs.KeyID) {
		out.Set(attrs.KeyID, f.resolver.ID(name, a))
	}
	return out
}

// group renders control inside the group template. Resolver directives on the
// control (name, label, error) carry over to the group unless the group
// options set them, and the label targets the control id unless
// labelAttributes.for is supplied.
func (f *Form) group(src any, name, control string, a, group *attrs.Dict) string {
	return f.groupFor(src, name, control, a, group, f.resolver.ID(name, a))
}

func (f *Form) groupFor(src any, name, control string, a, group *attrs.Dict, forID string) string {
	options := group.Clone()
	for _, key := range []string{attrs.KeyName, attrs.KeyLabel, attrs.KeyError} {
		if value, ok := a.Get(key); ok && !options.Has(key) {
			options.Set(key, value)
		}
	}
	labelAttrs := options.Dict(attrs.KeyLabelAttributes)
	if !labelAttrs.Has("for") && forID != "" {
		labelAttrs.Set("for", forID)
	}
	options.Set(attrs.KeyLabelAttributes, labelAttrs)
	return f.RenderGroup(src, name, control, options)
}
