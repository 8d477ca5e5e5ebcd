package form

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formfields/pkg/attrs"
	"github.com/goliatone/go-formfields/pkg/datasource"
	"github.com/goliatone/go-formfields/pkg/defaults"
	"github.com/goliatone/go-formfields/pkg/field"
	"github.com/goliatone/go-formfields/pkg/htmltag"
)

// DefaultSeparator joins the items of checkbox and radio lists.
const DefaultSeparator = "\n"

// Checkbox renders a checkbox preceded by a hidden control carrying the
// uncheck sentinel, so an unchecked box still submits a value. The sentinel
// comes from the "uncheckValue" directive or the configured default; an
// empty sentinel omits the hidden control.
//
// The box is checked when the "checked" directive is truthy or, without the
// directive, when value is a member of a collection current value or equals
// a scalar one.
func (f *Form) Checkbox(src any, name, value string, a *attrs.Dict) string {
	c := f.prepare(src, name, a, defaults.KindCheckbox)
	box := f.tags.Checkbox(c.name, value, f.checked(c.source, name, value, a), c.attrs)
	return f.sentinel(c.name, a) + box
}

// Radio renders a radio button. No sentinel is emitted.
func (f *Form) Radio(src any, name, value string, a *attrs.Dict) string {
	c := f.prepare(src, name, a, defaults.KindRadio)
	return f.tags.Radio(c.name, value, f.checked(c.source, name, value, a), c.attrs)
}

// CheckboxList renders one checkbox per option, named "<name>[]" with ids
// "<id>_<index>", preceded by a single sentinel named "<name>". Each item is
// wrapped in its label and items are joined by the "separator" directive.
// "itemAttributes" are applied to every checkbox.
func (f *Form) CheckboxList(src any, name string, options []htmltag.Option, a *attrs.Dict) string {
	wire := strings.TrimSuffix(f.resolver.Name(a, name), "[]")
	items := f.listItems(src, name, options, a, defaults.KindCheckbox, func(value string, checked bool, itemAttrs *attrs.Dict) string {
		return f.tags.Checkbox(wire+"[]", value, checked, itemAttrs)
	})
	return f.sentinel(wire, a) + items
}

// RadioList renders one radio per option, all named "<name>".
func (f *Form) RadioList(src any, name string, options []htmltag.Option, a *attrs.Dict) string {
	wire := f.resolver.Name(a, name)
	return f.listItems(src, name, options, a, defaults.KindRadio, func(value string, checked bool, itemAttrs *attrs.Dict) string {
		return f.tags.Radio(wire, value, checked, itemAttrs)
	})
}

// CheckboxGroup renders Checkbox wrapped in the group template.
func (f *Form) CheckboxGroup(src any, name, value string, a, group *attrs.Dict) string {
	a = f.withID(name, a)
	return f.group(src, name, f.Checkbox(src, name, value, a), a, group)
}

// RadioGroup renders Radio wrapped in the group template.
func (f *Form) RadioGroup(src any, name, value string, a, group *attrs.Dict) string {
	a = f.withID(name, a)
	return f.group(src, name, f.Radio(src, name, value, a), a, group)
}

// CheckboxListGroup renders CheckboxList wrapped in the group template; the
// group label targets the first item.
func (f *Form) CheckboxListGroup(src any, name string, options []htmltag.Option, a, group *attrs.Dict) string {
	return f.groupFor(src, name, f.CheckboxList(src, name, options, a), a, group, f.firstItemID(name, options, a))
}

// RadioListGroup renders RadioList wrapped in the group template; the group
// label targets the first item.
func (f *Form) RadioListGroup(src any, name string, options []htmltag.Option, a, group *attrs.Dict) string {
	return f.groupFor(src, name, f.RadioList(src, name, options, a), a, group, f.firstItemID(name, options, a))
}

// sentinel renders the hidden uncheck control, or "" when disabled.
func (f *Form) sentinel(name string, a *attrs.Dict) string {
	uncheck := f.cfg.UncheckValue
	if raw, ok := a.Get(attrs.KeyUncheckValue); ok {
		uncheck = attrs.ToString(raw)
	}
	if uncheck == "" {
		return ""
	}
	return f.tags.Hidden(name, uncheck, nil)
}

// checked applies the checked directive, then membership or equality
// against the current value.
func (f *Form) checked(src datasource.DataSource, name, target string, a *attrs.Dict) bool {
	if raw, ok := a.Get(attrs.KeyChecked); ok {
		return attrs.Truthy(raw)
	}
	current, ok := f.resolver.RawValue(src, name, a)
	if !ok {
		return false
	}
	if field.IsCollection(current) {
		for _, member := range field.Members(current) {
			if member == target {
				return true
			}
		}
		return false
	}
	return field.Stringify(current) == target
}

func (f *Form) listItems(src any, name string, options []htmltag.Option, a *attrs.Dict, kind string, render func(value string, checked bool, itemAttrs *attrs.Dict) string) string {
	ds := datasource.From(src)
	_, hasError := f.resolver.Error(name, a)
	baseID := f.resolver.ID(name, a)

	current := make(map[string]struct{})
	for _, value := range f.resolver.Values(ds, name, a) {
		current[value] = struct{}{}
	}
	forced, hasForced := a.Get(attrs.KeyChecked)

	base := field.MergeAttributes(f.cfg.Attribute(kind), attrs.StripDirectives(a))
	base = field.MergeAttributes(base, a.Dict(attrs.KeyItemAttributes))
	base = field.AddErrorClass(base, hasError, f.cfg.ErrorClass)

	separator := DefaultSeparator
	if a.Has(attrs.KeySeparator) {
		separator = a.String(attrs.KeySeparator)
	}

	items := make([]string, 0, len(options))
	for i, option := range options {
		itemAttrs := base.Clone()
		itemID := fmt.Sprintf("%s_%d", baseID, i)
		itemAttrs.Set(attrs.KeyID, itemID)

		_, checked := current[option.Value]
		if hasForced {
			checked = attrs.Truthy(forced)
		}

		control := render(option.Value, checked, itemAttrs)
		items = append(items, f.tags.Label(control+" "+html.EscapeString(option.Label), "", nil))
	}
	return strings.Join(items, separator)
}

func (f *Form) firstItemID(name string, options []htmltag.Option, a *attrs.Dict) string {
	if len(options) == 0 {
		return ""
	}
	return f.resolver.ID(name, a) + "_0"
}
