// Package htmltag defines the tag-generator facility the form engine
// delegates control markup to, and ships a default HTML implementation. A
// generator receives already-resolved names, values and attribute
// dictionaries stripped of resolver directives; it never fails.
package htmltag

import "github.com/goliatone/go-formfields/pkg/attrs"

// Option is a single choice in a dropdown, multiselect or list control.
type Option struct {
	Value string
	Label string
	// Group places the option inside an <optgroup> with this label.
	Group string
}

// Options builds options from alternating value/label pairs.
func Options(pairs ...string) []Option {
	out := make([]Option, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Option{Value: pairs[i], Label: pairs[i+1]})
	}
	return out
}

// Generator produces HTML for individual controls and structural tags.
type Generator interface {
	Input(name, value string, a *attrs.Dict, inputType string) string
	Password(name, value string, a *attrs.Dict) string
	Upload(name, value string, a *attrs.Dict) string
	Textarea(name, value string, a *attrs.Dict) string
	Hidden(name, value string, a *attrs.Dict) string
	Checkbox(name, value string, checked bool, a *attrs.Dict) string
	Radio(name, value string, checked bool, a *attrs.Dict) string
	Dropdown(name string, options []Option, selected []string, a *attrs.Dict) string
	Multiselect(name string, options []Option, selected []string, a *attrs.Dict) string
	Datalist(name, value string, options []Option, a *attrs.Dict) string
	Submit(name, value string, a *attrs.Dict) string
	Reset(name, value string, a *attrs.Dict) string
	Button(name, content string, a *attrs.Dict) string
	Label(text, forID string, a *attrs.Dict) string
	FormOpen(action string, a *attrs.Dict, hidden map[string]string) string
	FormClose(extra string) string
	Fieldset(legend string, a *attrs.Dict) string
	FieldsetClose(extra string) string
}
