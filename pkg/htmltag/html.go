package htmltag

import (
	"html"
	"sort"
	"strings"

	"github.com/goliatone/go-formfields/pkg/attrs"
)

// HTML is the default Generator. Attribute values and control values are
// escaped; label text, legends and button content are emitted as given so
// callers can embed inline markup.
type HTML struct{}

var _ Generator = HTML{}

// New returns the default generator.
func New() HTML {
	return HTML{}
}

// Attributes serialises a dictionary into an attribute string with a leading
// space per attribute. true renders a bare boolean attribute; false, nil and
// nested dictionaries are skipped.
func Attributes(a *attrs.Dict) string {
	var builder strings.Builder
	a.Each(func(key string, value any) {
		switch v := value.(type) {
		case nil:
			return
		case bool:
			if !v {
				return
			}
			builder.WriteByte(' ')
			builder.WriteString(key)
			return
		case *attrs.Dict, map[string]any, map[string]string:
			return
		}
		builder.WriteByte(' ')
		builder.WriteString(key)
		builder.WriteString(`="`)
		builder.WriteString(html.EscapeString(attrs.ToString(value)))
		builder.WriteByte('"')
	})
	return builder.String()
}

// Input renders an <input>; inputType defaults to "text".
func (HTML) Input(name, value string, a *attrs.Dict, inputType string) string {
	inputType = strings.TrimSpace(inputType)
	if inputType == "" {
		inputType = "text"
	}
	return inputTag(inputType, name, value, true, a)
}

// Password renders a password input.
func (HTML) Password(name, value string, a *attrs.Dict) string {
	return inputTag("password", name, value, true, a)
}

// Upload renders a file input. File inputs cannot carry a value.
func (HTML) Upload(name, _ string, a *attrs.Dict) string {
	return inputTag("file", name, "", false, a)
}

// Hidden renders a hidden input.
func (HTML) Hidden(name, value string, a *attrs.Dict) string {
	return inputTag("hidden", name, value, true, a)
}

// Textarea renders a <textarea> with the escaped value as content.
func (HTML) Textarea(name, value string, a *attrs.Dict) string {
	var builder strings.Builder
	builder.WriteString(`<textarea`)
	writeAttr(&builder, "name", name)
	builder.WriteString(Attributes(a))
	builder.WriteByte('>')
	builder.WriteString(html.EscapeString(value))
	builder.WriteString(`</textarea>`)
	return builder.String()
}

// Checkbox renders a checkbox input.
func (HTML) Checkbox(name, value string, checked bool, a *attrs.Dict) string {
	return checkableTag("checkbox", name, value, checked, a)
}

// Radio renders a radio input.
func (HTML) Radio(name, value string, checked bool, a *attrs.Dict) string {
	return checkableTag("radio", name, value, checked, a)
}

// Dropdown renders a single-choice <select>.
func (HTML) Dropdown(name string, options []Option, selected []string, a *attrs.Dict) string {
	return selectTag(name, options, selected, false, a)
}

// Multiselect renders a multiple-choice <select>.
func (HTML) Multiselect(name string, options []Option, selected []string, a *attrs.Dict) string {
	return selectTag(name, options, selected, true, a)
}

// Datalist renders a text input bound to a <datalist> of suggestions. The
// list id is taken from the "list" attribute or derived from name.
func (HTML) Datalist(name, value string, options []Option, a *attrs.Dict) string {
	a = a.Clone()
	listID := strings.TrimSpace(a.String("list"))
	if listID == "" {
		listID = name + "_list"
		a.Set("list", listID)
	}

	var builder strings.Builder
	builder.WriteString(inputTag("text", name, value, true, a))
	builder.WriteString("\n")
	builder.WriteString(`<datalist`)
	writeAttr(&builder, "id", listID)
	builder.WriteString(">\n")
	for _, option := range options {
		builder.WriteString(`<option`)
		writeAttr(&builder, "value", option.Value)
		builder.WriteByte('>')
		builder.WriteString(html.EscapeString(option.Label))
		builder.WriteString("</option>\n")
	}
	builder.WriteString(`</datalist>`)
	return builder.String()
}

// Submit renders a submit input.
func (HTML) Submit(name, value string, a *attrs.Dict) string {
	return inputTag("submit", name, value, true, a)
}

// Reset renders a reset input.
func (HTML) Reset(name, value string, a *attrs.Dict) string {
	return inputTag("reset", name, value, true, a)
}

// Button renders a <button>; type defaults to "button" unless supplied.
func (HTML) Button(name, content string, a *attrs.Dict) string {
	a = a.Clone()
	buttonType := strings.TrimSpace(a.String("type"))
	a.Delete("type")
	if buttonType == "" {
		buttonType = "button"
	}

	var builder strings.Builder
	builder.WriteString(`<button`)
	if name != "" {
		writeAttr(&builder, "name", name)
	}
	writeAttr(&builder, "type", buttonType)
	builder.WriteString(Attributes(a))
	builder.WriteByte('>')
	builder.WriteString(content)
	builder.WriteString(`</button>`)
	return builder.String()
}

// Label renders a <label>. forID is omitted when empty.
func (HTML) Label(text, forID string, a *attrs.Dict) string {
	var builder strings.Builder
	builder.WriteString(`<label`)
	if forID != "" {
		writeAttr(&builder, "for", forID)
	}
	a = a.Clone()
	a.Delete("for")
	builder.WriteString(Attributes(a))
	builder.WriteByte('>')
	builder.WriteString(text)
	builder.WriteString(`</label>`)
	return builder.String()
}

// FormOpen renders an opening <form> tag followed by hidden inputs sorted by
// name. The method defaults to "post".
func (h HTML) FormOpen(action string, a *attrs.Dict, hidden map[string]string) string {
	a = a.Clone()
	method := strings.ToLower(strings.TrimSpace(a.String("method")))
	a.Delete("method")
	if method == "" {
		method = "post"
	}
	charset := strings.TrimSpace(a.String("accept-charset"))
	a.Delete("accept-charset")
	if charset == "" {
		charset = "utf-8"
	}

	var builder strings.Builder
	builder.WriteString(`<form`)
	writeAttr(&builder, "action", action)
	writeAttr(&builder, "method", method)
	writeAttr(&builder, "accept-charset", charset)
	builder.WriteString(Attributes(a))
	builder.WriteString(">\n")

	names := make([]string, 0, len(hidden))
	for name := range hidden {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		builder.WriteString(h.Hidden(name, hidden[name], nil))
		builder.WriteString("\n")
	}
	return builder.String()
}

// FormClose renders the closing </form> tag followed by extra.
func (HTML) FormClose(extra string) string {
	return "</form>" + extra
}

// Fieldset renders an opening <fieldset> with an optional <legend>.
func (HTML) Fieldset(legend string, a *attrs.Dict) string {
	var builder strings.Builder
	builder.WriteString(`<fieldset`)
	builder.WriteString(Attributes(a))
	builder.WriteString(">\n")
	if legend != "" {
		builder.WriteString(`<legend>`)
		builder.WriteString(legend)
		builder.WriteString("</legend>\n")
	}
	return builder.String()
}

// FieldsetClose renders the closing </fieldset> tag followed by extra.
func (HTML) FieldsetClose(extra string) string {
	return "</fieldset>" + extra
}

func inputTag(inputType, name, value string, withValue bool, a *attrs.Dict) string {
	var builder strings.Builder
	builder.WriteString(`<input`)
	writeAttr(&builder, "type", inputType)
	writeAttr(&builder, "name", name)
	if withValue {
		writeAttr(&builder, "value", value)
	}
	builder.WriteString(Attributes(a))
	builder.WriteByte('>')
	return builder.String()
}

func checkableTag(inputType, name, value string, checked bool, a *attrs.Dict) string {
	a = a.Clone()
	a.Delete("checked")
	var builder strings.Builder
	builder.WriteString(`<input`)
	writeAttr(&builder, "type", inputType)
	writeAttr(&builder, "name", name)
	writeAttr(&builder, "value", value)
	if checked {
		builder.WriteString(` checked`)
	}
	builder.WriteString(Attributes(a))
	builder.WriteByte('>')
	return builder.String()
}

func selectTag(name string, options []Option, selected []string, multiple bool, a *attrs.Dict) string {
	a = a.Clone()
	a.Delete("multiple")

	chosen := make(map[string]struct{}, len(selected))
	for _, value := range selected {
		chosen[value] = struct{}{}
	}

	var builder strings.Builder
	builder.WriteString(`<select`)
	writeAttr(&builder, "name", name)
	if multiple {
		builder.WriteString(` multiple`)
	}
	builder.WriteString(Attributes(a))
	builder.WriteString(">\n")

	currentGroup := ""
	for _, option := range options {
		if option.Group != currentGroup {
			if currentGroup != "" {
				builder.WriteString("</optgroup>\n")
			}
			if option.Group != "" {
				builder.WriteString(`<optgroup`)
				writeAttr(&builder, "label", option.Group)
				builder.WriteString(">\n")
			}
			currentGroup = option.Group
		}
		builder.WriteString(`<option`)
		writeAttr(&builder, "value", option.Value)
		if _, ok := chosen[option.Value]; ok {
			builder.WriteString(` selected`)
		}
		builder.WriteByte('>')
		builder.WriteString(html.EscapeString(option.Label))
		builder.WriteString("</option>\n")
	}
	if currentGroup != "" {
		builder.WriteString("</optgroup>\n")
	}
	builder.WriteString(`</select>`)
	return builder.String()
}

func writeAttr(builder *strings.Builder, key, value string) {
	builder.WriteByte(' ')
	builder.WriteString(key)
	builder.WriteString(`="`)
	builder.WriteString(html.EscapeString(value))
	builder.WriteByte('"')
}
