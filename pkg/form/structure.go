package form

import (
	"github.com/goliatone/go-formfields/pkg/attrs"
	"github.com/goliatone/go-formfields/pkg/defaults"
	"github.com/goliatone/go-formfields/pkg/htmltag"
)

// Open renders the opening form tag with the form defaults merged in,
// followed by hidden inputs for hidden.
func (f *Form) Open(action string, a *attrs.Dict, hidden map[string]string) string {
	return f.tags.FormOpen(action, f.structural(defaults.KindForm, a), hidden)
}

// OpenMultipart renders Open with a multipart/form-data encoding.
func (f *Form) OpenMultipart(action string, a *attrs.Dict, hidden map[string]string) string {
	merged := f.structural(defaults.KindForm, a)
	merged.Set("enctype", "multipart/form-data")
	return f.tags.FormOpen(action, merged, hidden)
}

// Close renders the closing form tag followed by extra.
func (f *Form) Close(extra string) string {
	return f.tags.FormClose(extra)
}

// OpenFieldset renders an opening fieldset with an optional legend.
func (f *Form) OpenFieldset(legend string, a *attrs.Dict) string {
	return f.tags.Fieldset(legend, f.structural(defaults.KindFieldset, a))
}

// CloseFieldset renders the closing fieldset tag followed by extra.
func (f *Form) CloseFieldset(extra string) string {
	return f.tags.FieldsetClose(extra)
}

// BeginButtons opens the button bar wrapper.
func (f *Form) BeginButtons(a *attrs.Dict) string {
	return "<div" + htmltag.Attributes(f.structural(defaults.KindButtons, a)) + ">"
}

// EndButtons closes the button bar wrapper.
func (f *Form) EndButtons() string {
	return "</div>"
}

// structural merges kind defaults into a. Structural tags carry literal
// attributes only, so "name" and "id" are kept while the remaining
// directives are dropped.
func (f *Form) structural(kind string, a *attrs.Dict) *attrs.Dict {
	out := f.literal(kind, a)
	if name := a.String(attrs.KeyName); name != "" {
		out.Set(attrs.KeyName, name)
	}
	return out
}
