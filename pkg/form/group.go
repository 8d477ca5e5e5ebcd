package form

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfields/pkg/attrs"
	"github.com/goliatone/go-formfields/pkg/datasource"
	"github.com/goliatone/go-formfields/pkg/defaults"
	"github.com/goliatone/go-formfields/pkg/errorstore"
	"github.com/goliatone/go-formfields/pkg/htmltag"
)

// Group template tokens.
const (
	TokenLabel      = "{label}"
	TokenInput      = "{input}"
	TokenError      = "{error}"
	TokenAttributes = "{attributes}"
	TokenHint       = "{hint}"
	TokenMessage    = "{message}"
)

// RenderGroup composes label, control, hint and error into the group
// template. Recognised options:
//
//   - template: replaces the default group template
//   - prefix, suffix: wrap control before substitution
//   - label: explicit label text; false suppresses the label
//   - labelAttributes, errorAttributes, hintAttributes: fragment attributes
//   - hint: hint text, or true to use the hint from the validation rules
//   - attributes: group wrapper attributes
//   - name, error: resolver overrides used for the error lookup
//
// Tokens are substituted in a single pass, so label or error text containing
// a token is never expanded. Unknown tokens stay literal.
func (f *Form) RenderGroup(src any, name, control string, options *attrs.Dict) string {
	ds := datasource.From(src)

	tpl := f.cfg.Templates.Group
	if options.Has(attrs.KeyTemplate) {
		tpl = options.String(attrs.KeyTemplate)
	}
	if !strings.Contains(tpl, TokenInput) {
		f.logger.Debug("form: group template has no input token", zap.String("field", name))
	}

	if prefix, ok := options.Get(attrs.KeyPrefix); ok {
		control = attrs.ToString(prefix) + control
	}
	if suffix, ok := options.Get(attrs.KeySuffix); ok {
		control += attrs.ToString(suffix)
	}

	label := ""
	if raw, ok := options.Get(attrs.KeyLabel); !ok || raw != false {
		labelAttrs := options.Dict(attrs.KeyLabelAttributes)
		forID, _ := labelAttrs.Take("for")
		label = f.RenderLabel(f.resolver.Label(ds, name, options), attrs.ToString(forID), labelAttrs)
	}

	message, hasError := f.resolver.Error(name, options)
	errorHTML := f.RenderError(message, options.Dict(attrs.KeyErrorAttributes))

	hint := ""
	if raw, ok := options.Get(attrs.KeyHint); ok && attrs.Truthy(raw) {
		text := attrs.ToString(raw)
		if raw == true {
			text, _ = f.resolver.Hint(ds, name)
		}
		hint = f.RenderHint(text, options.Dict(attrs.KeyHintAttributes))
	}

	groupAttrs := f.GroupAttributes(options.Dict(attrs.KeyAttributes), hasError)

	return strings.NewReplacer(
		TokenLabel, label,
		TokenInput, control,
		TokenError, errorHTML,
		TokenAttributes, htmltag.Attributes(groupAttrs),
		TokenHint, hint,
	).Replace(tpl)
}

// RenderLabel fills the label template. Empty text yields "".
func (f *Form) RenderLabel(text, forID string, a *attrs.Dict) string {
	if text == "" {
		return ""
	}
	merged := f.literal(defaults.KindLabel, a)
	if forID = strings.TrimSpace(forID); forID != "" {
		merged.Set("for", forID)
	}
	return fill(f.cfg.Templates.Label, TokenLabel, f.clean(text), merged)
}

// RenderError fills the error template. Empty messages yield "".
func (f *Form) RenderError(message string, a *attrs.Dict) string {
	if message == "" {
		return ""
	}
	return fill(f.cfg.Templates.Error, TokenError, f.clean(message), f.literal(defaults.KindError, a))
}

// RenderMessage fills the message template. Empty messages yield "".
func (f *Form) RenderMessage(message string, a *attrs.Dict) string {
	if message == "" {
		return ""
	}
	return fill(f.cfg.Templates.Message, TokenMessage, f.clean(message), f.literal(defaults.KindMessage, a))
}

// RenderHint fills the hint template. Empty text yields "".
func (f *Form) RenderHint(text string, a *attrs.Dict) string {
	if text == "" {
		return ""
	}
	return fill(f.cfg.Templates.Hint, TokenHint, f.clean(text), f.literal(defaults.KindHint, a))
}

// RenderErrors renders every error of the active store (when includeStore is
// set) merged with extra, followed by form-level messages. Fields present in
// both keep the store position and take the extra message.
func (f *Form) RenderErrors(extra *errorstore.Store, includeStore bool) string {
	combined := errorstore.New(nil)
	if includeStore {
		combined.MergeStore(f.Errors())
	}
	combined.MergeStore(extra)

	var builder strings.Builder
	for _, message := range combined.Messages() {
		builder.WriteString(f.RenderError(message, nil))
	}
	for _, message := range combined.Form() {
		builder.WriteString(f.RenderError(message, nil))
	}
	return builder.String()
}

// GroupAttributes merges the group defaults with extra, appending the group
// error class when hasError is set.
func (f *Form) GroupAttributes(extra *attrs.Dict, hasError bool) *attrs.Dict {
	merged := attrs.Merge(f.cfg.Attribute(defaults.KindGroup), extra)
	if hasError {
		merged = attrs.AddClass(merged, f.cfg.GroupErrorClass)
	}
	return merged
}

func fill(tpl, token, text string, a *attrs.Dict) string {
	return strings.NewReplacer(
		TokenAttributes, htmltag.Attributes(a),
		token, text,
	).Replace(tpl)
}
