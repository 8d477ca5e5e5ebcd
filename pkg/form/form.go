// Package form renders form controls bound to a data source and composes
// them into label+control+error groups. A Form is a render context scoped to
// one request/response cycle: it owns the active error store and reads its
// defaults layer on every call. It is not safe for concurrent use.
package form

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfields/pkg/attrs"
	"github.com/goliatone/go-formfields/pkg/datasource"
	"github.com/goliatone/go-formfields/pkg/defaults"
	"github.com/goliatone/go-formfields/pkg/errorstore"
	"github.com/goliatone/go-formfields/pkg/field"
	"github.com/goliatone/go-formfields/pkg/htmltag"
	"github.com/goliatone/go-formfields/pkg/rules"
)

// Option configures a Form.
type Option func(*Form)

// WithTags sets the tag generator used for control markup.
func WithTags(tags htmltag.Generator) Option {
	return func(f *Form) {
		if tags != nil {
			f.tags = tags
		}
	}
}

// WithErrors seeds the error store.
func WithErrors(store *errorstore.Store) Option {
	return func(f *Form) {
		if store != nil {
			f.resolverOptions = append(f.resolverOptions, field.WithErrors(store))
		}
	}
}

// WithDefaults replaces the defaults layer. Empty templates fall back to the
// built-ins.
func WithDefaults(cfg defaults.Config) Option {
	return func(f *Form) {
		cfg = cfg.Clone()
		cfg.Templates = cfg.Templates.WithFallbacks()
		f.cfg = cfg
	}
}

// WithGroupTemplate overrides the default group template.
func WithGroupTemplate(tpl string) Option {
	return func(f *Form) { f.cfg.Templates.Group = tpl }
}

// WithErrorTemplate overrides the error fragment template.
func WithErrorTemplate(tpl string) Option {
	return func(f *Form) { f.cfg.Templates.Error = tpl }
}

// WithMessageTemplate overrides the message fragment template.
func WithMessageTemplate(tpl string) Option {
	return func(f *Form) { f.cfg.Templates.Message = tpl }
}

// WithHintTemplate overrides the hint fragment template.
func WithHintTemplate(tpl string) Option {
	return func(f *Form) { f.cfg.Templates.Hint = tpl }
}

// WithLabelTemplate overrides the group label template.
func WithLabelTemplate(tpl string) Option {
	return func(f *Form) { f.cfg.Templates.Label = tpl }
}

// WithErrorClass sets the class appended to controls with an error.
func WithErrorClass(class string) Option {
	return func(f *Form) { f.cfg.ErrorClass = strings.TrimSpace(class) }
}

// WithGroupErrorClass sets the class appended to groups with an error.
func WithGroupErrorClass(class string) Option {
	return func(f *Form) { f.cfg.GroupErrorClass = strings.TrimSpace(class) }
}

// WithUncheckValue sets the checkbox sentinel. An empty value disables the
// hidden sentinel control.
func WithUncheckValue(value string) Option {
	return func(f *Form) { f.cfg.UncheckValue = value }
}

// WithRules attaches validation metadata used for labels and hints.
func WithRules(provider rules.Provider) Option {
	return func(f *Form) {
		f.resolverOptions = append(f.resolverOptions, field.WithRules(provider))
	}
}

// WithTranslator resolves rule label keys for locale.
func WithTranslator(t field.Translator, locale string) Option {
	return func(f *Form) {
		f.resolverOptions = append(f.resolverOptions, field.WithTranslator(t, locale))
	}
}

// WithSubmitted sets the submitted request data read by the repopulation
// helpers (SetValue, SetSelect, SetCheckbox, SetRadio). Any shape accepted
// by datasource.From works, including url.Values.
func WithSubmitted(src any) Option {
	return func(f *Form) {
		f.submitted = datasource.From(src)
	}
}

// WithMarkupPolicy sanitises label, error, message and hint text with policy
// before it is substituted into templates.
func WithMarkupPolicy(policy *bluemonday.Policy) Option {
	return func(f *Form) { f.policy = policy }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Form is the group renderer.
type Form struct {
	resolver        *field.Resolver
	resolverOptions []field.Option
	tags            htmltag.Generator
	cfg             defaults.Config
	submitted       datasource.DataSource
	policy          *bluemonday.Policy
	logger          *zap.Logger
}

// New constructs a Form with Bootstrap defaults and the built-in HTML tag
// generator.
func New(options ...Option) *Form {
	f := &Form{
		tags:      htmltag.New(),
		cfg:       defaults.Bootstrap(),
		submitted: datasource.Empty{},
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	f.resolver = field.New(append(f.resolverOptions, field.WithLogger(f.logger))...)
	f.resolverOptions = nil
	return f
}

// Resolver exposes the field resolver backing the form.
func (f *Form) Resolver() *field.Resolver {
	return f.resolver
}

// Defaults returns a copy of the active defaults layer.
func (f *Form) Defaults() defaults.Config {
	return f.cfg.Clone()
}

// Errors returns the active error store.
func (f *Form) Errors() *errorstore.Store {
	return f.resolver.Errors()
}

// SetErrors replaces the error store contents with errs, or merges them in
// when merge is set (existing fields keep their position, new ones append).
func (f *Form) SetErrors(errs map[string]string, merge bool) {
	store := f.resolver.Errors()
	if merge {
		store.Merge(errs)
		return
	}
	store.Replace(errs)
}

// SetErrorStore swaps the error store wholesale.
func (f *Form) SetErrorStore(store *errorstore.Store) {
	f.resolver.SetErrors(store)
}

// Error returns the stored error for field, or "".
func (f *Form) Error(name string) string {
	message, _ := f.resolver.Errors().Get(name)
	return message
}

// Sanitize runs text through the markup policy. Without a policy text is
// returned unchanged.
func (f *Form) Sanitize(text string) string {
	return f.clean(text)
}

func (f *Form) clean(text string) string {
	if f.policy == nil || text == "" {
		return text
	}
	return f.policy.Sanitize(text)
}

// literal merges the kind defaults with a and strips directives, keeping an
// explicit id.
func (f *Form) literal(kind string, a *attrs.Dict) *attrs.Dict {
	out := attrs.StripDirectives(field.MergeAttributes(f.cfg.Attribute(kind), a))
	if id := strings.TrimSpace(a.String(attrs.KeyID)); id != "" {
		out.Set(attrs.KeyID, id)
	}
	return out
}
