// Package field resolves the effective name, value, label, id and error for a
// form field from a data source, a per-call attribute dictionary, the active
// error store and the configured validation metadata. Resolution never fails:
// missing data degrades to documented defaults.
package field

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfields/pkg/attrs"
	"github.com/goliatone/go-formfields/pkg/datasource"
	"github.com/goliatone/go-formfields/pkg/errorstore"
	"github.com/goliatone/go-formfields/pkg/rules"
)

// IDSuffix is appended to the field name when no explicit id is supplied.
const IDSuffix = "_input"

// Descriptor is the per-call resolution result for one field.
type Descriptor struct {
	Name     string
	Value    string
	Label    string
	Error    string
	HasError bool
	ID       string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithErrors attaches the error store consulted by Error.
func WithErrors(store *errorstore.Store) Option {
	return func(r *Resolver) {
		if store != nil {
			r.errors = store
		}
	}
}

// WithRules attaches resolver-level validation metadata, consulted after the
// data source's own rules when resolving labels.
func WithRules(provider rules.Provider) Option {
	return func(r *Resolver) {
		r.rules = provider
	}
}

// WithTranslator resolves rule label keys for locale.
func WithTranslator(t Translator, locale string) Option {
	return func(r *Resolver) {
		r.translator = t
		r.locale = strings.TrimSpace(locale)
	}
}

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver applies the field resolution precedence rules.
type Resolver struct {
	errors     *errorstore.Store
	rules      rules.Provider
	translator Translator
	locale     string
	logger     *zap.Logger
}

// New constructs a Resolver.
func New(options ...Option) *Resolver {
	r := &Resolver{
		errors: errorstore.New(nil),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Errors returns the error store consulted by Error.
func (r *Resolver) Errors() *errorstore.Store {
	return r.errors
}

// SetErrors swaps the error store.
func (r *Resolver) SetErrors(store *errorstore.Store) {
	if store == nil {
		store = errorstore.New(nil)
	}
	r.errors = store
}

// Name returns the wire name: a["name"] when set, else field.
func (r *Resolver) Name(a *attrs.Dict, field string) string {
	if name := strings.TrimSpace(a.String(attrs.KeyName)); name != "" {
		return name
	}
	return field
}

// Value resolves the control value: an explicit a["value"] always wins, then
// the data source entry for field, then def. The data source is keyed by the
// original field name, not the wire name, so renaming a control never
// changes which datum it binds to.
func (r *Resolver) Value(src datasource.DataSource, field string, a *attrs.Dict, def string) string {
	if value, ok := a.Get(attrs.KeyValue); ok {
		return Stringify(value)
	}
	if value, ok := r.lookup(src, field); ok {
		return Stringify(value)
	}
	return def
}

// RawValue returns the unstringified current value with the same precedence
// as Value. The boolean reports whether a value was found.
func (r *Resolver) RawValue(src datasource.DataSource, field string, a *attrs.Dict) (any, bool) {
	if value, ok := a.Get(attrs.KeyValue); ok {
		return value, true
	}
	return r.lookup(src, field)
}

// Values returns the current value as a list of strings: collection members
// for multi-value fields, a single entry for scalars, nil when absent.
func (r *Resolver) Values(src datasource.DataSource, field string, a *attrs.Dict) []string {
	value, ok := r.RawValue(src, field, a)
	if !ok {
		return nil
	}
	return Members(value)
}

// Label resolves the display label: a["label"], then the data source's rule
// store, then the resolver-level rules, then the model's label lookup, and
// finally the raw field name.
func (r *Resolver) Label(src datasource.DataSource, field string, a *attrs.Dict) string {
	if value, ok := a.Get(attrs.KeyLabel); ok {
		if label := attrs.ToString(value); label != "" {
			return label
		}
	}

	if ruleSource, ok := src.(datasource.RuleSource); ok {
		if label, ok := r.ruleLabel(ruleSource.ValidationRules(), field); ok {
			return label
		}
	}
	if label, ok := r.ruleLabel(r.rules, field); ok {
		return label
	}
	if labeler, ok := src.(datasource.Labeler); ok {
		if label, ok := labeler.FieldLabel(field); ok && strings.TrimSpace(label) != "" {
			return label
		}
	}

	r.logger.Debug("field label fallback", zap.String("field", field))
	return field
}

// Hint returns the help text configured for field, consulting the data
// source's rules before the resolver-level rules.
func (r *Resolver) Hint(src datasource.DataSource, field string) (string, bool) {
	providers := []rules.Provider{r.rules}
	if ruleSource, ok := src.(datasource.RuleSource); ok {
		providers = []rules.Provider{ruleSource.ValidationRules(), r.rules}
	}
	for _, provider := range providers {
		if provider == nil {
			continue
		}
		if rule, ok := provider.Rule(field); ok && strings.TrimSpace(rule.Hint) != "" {
			return strings.TrimSpace(rule.Hint), true
		}
	}
	return "", false
}

// Error resolves the error message: a["error"], then the store entry for the
// resolved wire name. The boolean is false when there is no error; the
// message is then "".
func (r *Resolver) Error(field string, a *attrs.Dict) (string, bool) {
	if value, ok := a.Get(attrs.KeyError); ok {
		message := attrs.ToString(value)
		return message, message != ""
	}
	message, ok := r.errors.Get(r.Name(a, field))
	if !ok || message == "" {
		return "", false
	}
	return message, true
}

// ID resolves the control id: a["id"] when set, else field + "_input".
func (r *Resolver) ID(field string, a *attrs.Dict) string {
	if id := strings.TrimSpace(a.String(attrs.KeyID)); id != "" {
		return id
	}
	return field + IDSuffix
}

// Resolve computes the full descriptor for field.
func (r *Resolver) Resolve(src datasource.DataSource, field string, a *attrs.Dict) Descriptor {
	message, hasError := r.Error(field, a)
	return Descriptor{
		Name:     r.Name(a, field),
		Value:    r.Value(src, field, a, ""),
		Label:    r.Label(src, field, a),
		Error:    message,
		HasError: hasError,
		ID:       r.ID(field, a),
	}
}

// MergeAttributes layers overrides on top of defaults; see attrs.Merge.
func MergeAttributes(defaults, overrides *attrs.Dict) *attrs.Dict {
	return attrs.Merge(defaults, overrides)
}

// AddErrorClass appends errorClass to the class attribute when hasError is
// set and a class name is configured.
func AddErrorClass(a *attrs.Dict, hasError bool, errorClass string) *attrs.Dict {
	if !hasError || strings.TrimSpace(errorClass) == "" {
		return a.Clone()
	}
	return attrs.AddClass(a, errorClass)
}

func (r *Resolver) lookup(src datasource.DataSource, field string) (any, bool) {
	if src == nil {
		r.logger.Debug("field value fallback: no data source", zap.String("field", field))
		return nil, false
	}
	value, ok := src.Field(field)
	if !ok || IsNil(value) {
		r.logger.Debug("field value fallback: missing from data source", zap.String("field", field))
		return nil, false
	}
	return value, true
}

func (r *Resolver) ruleLabel(provider rules.Provider, field string) (string, bool) {
	if provider == nil {
		return "", false
	}
	rule, ok := provider.Rule(field)
	if !ok {
		return "", false
	}
	fallback := strings.TrimSpace(rule.Label)
	if key := strings.TrimSpace(rule.LabelKey); key != "" {
		if label := translate(r.locale, key, fallback, r.translator); label != "" {
			return label, true
		}
	}
	return fallback, fallback != ""
}
