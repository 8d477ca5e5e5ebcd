// Package view renders field groups through a named view template instead of
// the placeholder templates used by pkg/form. The control markup, error and
// hint fragments still come from the form; the template only arranges them.
package view

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	gotemplatepkg "github.com/goliatone/go-template"
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfields/pkg/attrs"
	"github.com/goliatone/go-formfields/pkg/datasource"
	"github.com/goliatone/go-formfields/pkg/defaults"
	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/htmltag"
	rendertemplate "github.com/goliatone/go-formfields/pkg/render/template"
	gotemplate "github.com/goliatone/go-formfields/pkg/render/template/gotemplate"
)

var _ rendertemplate.TemplateRenderer = (*gotemplatepkg.Engine)(nil)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const (
	// DefaultTemplate is the embedded group layout.
	DefaultTemplate = "templates/input_container"
	// PartialGroup is the theme partial that overrides DefaultTemplate.
	PartialGroup = defaults.PartialPrefix + "group"
	// DefaultLabelClass applies when the label attributes carry no class.
	DefaultLabelClass = "control-label"
)

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	templateName     string
	goTemplate       []gotemplatepkg.Option
	useGoTemplate    bool
	theme            *theme.RendererConfig
	logger           *zap.Logger
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a template facility, bypassing the built-in
// pongo2 engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithGoTemplate renders through a go-template engine built on the template
// bundle instead of the built-in engine. The options apply after the bundle,
// extension and filters are configured.
func WithGoTemplate(options ...gotemplatepkg.Option) Option {
	return func(cfg *config) {
		cfg.useGoTemplate = true
		cfg.goTemplate = append(cfg.goTemplate, options...)
	}
}

// WithTemplateName selects the group template. It takes precedence over
// theme partials.
func WithTemplateName(name string) Option {
	return func(cfg *config) {
		cfg.templateName = strings.TrimSpace(name)
	}
}

// WithTheme reads the group template from the theme partial
// "formfields.group".
func WithTheme(rc *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.theme = rc
	}
}

// WithLogger sets the logger used for template failures.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer expands group templates for a form.
type Renderer struct {
	form      *form.Form
	templates rendertemplate.TemplateRenderer
	template  string
	logger    *zap.Logger
}

// New constructs a view renderer for f.
func New(f *form.Form, options ...Option) (*Renderer, error) {
	if f == nil {
		return nil, fmt.Errorf("view: form is required")
	}
	cfg := config{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer, err := newTemplateRenderer(cfg)
	if err != nil {
		return nil, fmt.Errorf("view: configure template renderer: %w", err)
	}

	return &Renderer{
		form:      f,
		templates: renderer,
		template:  resolveTemplate(cfg, f.Defaults()),
		logger:    cfg.logger,
	}, nil
}

func newTemplateRenderer(cfg config) (rendertemplate.TemplateRenderer, error) {
	switch {
	case cfg.templateRenderer != nil:
		return cfg.templateRenderer, nil
	case cfg.useGoTemplate:
		options := append([]gotemplatepkg.Option{
			gotemplatepkg.WithFS(cfg.templateFS),
			gotemplatepkg.WithExtension(gotemplate.DefaultExtension),
			gotemplatepkg.WithTemplateFunc(gotemplate.Filters()),
		}, cfg.goTemplate...)
		return gotemplatepkg.NewRenderer(options...)
	default:
		return gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(gotemplate.DefaultExtension),
		)
	}
}

// Template reports the group template name in use.
func (r *Renderer) Template() string {
	return r.template
}

func resolveTemplate(cfg config, d defaults.Config) string {
	if cfg.templateName != "" {
		return cfg.templateName
	}
	if cfg.theme != nil {
		if name := strings.TrimSpace(cfg.theme.Partials[PartialGroup]); name != "" {
			return name
		}
	}
	if name, ok := d.Partial(PartialGroup); ok {
		return name
	}
	return DefaultTemplate
}

// RenderGroup expands the group template around control. Options follow
// form.RenderGroup, except "template" which names a view template instead of
// a placeholder string. The template context carries label,
// label_attributes, input, error, hint, name, id, has_error and attributes.
func (r *Renderer) RenderGroup(src any, name, control string, options *attrs.Dict) (string, error) {
	tpl := r.template
	if options.Has(attrs.KeyTemplate) {
		tpl = strings.TrimSpace(options.String(attrs.KeyTemplate))
	}

	ctx := r.context(datasource.From(src), name, control, options)
	out, err := r.templates.RenderTemplate(tpl, ctx)
	if err != nil {
		r.logger.Warn("view: render template failed",
			zap.String("template", tpl),
			zap.String("field", name),
			zap.Error(err),
		)
		return "", fmt.Errorf("view: render template %q: %w", tpl, err)
	}
	return out, nil
}

func (r *Renderer) context(ds datasource.DataSource, name, control string, options *attrs.Dict) map[string]any {
	resolver := r.form.Resolver()
	id := resolver.ID(name, options)

	if prefix, ok := options.Get(attrs.KeyPrefix); ok {
		control = attrs.ToString(prefix) + control
	}
	if suffix, ok := options.Get(attrs.KeySuffix); ok {
		control += attrs.ToString(suffix)
	}

	label := ""
	if raw, ok := options.Get(attrs.KeyLabel); !ok || raw != false {
		label = r.form.Sanitize(resolver.Label(ds, name, options))
	}

	labelAttrs := options.Dict(attrs.KeyLabelAttributes)
	if strings.TrimSpace(labelAttrs.String("class")) == "" {
		labelAttrs.Set("class", DefaultLabelClass)
	}
	if !labelAttrs.Has("for") {
		labelAttrs.Set("for", id)
	}

	message, hasError := resolver.Error(name, options)

	hint := ""
	if raw, ok := options.Get(attrs.KeyHint); ok && attrs.Truthy(raw) {
		text := attrs.ToString(raw)
		if raw == true {
			text, _ = resolver.Hint(ds, name)
		}
		hint = r.form.RenderHint(text, options.Dict(attrs.KeyHintAttributes))
	}

	return map[string]any{
		"label":            label,
		"label_attributes": labelAttrs,
		"input":            control,
		"error":            r.form.RenderError(message, options.Dict(attrs.KeyErrorAttributes)),
		"hint":             hint,
		"name":             resolver.Name(options, name),
		"id":               id,
		"has_error":        hasError,
		"attributes":       r.form.GroupAttributes(options.Dict(attrs.KeyAttributes), hasError),
	}
}

// InputGroup renders an input inside the group template.
func (r *Renderer) InputGroup(src any, name string, a, group *attrs.Dict) (string, error) {
	return r.group(src, name, r.form.Input(src, name, r.withID(name, a)), a, group)
}

// TextareaGroup renders a textarea inside the group template.
func (r *Renderer) TextareaGroup(src any, name string, a, group *attrs.Dict) (string, error) {
	return r.group(src, name, r.form.Textarea(src, name, r.withID(name, a)), a, group)
}

// DropdownGroup renders a select inside the group template.
func (r *Renderer) DropdownGroup(src any, name string, options []htmltag.Option, a, group *attrs.Dict) (string, error) {
	return r.group(src, name, r.form.Dropdown(src, name, options, r.withID(name, a)), a, group)
}

// CheckboxGroup renders a checkbox (with its sentinel) inside the group
// template.
func (r *Renderer) CheckboxGroup(src any, name, value string, a, group *attrs.Dict) (string, error) {
	return r.group(src, name, r.form.Checkbox(src, name, value, r.withID(name, a)), a, group)
}

func (r *Renderer) withID(name string, a *attrs.Dict) *attrs.Dict {
	out := a.Clone()
	if !out.Has(attrs.KeyID) {
		out.Set(attrs.KeyID, r.form.Resolver().ID(name, a))
	}
	return out
}

// group carries the resolver directives given on the control over to the
// group options so label and error resolve the same way.
func (r *Renderer) group(src any, name, control string, a, group *attrs.Dict) (string, error) {
	options := group.Clone()
	for _, key := range []string{attrs.KeyName, attrs.KeyLabel, attrs.KeyError, attrs.KeyID} {
		if value, ok := a.Get(key); ok && !options.Has(key) {
			options.Set(key, value)
		}
	}
	return r.RenderGroup(src, name, control, options)
}
