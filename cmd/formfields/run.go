package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	formfields "github.com/goliatone/go-formfields"
	"github.com/goliatone/go-formfields/internal/prompt"
	"github.com/goliatone/go-formfields/pkg/attrs"
	"github.com/goliatone/go-formfields/pkg/defaults"
	"github.com/goliatone/go-formfields/pkg/errorstore"
	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/htmltag"
	"github.com/goliatone/go-formfields/pkg/renderers/view"
	"github.com/goliatone/go-formfields/pkg/rules"
)

type config struct {
	data        string
	field       string
	control     string
	errors      string
	defaults    string
	rules       string
	label       string
	value       string
	template    string
	choices     string
	view        bool
	verbose     bool
	interactive bool
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("formfields", flag.ContinueOnError)
	fs.StringVar(&cfg.data, "data", "", "JSON or YAML record file bound to the field")
	fs.StringVar(&cfg.field, "field", "", "field name to render")
	fs.StringVar(&cfg.control, "control", formfields.ControlInput, "control kind ("+strings.Join(formfields.Controls(), ", ")+")")
	fs.StringVar(&cfg.errors, "errors", "", "JSON or YAML validation payload (field path to message or messages)")
	fs.StringVar(&cfg.defaults, "defaults", "", "JSON or YAML defaults file")
	fs.StringVar(&cfg.rules, "rules", "", "JSON or YAML rules file")
	fs.StringVar(&cfg.label, "label", "", "label override")
	fs.StringVar(&cfg.value, "value", "", "value override")
	fs.StringVar(&cfg.template, "template", "", "group template (a view template name with -view)")
	fs.StringVar(&cfg.choices, "choices", "", "comma separated value:label pairs for choice controls")
	fs.BoolVar(&cfg.view, "view", false, "render the group through the view template")
	fs.BoolVar(&cfg.verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&cfg.interactive, "interactive", false, "prompt for field, control and overrides")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config, out io.Writer, logger *zap.Logger, driver prompt.Driver) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	record := map[string]any{}
	if cfg.data != "" {
		data, err := os.ReadFile(cfg.data)
		if err != nil {
			return fmt.Errorf("read data: %w", err)
		}
		if record, err = formfields.ParseRecord(data); err != nil {
			return err
		}
	}

	options := []form.Option{form.WithLogger(logger)}
	if cfg.defaults != "" {
		data, err := os.ReadFile(cfg.defaults)
		if err != nil {
			return fmt.Errorf("read defaults: %w", err)
		}
		d, err := defaults.Parse(data, cfg.defaults)
		if err != nil {
			return err
		}
		options = append(options, form.WithDefaults(d))
	}
	var set rules.Set
	if cfg.rules != "" {
		data, err := os.ReadFile(cfg.rules)
		if err != nil {
			return fmt.Errorf("read rules: %w", err)
		}
		if set, err = rules.Parse(data, cfg.rules); err != nil {
			return err
		}
		options = append(options, form.WithRules(set))
	}

	req := prompt.Request{Field: cfg.field, Control: cfg.control, Label: cfg.label, Value: cfg.value}
	if cfg.interactive {
		if driver == nil {
			driver = prompt.NewSurveyDriver(out)
		}
		var err error
		if req, err = prompt.Collect(ctx, driver, knownFields(record, set), formfields.Controls(), req); err != nil {
			return err
		}
	}
	if strings.TrimSpace(req.Field) == "" {
		return errors.New("a field name is required (-field)")
	}
	if cfg.errors != "" {
		store, err := loadErrors(cfg.errors, knownFields(record, set, req.Field))
		if err != nil {
			return err
		}
		options = append(options, form.WithErrors(store))
	}

	f := formfields.New(options...)
	if req.Error != "" {
		f.SetErrors(map[string]string{req.Field: req.Error}, true)
	}

	a := attrs.New()
	if req.Label != "" {
		a.Set(attrs.KeyLabel, req.Label)
	}
	if req.Value != "" {
		a.Set(attrs.KeyValue, req.Value)
	}
	group := attrs.New()
	if cfg.template != "" {
		group.Set(attrs.KeyTemplate, cfg.template)
	}

	logger.Debug("rendering field",
		zap.String("field", req.Field),
		zap.String("control", req.Control),
		zap.Bool("view", cfg.view),
	)

	markup, err := render(f, cfg, record, req, a, group)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, markup)
	return err
}

func render(f *form.Form, cfg config, record map[string]any, req prompt.Request, a, group *attrs.Dict) (string, error) {
	if !cfg.view {
		return formfields.RenderGroup(f, record, req.Field, req.Control, parseChoices(cfg.choices), a, group)
	}

	r, err := view.New(f)
	if err != nil {
		return "", err
	}
	switch req.Control {
	case formfields.ControlInput, "":
		return r.InputGroup(record, req.Field, a, group)
	case formfields.ControlTextarea:
		return r.TextareaGroup(record, req.Field, a, group)
	case formfields.ControlDropdown:
		return r.DropdownGroup(record, req.Field, parseChoices(cfg.choices), a, group)
	case formfields.ControlCheckbox:
		value := "1"
		if choices := parseChoices(cfg.choices); len(choices) > 0 {
			value = choices[0].Value
		}
		return r.CheckboxGroup(record, req.Field, value, a, group)
	default:
		return "", fmt.Errorf("control %q is not supported with -view", req.Control)
	}
}

// loadErrors maps a validation payload onto the record fields.
func loadErrors(path string, fields []string) (*errorstore.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read errors: %w", err)
	}
	raw, err := formfields.ParseRecord(data)
	if err != nil {
		return nil, err
	}
	payload := make(map[string][]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case []any:
			for _, item := range v {
				payload[key] = append(payload[key], fmt.Sprint(item))
			}
		default:
			payload[key] = []string{fmt.Sprint(v)}
		}
	}
	return errorstore.FromPayload(payload, fields), nil
}

func parseChoices(raw string) []htmltag.Option {
	var pairs []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		value, label, ok := strings.Cut(item, ":")
		if !ok {
			label = value
		}
		pairs = append(pairs, strings.TrimSpace(value), strings.TrimSpace(label))
	}
	return htmltag.Options(pairs...)
}

// knownFields lists the record keys, the rule names and extra, sorted and
// without duplicates.
func knownFields(record map[string]any, set rules.Set, extra ...string) []string {
	seen := make(map[string]struct{}, len(record)+len(set)+len(extra))
	for key := range record {
		seen[key] = struct{}{}
	}
	for key := range set {
		seen[key] = struct{}{}
	}
	for _, key := range extra {
		if key = strings.TrimSpace(key); key != "" {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
