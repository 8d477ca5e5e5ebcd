package defaults

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfields/pkg/attrs"
)

type documentFile struct {
	Base            string                    `json:"base" yaml:"base"`
	ErrorClass      *string                   `json:"errorClass" yaml:"errorClass"`
	GroupErrorClass *string                   `json:"groupErrorClass" yaml:"groupErrorClass"`
	UncheckValue    *string                   `json:"uncheckValue" yaml:"uncheckValue"`
	Templates       Templates                 `json:"templates" yaml:"templates"`
	Attributes      map[string]map[string]any `json:"attributes" yaml:"attributes"`
	Partials        map[string]string         `json:"partials" yaml:"partials"`
}

// LoadFS reads a JSON or YAML defaults file from fsys. Values in the file are
// layered on top of a base configuration selected by the optional "base" key
// ("bootstrap", the default, or "minimal"); attribute classes accumulate. A
// sample document:
//
//	base: minimal
//	errorClass: is-invalid
//	uncheckValue: "0"
//	templates:
//	  group: <div{attributes}>{label}{input}{error}</div>
//	attributes:
//	  input:
//	    class: form-control
func LoadFS(fsys fs.FS, path string) (Config, error) {
	if fsys == nil {
		return Config{}, fmt.Errorf("defaults: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("defaults: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a defaults document. JSON is attempted first, then YAML.
func Parse(data []byte, source string) (Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("defaults: file %s is empty", source)
	}

	var doc documentFile
	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return Config{}, fmt.Errorf("defaults: parse %s: %w", source, err)
		}
	} else if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
			return Config{}, fmt.Errorf("defaults: parse %s: invalid JSON or YAML", source)
		}
	}

	return doc.apply(source)
}

func (doc documentFile) apply(source string) (Config, error) {
	var cfg Config
	switch base := strings.ToLower(strings.TrimSpace(doc.Base)); base {
	case "", "bootstrap":
		cfg = Bootstrap()
	case "minimal":
		cfg = Minimal()
	default:
		return Config{}, fmt.Errorf("defaults: file %s: unknown base %q", source, doc.Base)
	}

	if doc.ErrorClass != nil {
		cfg.ErrorClass = strings.TrimSpace(*doc.ErrorClass)
	}
	if doc.GroupErrorClass != nil {
		cfg.GroupErrorClass = strings.TrimSpace(*doc.GroupErrorClass)
	}
	if doc.UncheckValue != nil {
		cfg.UncheckValue = *doc.UncheckValue
	}

	templates := doc.Templates
	if templates.Group != "" {
		cfg.Templates.Group = templates.Group
	}
	if templates.Error != "" {
		cfg.Templates.Error = templates.Error
	}
	if templates.Message != "" {
		cfg.Templates.Message = templates.Message
	}
	if templates.Hint != "" {
		cfg.Templates.Hint = templates.Hint
	}
	if templates.Label != "" {
		cfg.Templates.Label = templates.Label
	}

	overlay := make(Set, len(doc.Attributes))
	for kind, values := range doc.Attributes {
		kind = strings.TrimSpace(kind)
		if !knownKind(kind) {
			return Config{}, fmt.Errorf("defaults: file %s: unknown control kind %q", source, kind)
		}
		overlay[kind] = attrs.FromMap(values)
	}
	cfg.Attributes = cfg.Attributes.Merge(overlay)

	if len(doc.Partials) > 0 {
		if cfg.Partials == nil {
			cfg.Partials = make(map[string]string, len(doc.Partials))
		}
		for id, name := range doc.Partials {
			cfg.Partials[strings.TrimSpace(id)] = strings.TrimSpace(name)
		}
	}
	return cfg, nil
}

func knownKind(kind string) bool {
	for _, candidate := range Kinds {
		if candidate == kind {
			return true
		}
	}
	return false
}
