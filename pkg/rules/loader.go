package rules

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Fields map[string]Rule `json:"fields" yaml:"fields"`
}

// LoadFS parses a JSON or YAML rule file from fsys. The document shape is:
//
//	fields:
//	  email:
//	    label: Email address
//	    rules: required|valid_email
func LoadFS(fsys fs.FS, path string) (Set, error) {
	if fsys == nil {
		return nil, fmt.Errorf("rules: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("rules: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a rule document. JSON is attempted first, then YAML.
func Parse(data []byte, source string) (Set, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("rules: file %s is empty", source)
	}

	var doc documentFile
	if isJSON(source) {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("rules: parse %s: %w", source, err)
		}
	} else if err := json.Unmarshal(data, &doc); err != nil {
		if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
			return nil, fmt.Errorf("rules: parse %s: invalid JSON or YAML", source)
		}
	}

	out := make(Set, len(doc.Fields))
	for name, rule := range doc.Fields {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("rules: file %s defines an empty field name", source)
		}
		rule.Label = strings.TrimSpace(rule.Label)
		rule.LabelKey = strings.TrimSpace(rule.LabelKey)
		rule.Rules = strings.TrimSpace(rule.Rules)
		out[name] = rule
	}
	return out, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
