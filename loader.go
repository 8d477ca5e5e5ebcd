package formfields

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfields/pkg/defaults"
	"github.com/goliatone/go-formfields/pkg/rules"
)

// LoadDefaults reads a defaults document (JSON or YAML) from fsys.
func LoadDefaults(fsys fs.FS, path string) (defaults.Config, error) {
	return defaults.LoadFS(fsys, path)
}

// LoadRules reads a rules document (JSON or YAML) from fsys.
func LoadRules(fsys fs.FS, path string) (rules.Set, error) {
	return rules.LoadFS(fsys, path)
}

// ParseRecord decodes a JSON or YAML object into a map usable as a data
// source. JSON is attempted first.
func ParseRecord(data []byte) (map[string]any, error) {
	if strings.TrimSpace(string(data)) == "" {
		return map[string]any{}, nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err == nil {
		return out, nil
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("formfields: parse record: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// LoadRecord reads and parses a record file from fsys.
func LoadRecord(fsys fs.FS, path string) (map[string]any, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("formfields: read record %s: %w", path, err)
	}
	return ParseRecord(data)
}
