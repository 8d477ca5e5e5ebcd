package rules

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	labelExtensionKey    = "x-label"
	labelKeyExtensionKey = "x-label-key"
)

// FromOpenAPI builds a rule set from the properties of a component schema in
// an OpenAPI 3 document. Property titles (or the x-label extension) become
// labels, descriptions become hints, and supported keywords are rendered into
// the pipe-delimited rule string.
func FromOpenAPI(ctx context.Context, raw []byte, schemaName string) (Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("rules: openapi document payload is empty")
	}
	schemaName = strings.TrimSpace(schemaName)
	if schemaName == "" {
		return nil, errors.New("rules: schema name is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("rules: load openapi document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, fmt.Errorf("rules: schema %q not found", schemaName)
	}

	ref, ok := doc.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("rules: schema %q not found", schemaName)
	}
	return fromSchema(ref.Value), nil
}

func fromSchema(schema *openapi3.Schema) Set {
	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	out := make(Set, len(schema.Properties))
	for name, property := range schema.Properties {
		if property == nil || property.Value == nil {
			continue
		}
		_, isRequired := required[name]
		out[name] = ruleFromProperty(property.Value, isRequired)
	}
	return out
}

func ruleFromProperty(prop *openapi3.Schema, required bool) Rule {
	rule := Rule{
		Label:    strings.TrimSpace(prop.Title),
		Hint:     strings.TrimSpace(prop.Description),
		Required: required,
	}
	if label := extensionString(prop.Extensions, labelExtensionKey); label != "" {
		rule.Label = label
	}
	rule.LabelKey = extensionString(prop.Extensions, labelKeyExtensionKey)

	var parts []string
	if required {
		parts = append(parts, "required")
	}
	if prop.MinLength != 0 {
		parts = append(parts, "min_length["+strconv.FormatUint(prop.MinLength, 10)+"]")
	}
	if prop.MaxLength != nil {
		parts = append(parts, "max_length["+strconv.FormatUint(*prop.MaxLength, 10)+"]")
	}
	if prop.Pattern != "" {
		parts = append(parts, "regex_match["+prop.Pattern+"]")
	}
	switch strings.ToLower(prop.Format) {
	case "email":
		parts = append(parts, "valid_email")
	case "uri", "url":
		parts = append(parts, "valid_url")
	case "date":
		parts = append(parts, "valid_date")
	}
	rule.Rules = strings.Join(parts, "|")
	return rule
}

func extensionString(extensions map[string]any, key string) string {
	if len(extensions) == 0 {
		return ""
	}
	value, ok := extensions[key]
	if !ok || value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return strings.TrimSpace(str)
	}
	return strings.TrimSpace(fmt.Sprint(value))
}
