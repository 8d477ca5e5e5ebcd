// Package rules models the validation metadata attached to a data source: a
// mapping from field name to a rule descriptor that optionally carries a
// human-readable label. Sets can be declared in code, loaded from JSON/YAML
// files, or derived from OpenAPI component schemas.
package rules

import "strings"

// Rule describes the validation metadata for a single field.
type Rule struct {
	// Label is the human-readable field label.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	// LabelKey is a translation key resolved through a Translator before
	// falling back to Label.
	LabelKey string `json:"labelKey,omitempty" yaml:"labelKey,omitempty"`
	// Rules is a pipe-delimited rule string (e.g. "required|max_length[64]").
	Rules string `json:"rules,omitempty" yaml:"rules,omitempty"`
	// Hint is optional assistive copy for the field.
	Hint string `json:"hint,omitempty" yaml:"hint,omitempty"`
	// Required mirrors the presence of a "required" rule.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`
}

// Provider resolves rule descriptors by field name.
type Provider interface {
	Rule(field string) (Rule, bool)
}

// Set is the in-memory Provider implementation.
type Set map[string]Rule

var _ Provider = Set(nil)

// Rule returns the descriptor registered for field.
func (s Set) Rule(field string) (Rule, bool) {
	if len(s) == 0 {
		return Rule{}, false
	}
	rule, ok := s[strings.TrimSpace(field)]
	return rule, ok
}

// Label returns the configured label for field, if any.
func (s Set) Label(field string) (string, bool) {
	rule, ok := s.Rule(field)
	if !ok {
		return "", false
	}
	label := strings.TrimSpace(rule.Label)
	return label, label != ""
}

// Merge returns a new set with entries from other layered on top of s.
func (s Set) Merge(other Set) Set {
	out := make(Set, len(s)+len(other))
	for name, rule := range s {
		out[name] = rule
	}
	for name, rule := range other {
		out[name] = rule
	}
	return out
}

// Names lists the rule identifiers in a rule string, without parameters.
func (r Rule) Names() []string {
	raw := strings.TrimSpace(r.Rules)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx := strings.IndexByte(part, '['); idx >= 0 {
			part = part[:idx]
		}
		out = append(out, part)
	}
	return out
}

// IsRequired reports whether the field is required either explicitly or via
// a "required" entry in the rule string.
func (r Rule) IsRequired() bool {
	if r.Required {
		return true
	}
	for _, name := range r.Names() {
		if name == "required" {
			return true
		}
	}
	return false
}
