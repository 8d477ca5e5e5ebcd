package defaults

import (
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme token keys with a fixed meaning. Every other "<kind>.<attribute>"
// token becomes a default attribute of that control kind.
const (
	TokenErrorClass      = "state.error"
	TokenGroupErrorClass = "state.groupError"
	TokenUncheckValue    = "checkbox.uncheck"
)

// PartialPrefix namespaces manifest templates consumed by the form renderers.
const PartialPrefix = "formfields."

// FromTheme selects a theme/variant and derives a configuration from its
// manifest; see FromManifest.
func FromTheme(selector theme.ThemeSelector, name, variant string) (Config, error) {
	if selector == nil {
		return Config{}, fmt.Errorf("defaults: theme selector is required")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Config{}, fmt.Errorf("defaults: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return Config{}, fmt.Errorf("defaults: theme %q resolved without a manifest", name)
	}
	return FromManifest(selection.Manifest, selection.Variant), nil
}

// FromManifest layers manifest tokens over Minimal defaults. Variant tokens
// and templates override the base manifest. Templates under the
// "formfields." namespace become view partials.
func FromManifest(manifest *theme.Manifest, variant string) Config {
	cfg := Minimal()
	if manifest == nil {
		return cfg
	}

	tokens, templates := resolveManifest(manifest, variant)

	overlay := make(Set)
	for _, key := range sortedKeys(tokens) {
		value := tokens[key]
		switch key {
		case TokenErrorClass:
			cfg.ErrorClass = strings.TrimSpace(value)
			continue
		case TokenGroupErrorClass:
			cfg.GroupErrorClass = strings.TrimSpace(value)
			continue
		case TokenUncheckValue:
			cfg.UncheckValue = value
			continue
		}
		kind, attribute, ok := strings.Cut(key, ".")
		if !ok || !knownKind(kind) || strings.TrimSpace(attribute) == "" {
			continue
		}
		if overlay[kind] == nil {
			overlay[kind] = Set{}.Get(kind)
		}
		overlay[kind].Set(attribute, value)
	}
	cfg.Attributes = cfg.Attributes.Merge(overlay)

	for id, name := range templates {
		if !strings.HasPrefix(id, PartialPrefix) {
			continue
		}
		if cfg.Partials == nil {
			cfg.Partials = make(map[string]string)
		}
		cfg.Partials[id] = name
	}
	return cfg
}

// RendererConfig builds the go-theme renderer configuration for a selection:
// merged tokens and partials, CSS variables derived from tokens, and an asset
// resolver honouring the variant's asset overrides.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	tokens, templates := resolveManifest(selection.Manifest, selection.Variant)

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.ReplaceAll(key, ".", "-")] = value
	}

	assets := selection.Manifest.Assets
	files := make(map[string]string, len(assets.Files))
	for key, value := range assets.Files {
		files[key] = value
	}
	if v, ok := selection.Manifest.Variants[selection.Variant]; ok {
		if strings.TrimSpace(v.Assets.Prefix) != "" {
			assets.Prefix = v.Assets.Prefix
		}
		for key, value := range v.Assets.Files {
			files[key] = value
		}
	}
	prefix := assets.Prefix

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: templates,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" {
				return file
			}
			return path.Join(prefix, file)
		},
	}
}

func resolveManifest(manifest *theme.Manifest, variant string) (map[string]string, map[string]string) {
	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[strings.TrimSpace(key)] = value
	}
	templates := make(map[string]string, len(manifest.Templates))
	for key, value := range manifest.Templates {
		templates[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if v, ok := manifest.Variants[strings.TrimSpace(variant)]; ok {
		for key, value := range v.Tokens {
			tokens[strings.TrimSpace(key)] = value
		}
		for key, value := range v.Templates {
			templates[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	return tokens, templates
}

func sortedKeys(in map[string]string) []string {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
