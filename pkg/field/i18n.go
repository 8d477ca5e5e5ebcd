package field

import "strings"

// Translator resolves a translation key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate calls fn.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// translate returns the translation for key, falling back to fallback when
// the translator is missing or fails.
func translate(locale, key, fallback string, t Translator) string {
	key = strings.TrimSpace(key)
	if key == "" || t == nil {
		return fallback
	}
	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return fallback
}
