package errorstore

import (
	"sort"
	"strconv"
	"strings"
)

// FromPayload builds a store from a validation payload keyed by field path.
// Paths may use JSON pointer (`/body/name`), JSONPath (`$.owner.email`),
// bracket (`tags[0]`) or dotted notation and may be wrapped in request
// envelopes (`body`, `payload`, `data`, ...). Each path is matched against
// the known field names, longest match first; unmatched paths and
// form-level keys (`non_field_errors`, `__all__`, ...) become form-level
// messages so nothing is lost. When known is empty every non form-level path
// is kept as-is after normalisation.
//
// Only the first non-blank message per field is kept, mirroring the single
// message per field rendered by the group layout.
func FromPayload(payload map[string][]string, known []string) *Store {
	store := New(nil)
	if len(payload) == 0 {
		return store
	}

	fieldPaths := make(map[string]struct{}, len(known))
	for _, name := range known {
		if name = strings.TrimSpace(name); name != "" {
			fieldPaths[name] = struct{}{}
		}
	}

	paths := make([]string, 0, len(payload))
	for path := range payload {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, rawPath := range paths {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}

		mapped, formLevel := mapErrorPath(rawPath, fieldPaths)
		if formLevel || mapped == "" {
			store.AddForm(messages...)
			continue
		}
		if !store.Has(mapped) {
			store.Add(mapped, messages[0])
		}
	}
	return store
}

func mapErrorPath(raw string, fieldPaths map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}

	segments := parsePathSegments(trimmed)
	if len(segments) == 0 {
		return "", true
	}

	if len(fieldPaths) == 0 {
		return strings.Join(dropWrapperSegments(segments), "."), false
	}

	if _, ok := fieldPaths[trimmed]; ok {
		return trimmed, false
	}

	best := ""
	for _, variant := range buildSegmentVariants(segments) {
		if path := longestMatchingPath(variant, fieldPaths); path != "" {
			if len(strings.Split(path, ".")) > len(strings.Split(best, ".")) || best == "" {
				best = path
			}
		}
	}

	if best != "" {
		return best, false
	}
	return "", true
}

func parsePathSegments(path string) []string {
	if path == "" {
		return nil
	}

	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$/")
	clean = strings.TrimPrefix(clean, "$.")
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimPrefix(clean, "#")
		clean = strings.TrimPrefix(clean, "/")
		clean = strings.TrimPrefix(clean, ".")
		clean = strings.TrimPrefix(clean, "$")
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = replacer.Replace(clean)
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func buildSegmentVariants(segments []string) [][]string {
	var variants [][]string
	seen := make(map[string]struct{}, 4)

	appendVariant := func(candidate []string) {
		if len(candidate) == 0 {
			return
		}
		key := strings.Join(candidate, ".")
		if _, exists := seen[key]; exists {
			return
		}
		seen[key] = struct{}{}
		variants = append(variants, append([]string(nil), candidate...))
	}

	appendVariant(segments)

	noWrappers := dropWrapperSegments(segments)
	appendVariant(noWrappers)
	appendVariant(stripNumericSegments(segments))
	appendVariant(stripNumericSegments(noWrappers))

	return variants
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 1 {
		if _, ok := wrapperSegments[strings.ToLower(out[0])]; ok {
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func longestMatchingPath(segments []string, fieldPaths map[string]struct{}) string {
	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := fieldPaths[candidate]; ok {
			return candidate
		}
	}
	return ""
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
