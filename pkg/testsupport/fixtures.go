// Package testsupport holds helpers shared by the package tests: HTML
// comparison that ignores layout whitespace, fixture and golden file access,
// and writer capture for template renderers.
package testsupport

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
)

// NormalizeHTML tokenizes markup and returns one entry per token. Text
// tokens are trimmed and whitespace-only text is dropped, so indentation and
// line breaks between tags do not affect comparisons. Attribute order is
// preserved.
func NormalizeHTML(markup string) []string {
	tokenizer := html.NewTokenizer(strings.NewReader(markup))
	var out []string
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			return out
		}
		token := tokenizer.Token()
		switch tt {
		case html.TextToken:
			text := strings.Join(strings.Fields(token.Data), " ")
			if text == "" {
				continue
			}
			out = append(out, text)
		default:
			out = append(out, token.String())
		}
	}
}

// CompareHTML returns a diff between want and got after normalization, or
// "" when they match.
func CompareHTML(want, got string) string {
	return cmp.Diff(NormalizeHTML(want), NormalizeHTML(got))
}

// MustReadFixture reads a file relative to the test's working directory.
func MustReadFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadFixture(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
