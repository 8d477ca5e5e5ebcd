package attrs_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/attrs"
)

func TestMergeConcatenatesClass(t *testing.T) {
	merged := attrs.Merge(attrs.Of("class", "a"), attrs.Of("class", "b"))

	if got := merged.String("class"); got != "a b" {
		t.Fatalf("expected concatenated class, got %q", got)
	}
	if merged.Len() != 1 {
		t.Fatalf("expected single key, got %v", merged.Keys())
	}
}

func TestMergeOverrideWinsForOtherKeys(t *testing.T) {
	defaults := attrs.Of("class", "form-control", "placeholder", "Default", "maxlength", 10)
	overrides := attrs.Of("placeholder", "Custom", "data-role", "x")

	merged := attrs.Merge(defaults, overrides)

	want := map[string]any{
		"class":       "form-control",
		"placeholder": "Custom",
		"maxlength":   10,
		"data-role":   "x",
	}
	if diff := cmp.Diff(want, merged.Map()); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"class", "placeholder", "maxlength", "data-role"}, merged.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	if defaults.String("placeholder") != "Default" {
		t.Fatalf("defaults mutated")
	}
}

func TestMergeSkipsEmptyClassHalves(t *testing.T) {
	cases := []struct {
		name      string
		defaults  *attrs.Dict
		overrides *attrs.Dict
		want      string
	}{
		{name: "no default", defaults: attrs.New(), overrides: attrs.Of("class", "b"), want: "b"},
		{name: "empty override", defaults: attrs.Of("class", "a"), overrides: attrs.Of("class", ""), want: "a"},
		{name: "nil defaults", defaults: nil, overrides: attrs.Of("class", "b"), want: "b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := attrs.Merge(tc.defaults, tc.overrides).String("class"); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestAddClass(t *testing.T) {
	base := attrs.Of("class", "form-control")
	got := attrs.AddClass(base, "is-invalid")
	if got.String("class") != "form-control is-invalid" {
		t.Fatalf("unexpected class %q", got.String("class"))
	}
	if base.String("class") != "form-control" {
		t.Fatalf("input dictionary mutated")
	}
	if attrs.AddClass(base, " ").String("class") != "form-control" {
		t.Fatalf("blank class should be ignored")
	}
}

func TestStripDirectives(t *testing.T) {
	d := attrs.Of(
		"name", "alias",
		"value", "v",
		"label", "Label",
		"class", "c",
		"template", "{input}",
		"uncheckValue", "0",
		"accept", "image/*",
	)

	stripped := attrs.StripDirectives(d)
	if diff := cmp.Diff([]string{"class", "accept"}, stripped.Keys()); diff != "" {
		t.Fatalf("stripped keys mismatch (-want +got):\n%s", diff)
	}
	if d.Len() != 7 {
		t.Fatalf("source dictionary mutated")
	}
}

func TestTakeRemovesKey(t *testing.T) {
	d := attrs.Of("type", "email", "class", "x")
	value, ok := d.Take("type")
	if !ok || value != "email" {
		t.Fatalf("unexpected take result %v %v", value, ok)
	}
	if d.Has("type") {
		t.Fatalf("expected key removed")
	}
	if _, ok := d.Take("type"); ok {
		t.Fatalf("second take should report missing")
	}
}

func TestNestedDictAndFromMap(t *testing.T) {
	d := attrs.FromMap(map[string]any{
		"labelAttributes": map[string]any{"class": "control-label"},
		"b":               "2",
		"a":               "1",
	})
	if diff := cmp.Diff([]string{"a", "b", "labelAttributes"}, d.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if got := d.Dict("labelAttributes").String("class"); got != "control-label" {
		t.Fatalf("nested dict lost, got %q", got)
	}
	if d.Dict("missing").Len() != 0 {
		t.Fatalf("missing nested dict should be empty")
	}
}

func TestTruthy(t *testing.T) {
	cases := map[string]struct {
		value any
		want  bool
	}{
		"nil":        {nil, false},
		"empty":      {"", false},
		"zero text":  {"0", false},
		"text":       {"x", true},
		"false":      {false, false},
		"true":       {true, true},
		"zero int":   {0, false},
		"empty dict": {attrs.New(), false},
	}
	for name, tc := range cases {
		if got := attrs.Truthy(tc.value); got != tc.want {
			t.Errorf("%s: want %v, got %v", name, tc.want, got)
		}
	}
}

func TestNilDictReads(t *testing.T) {
	var d *attrs.Dict
	if d.Has("x") || d.Len() != 0 || d.String("x") != "" {
		t.Fatalf("nil dict should read as empty")
	}
	if d.Clone().Len() != 0 {
		t.Fatalf("clone of nil should be empty")
	}
}
