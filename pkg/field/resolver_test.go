package field_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/attrs"
	"github.com/goliatone/go-formfields/pkg/datasource"
	"github.com/goliatone/go-formfields/pkg/errorstore"
	"github.com/goliatone/go-formfields/pkg/field"
	"github.com/goliatone/go-formfields/pkg/rules"
)

type article struct {
	Title     string
	Published bool
	Score     float64
	Tags      []string
}

type labeledArticle struct {
	Title string
}

func (labeledArticle) FieldLabel(name string) (string, bool) {
	if name == "Title" {
		return "Headline", true
	}
	return "", false
}

type ruledArticle struct {
	Title string
}

func (ruledArticle) ValidationRules() rules.Provider {
	return rules.Set{"Title": {Label: "Article title"}}
}

func TestValueMissingFieldsReturnDefault(t *testing.T) {
	r := field.New()
	sources := []datasource.DataSource{
		nil,
		datasource.Empty{},
		datasource.Map{},
		datasource.Map{"other": "x"},
		datasource.Map{"title": nil},
		datasource.From(article{}),
	}
	for i, src := range sources {
		if got := r.Value(src, "missing", nil, "fallback"); got != "fallback" {
			t.Errorf("source %d: got %q, want fallback", i, got)
		}
		if got := r.Value(src, "missing", attrs.New(), ""); got != "" {
			t.Errorf("source %d: got %q, want empty default", i, got)
		}
	}
}

func TestValueExplicitOverrideAlwaysWins(t *testing.T) {
	r := field.New()
	sources := []datasource.DataSource{
		datasource.Map{"title": "from map"},
		datasource.From(article{Title: "from record"}),
		nil,
	}
	for _, src := range sources {
		got := r.Value(src, "title", attrs.Of("value", "explicit"), "default")
		if got != "explicit" {
			t.Fatalf("expected explicit override, got %q", got)
		}
		if got := r.Value(src, "title", attrs.Of("value", ""), "default"); got != "" {
			t.Fatalf("explicit empty value must win, got %q", got)
		}
	}
}

func TestValueStringifiesAcrossSources(t *testing.T) {
	r := field.New()
	stamp := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		src   datasource.DataSource
		field string
		want  string
	}{
		{name: "map string", src: datasource.Map{"title": "Hello"}, field: "title", want: "Hello"},
		{name: "map int", src: datasource.Map{"count": 3}, field: "count", want: "3"},
		{name: "map time", src: datasource.Map{"at": stamp}, field: "at", want: "2024-05-01T10:00:00Z"},
		{name: "record string", src: datasource.From(article{Title: "Record"}), field: "Title", want: "Record"},
		{name: "record bool", src: datasource.From(article{Published: true}), field: "published", want: "1"},
		{name: "record float", src: datasource.From(article{Score: 4.5}), field: "score", want: "4.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Value(tc.src, tc.field, nil, "default"); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValueLooksUpOriginalFieldName(t *testing.T) {
	r := field.New()
	src := datasource.Map{"email": "a@example.com", "contact": "wrong"}

	a := attrs.Of("name", "contact")
	if got := r.Name(a, "email"); got != "contact" {
		t.Fatalf("unexpected wire name %q", got)
	}
	if got := r.Value(src, "email", a, ""); got != "a@example.com" {
		t.Fatalf("value should bind to the original field, got %q", got)
	}
}

func TestValuesReturnsCollectionMembers(t *testing.T) {
	r := field.New()
	src := datasource.From(article{Tags: []string{"x", "y"}})

	if diff := cmp.Diff([]string{"x", "y"}, r.Values(src, "tags", nil)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"solo"}, r.Values(datasource.Map{"tags": "solo"}, "tags", nil)); diff != "" {
		t.Fatalf("scalar values mismatch (-want +got):\n%s", diff)
	}
	if got := r.Values(datasource.Empty{}, "tags", nil); got != nil {
		t.Fatalf("expected nil for absent value, got %v", got)
	}
}

func TestLabelPrecedence(t *testing.T) {
	configured := rules.Set{"Title": {Label: "Configured title"}}

	cases := []struct {
		name     string
		resolver *field.Resolver
		src      datasource.DataSource
		a        *attrs.Dict
		want     string
	}{
		{
			name:     "explicit wins",
			resolver: field.New(field.WithRules(configured)),
			src:      datasource.From(ruledArticle{}),
			a:        attrs.Of("label", "Explicit"),
			want:     "Explicit",
		},
		{
			name:     "data source rules",
			resolver: field.New(field.WithRules(configured)),
			src:      datasource.From(ruledArticle{}),
			want:     "Article title",
		},
		{
			name:     "resolver rules",
			resolver: field.New(field.WithRules(configured)),
			src:      datasource.From(labeledArticle{}),
			want:     "Configured title",
		},
		{
			name:     "model label lookup",
			resolver: field.New(),
			src:      datasource.From(labeledArticle{}),
			want:     "Headline",
		},
		{
			name:     "field name fallback",
			resolver: field.New(),
			src:      datasource.Map{},
			want:     "Title",
		},
		{
			name:     "empty explicit label ignored",
			resolver: field.New(),
			src:      nil,
			a:        attrs.Of("label", ""),
			want:     "Title",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.resolver.Label(tc.src, "Title", tc.a); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLabelTranslatesLabelKeys(t *testing.T) {
	set := rules.Set{
		"name":  {Label: "Name", LabelKey: "fields.name"},
		"email": {Label: "Email", LabelKey: "fields.email"},
	}
	translator := field.TranslatorFunc(func(locale, key string, _ ...any) (string, error) {
		if locale == "es" && key == "fields.name" {
			return "Nombre", nil
		}
		return "", errors.New("missing")
	})

	r := field.New(field.WithRules(set), field.WithTranslator(translator, "es"))
	if got := r.Label(nil, "name", nil); got != "Nombre" {
		t.Fatalf("expected translated label, got %q", got)
	}
	if got := r.Label(nil, "email", nil); got != "Email" {
		t.Fatalf("expected fallback label on missing translation, got %q", got)
	}
}

func TestErrorResolution(t *testing.T) {
	store := errorstore.New(map[string]string{
		"email":   "Email is invalid",
		"contact": "Contact is required",
	})
	r := field.New(field.WithErrors(store))

	if msg, ok := r.Error("email", nil); !ok || msg != "Email is invalid" {
		t.Fatalf("unexpected store error %q %v", msg, ok)
	}
	if msg, ok := r.Error("email", attrs.Of("name", "contact")); !ok || msg != "Contact is required" {
		t.Fatalf("error lookup should use the resolved name, got %q %v", msg, ok)
	}
	if msg, ok := r.Error("email", attrs.Of("error", "Explicit")); !ok || msg != "Explicit" {
		t.Fatalf("explicit error should win, got %q %v", msg, ok)
	}
	if msg, ok := r.Error("name", nil); ok || msg != "" {
		t.Fatalf("absent error must be empty, got %q %v", msg, ok)
	}
}

func TestIDResolution(t *testing.T) {
	r := field.New()
	if got := r.ID("email", nil); got != "email_input" {
		t.Fatalf("unexpected default id %q", got)
	}
	if got := r.ID("email", attrs.Of("id", "custom")); got != "custom" {
		t.Fatalf("explicit id should win, got %q", got)
	}
}

func TestResolveDescriptor(t *testing.T) {
	r := field.New(field.WithErrors(errorstore.New(map[string]string{"title": "Required"})))
	got := r.Resolve(datasource.Map{"title": "Hello"}, "title", attrs.Of("label", "Title"))

	want := field.Descriptor{
		Name:     "title",
		Value:    "Hello",
		Label:    "Title",
		Error:    "Required",
		HasError: true,
		ID:       "title_input",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestAddErrorClass(t *testing.T) {
	base := attrs.Of("class", "form-control")

	if got := field.AddErrorClass(base, true, "is-invalid").String("class"); got != "form-control is-invalid" {
		t.Fatalf("unexpected class %q", got)
	}
	if got := field.AddErrorClass(base, false, "is-invalid").String("class"); got != "form-control" {
		t.Fatalf("class should be unchanged without error, got %q", got)
	}
	if got := field.AddErrorClass(base, true, "").String("class"); got != "form-control" {
		t.Fatalf("class should be unchanged without configured class, got %q", got)
	}
}

func TestMergeAttributes(t *testing.T) {
	got := field.MergeAttributes(attrs.Of("class", "a"), attrs.Of("class", "b"))
	if diff := cmp.Diff(map[string]any{"class": "a b"}, got.Map()); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestHintResolution(t *testing.T) {
	r := field.New(field.WithRules(rules.Set{
		"Title": {Hint: "Configured hint"},
		"Body":  {Hint: "  Body hint  "},
	}))

	if got, ok := r.Hint(datasource.Map{}, "Body"); !ok || got != "Body hint" {
		t.Fatalf("unexpected resolver hint %q %v", got, ok)
	}
	if got, ok := r.Hint(datasource.From(hintedArticle{}), "Title"); !ok || got != "Source hint" {
		t.Fatalf("data source rules should win, got %q %v", got, ok)
	}
	if got, ok := r.Hint(nil, "Missing"); ok || got != "" {
		t.Fatalf("expected no hint, got %q %v", got, ok)
	}
}

type hintedArticle struct {
	Title string
}

func (hintedArticle) ValidationRules() rules.Provider {
	return rules.Set{"Title": {Hint: "Source hint"}}
}

type birthday struct{ At time.Time }

func (s birthday) String() string { return s.At.Format(time.DateOnly) }

func TestTypedNilValuesFallBackToDefault(t *testing.T) {
	r := field.New()
	sources := []datasource.DataSource{
		datasource.Map{"born": (*time.Time)(nil)},
		datasource.From(map[string]*birthday{"born": nil}),
		datasource.From(map[string]any{"born": (*birthday)(nil)}),
	}
	for i, src := range sources {
		if got := r.Value(src, "born", nil, "unknown"); got != "unknown" {
			t.Errorf("source %d: got %q, want unknown", i, got)
		}
	}

	if got := field.Stringify((*time.Time)(nil)); got != "" {
		t.Fatalf("expected empty text for a nil time, got %q", got)
	}
	if got := field.Stringify(&birthday{At: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}); got != "2024-05-01" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := field.Members((*birthday)(nil)); got != nil {
		t.Fatalf("expected no members, got %v", got)
	}
	if got := attrs.ToString((*birthday)(nil)); got != "" {
		t.Fatalf("expected empty attribute text, got %q", got)
	}
}
