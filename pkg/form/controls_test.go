package form_test

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-formfields/pkg/attrs"
	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/htmltag"
)

type account struct {
	Email      string
	Newsletter bool
	Roles      []string
}

func (account) FieldLabel(name string) (string, bool) {
	if name == "Email" {
		return "E-mail", true
	}
	return "", false
}

func TestCheckboxSentinelAndCheckedState(t *testing.T) {
	f := minimal()

	cases := []struct {
		name   string
		src    any
		field  string
		target string
		a      *attrs.Dict
		want   string
	}{
		{
			name:   "collection member",
			src:    map[string]any{"tags": []string{"x", "y"}},
			field:  "tags",
			target: "x",
			want:   `<input type="hidden" name="tags" value="0"><input type="checkbox" name="tags" value="x" checked>`,
		},
		{
			name:   "collection non member",
			src:    map[string]any{"tags": []string{"x", "y"}},
			field:  "tags",
			target: "z",
			want:   `<input type="hidden" name="tags" value="0"><input type="checkbox" name="tags" value="z">`,
		},
		{
			name:   "scalar equality",
			src:    map[string]any{"agree": "x"},
			field:  "agree",
			target: "x",
			want:   `<input type="hidden" name="agree" value="0"><input type="checkbox" name="agree" value="x" checked>`,
		},
		{
			name:   "record bool",
			src:    account{Newsletter: true},
			field:  "Newsletter",
			target: "1",
			want:   `<input type="hidden" name="Newsletter" value="0"><input type="checkbox" name="Newsletter" value="1" checked>`,
		},
		{
			name:   "checked directive wins",
			src:    map[string]any{"agree": "x"},
			field:  "agree",
			target: "x",
			a:      attrs.Of("checked", false),
			want:   `<input type="hidden" name="agree" value="0"><input type="checkbox" name="agree" value="x">`,
		},
		{
			name:   "checked directive without data",
			src:    nil,
			field:  "agree",
			target: "1",
			a:      attrs.Of("checked", true),
			want:   `<input type="hidden" name="agree" value="0"><input type="checkbox" name="agree" value="1" checked>`,
		},
		{
			name:   "custom sentinel",
			src:    nil,
			field:  "agree",
			target: "yes",
			a:      attrs.Of("uncheckValue", "no"),
			want:   `<input type="hidden" name="agree" value="no"><input type="checkbox" name="agree" value="yes">`,
		},
		{
			name:   "empty sentinel omits hidden control",
			src:    nil,
			field:  "agree",
			target: "yes",
			a:      attrs.Of("uncheckValue", ""),
			want:   `<input type="checkbox" name="agree" value="yes">`,
		},
		{
			name:   "renamed field keeps binding",
			src:    map[string]any{"agree": "1"},
			field:  "agree",
			target: "1",
			a:      attrs.Of("name", "terms"),
			want:   `<input type="hidden" name="terms" value="0"><input type="checkbox" name="terms" value="1" checked>`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := f.Checkbox(tc.src, tc.field, tc.target, tc.a)
			if got != tc.want {
				t.Fatalf("\n got: %s\nwant: %s", got, tc.want)
			}
		})
	}
}

func TestCheckboxSentinelDisabledByOption(t *testing.T) {
	f := minimal(form.WithUncheckValue(""))
	got := f.Checkbox(nil, "agree", "1", nil)
	if strings.Contains(got, `type="hidden"`) {
		t.Fatalf("sentinel should be disabled, got %s", got)
	}
	if got := f.Checkbox(nil, "agree", "1", attrs.Of("uncheckValue", "0")); strings.Count(got, `type="hidden"`) != 1 {
		t.Fatalf("directive should re-enable the sentinel, got %s", got)
	}
}

func TestRadioHasNoSentinel(t *testing.T) {
	f := minimal()
	got := f.Radio(map[string]any{"size": "m"}, "size", "m", nil)
	if got != `<input type="radio" name="size" value="m" checked>` {
		t.Fatalf("unexpected radio %s", got)
	}
}

func TestCheckboxList(t *testing.T) {
	f := minimal()
	src := map[string]any{"colors": []string{"red", "blue"}}
	options := htmltag.Options("red", "Red", "green", "Green", "blue", "Blue")

	got := f.CheckboxList(src, "colors", options, nil)
	want := strings.Join([]string{
		`<input type="hidden" name="colors" value="0"><label><input type="checkbox" name="colors[]" value="red" checked id="colors_input_0"> Red</label>`,
		`<label><input type="checkbox" name="colors[]" value="green" id="colors_input_1"> Green</label>`,
		`<label><input type="checkbox" name="colors[]" value="blue" checked id="colors_input_2"> Blue</label>`,
	}, "\n")
	if got != want {
		t.Fatalf("unexpected list\n got: %s\nwant: %s", got, want)
	}
	if strings.Count(got, `type="hidden"`) != 1 {
		t.Fatalf("list must emit exactly one sentinel")
	}

	renamed := f.CheckboxList(src, "colors", options, attrs.Of("name", "palette[]"))
	if !strings.HasPrefix(renamed, `<input type="hidden" name="palette" value="0">`) || !strings.Contains(renamed, `name="palette[]"`) {
		t.Fatalf("unexpected renamed list %s", renamed)
	}
}

func TestRadioListWithSeparatorAndItemAttributes(t *testing.T) {
	f := minimal()
	got := f.RadioList(map[string]any{"size": "m"}, "size", htmltag.Options("s", "S", "m", "M"),
		attrs.Of("separator", "<br>", "itemAttributes", attrs.Of("class", "radio")))

	want := `<label><input type="radio" name="size" value="s" class="radio" id="size_input_0"> S</label>` +
		`<br>` +
		`<label><input type="radio" name="size" value="m" checked class="radio" id="size_input_1"> M</label>`
	if got != want {
		t.Fatalf("unexpected radio list\n got: %s\nwant: %s", got, want)
	}
}

func TestListGroupsTargetFirstItem(t *testing.T) {
	f := minimal()
	options := htmltag.Options("a", "A", "b", "B")

	got := f.CheckboxListGroup(nil, "letters", options, nil, attrs.Of("template", "{label}"))
	if got != `<label for="letters_input_0">letters</label>` {
		t.Fatalf("unexpected checkbox list label %s", got)
	}
	got = f.RadioListGroup(nil, "letters", options, attrs.Of("id", "pick"), attrs.Of("template", "{label}"))
	if got != `<label for="pick_0">letters</label>` {
		t.Fatalf("unexpected radio list label %s", got)
	}
}

func TestCheckableGroupsAssociateLabels(t *testing.T) {
	f := form.New()

	got := f.CheckboxGroup(nil, "agree", "1", nil, attrs.Of("template", "{input}{label}"))
	want := `<input type="hidden" name="agree" value="0">` +
		`<input type="checkbox" name="agree" value="1" class="form-check-input" id="agree_input">` +
		`<label class="control-label" for="agree_input">agree</label>`
	if got != want {
		t.Fatalf("unexpected checkbox group\n got: %s\nwant: %s", got, want)
	}

	got = f.RadioGroup(nil, "size", "m", attrs.Of("id", "size_m"), attrs.Of("template", "{input}{label}", "labelAttributes", attrs.Of("for", "custom")))
	if !strings.Contains(got, `id="size_m"`) || !strings.Contains(got, `for="custom"`) {
		t.Fatalf("unexpected radio group %s", got)
	}
}

func TestControlsStripDirectives(t *testing.T) {
	f := form.New()
	a := attrs.Of(
		"label", "L",
		"error", "E",
		"template", "x",
		"uncheckValue", "1",
		"hint", "h",
		"prefix", "p",
		"suffix", "s",
		"labelAttributes", attrs.Of("class", "lbl"),
		"class", "wide",
	)

	got := f.Input(map[string]any{"title": "T"}, "title", a)
	want := `<input type="text" name="title" value="T" class="form-control wide is-invalid">`
	if got != want {
		t.Fatalf("unexpected input\n got: %s\nwant: %s", got, want)
	}
}

func TestControls(t *testing.T) {
	f := form.New()
	src := map[string]any{
		"title":   "Hello <World>",
		"body":    "Text",
		"country": "fr",
		"tags":    []string{"a", "c"},
		"city":    "Oslo",
		"token":   "abc",
	}
	countries := []htmltag.Option{{Value: "es", Label: "Spain"}, {Value: "fr", Label: "France"}}

	cases := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "input escapes value",
			got:  f.Input(src, "title", nil),
			want: `<input type="text" name="title" value="Hello &lt;World&gt;" class="form-control">`,
		},
		{
			name: "input explicit value and id",
			got:  f.Input(src, "title", attrs.Of("value", "Override", "id", "t1")),
			want: `<input type="text" name="title" value="Override" class="form-control" id="t1">`,
		},
		{
			name: "renamed input binds original field",
			got:  f.Input(src, "city", attrs.Of("name", "town")),
			want: `<input type="text" name="town" value="Oslo" class="form-control">`,
		},
		{
			name: "password",
			got:  f.Password(nil, "secret", nil),
			want: `<input type="password" name="secret" value="" class="form-control">`,
		},
		{
			name: "upload",
			got:  f.Upload(nil, "avatar", attrs.Of("accept", "image/*")),
			want: `<input type="file" name="avatar" class="form-control-file" accept="image/*">`,
		},
		{
			name: "textarea",
			got:  f.Textarea(src, "body", attrs.Of("rows", 4)),
			want: `<textarea name="body" class="form-control" rows="4">Text</textarea>`,
		},
		{
			name: "hidden",
			got:  f.Hidden(src, "token", nil),
			want: `<input type="hidden" name="token" value="abc">`,
		},
		{
			name: "dropdown",
			got:  f.Dropdown(src, "country", countries, nil),
			want: "<select name=\"country\" class=\"form-control\">\n<option value=\"es\">Spain</option>\n<option value=\"fr\" selected>France</option>\n</select>",
		},
		{
			name: "submit",
			got:  f.Submit("save", "Save", nil),
			want: `<input type="submit" name="save" value="Save" class="btn btn-primary">`,
		},
		{
			name: "reset",
			got:  f.Reset("reset", "Reset", nil),
			want: `<input type="reset" name="reset" value="Reset" class="btn btn-secondary">`,
		},
		{
			name: "button",
			got:  f.Button("save", "Save", attrs.Of("type", "submit")),
			want: `<button name="save" type="submit" class="btn btn-secondary">Save</button>`,
		},
		{
			name: "label",
			got:  f.Label("Title", "title_input", nil),
			want: `<label for="title_input" class="control-label">Title</label>`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("\n got: %s\nwant: %s", tc.got, tc.want)
			}
		})
	}

	multi := f.Multiselect(src, "tags", htmltag.Options("a", "A", "b", "B", "c", "C"), nil)
	if strings.Count(multi, " selected") != 2 || !strings.Contains(multi, " multiple") {
		t.Fatalf("unexpected multiselect %s", multi)
	}
	datalist := f.Datalist(src, "city", htmltag.Options("Oslo", "Oslo"), nil)
	if !strings.Contains(datalist, `value="Oslo"`) || !strings.Contains(datalist, `<datalist id="city_list">`) {
		t.Fatalf("unexpected datalist %s", datalist)
	}
}

func TestGroupVariantsUseModelLabels(t *testing.T) {
	f := minimal()
	acct := &account{Email: "ada@example.com", Roles: []string{"admin"}}
	roles := htmltag.Options("admin", "Admin", "editor", "Editor")

	got := f.InputGroup(acct, "Email", nil, attrs.Of("template", "{label}{input}"))
	want := `<label for="Email_input">E-mail</label><input type="text" name="Email" value="ada@example.com" id="Email_input">`
	if got != want {
		t.Fatalf("unexpected group\n got: %s\nwant: %s", got, want)
	}

	groups := []string{
		f.PasswordGroup(acct, "Password", nil, nil),
		f.UploadGroup(acct, "Avatar", nil, nil),
		f.TextareaGroup(acct, "Bio", nil, nil),
		f.DropdownGroup(acct, "Roles", roles, nil, nil),
		f.MultiselectGroup(acct, "Roles", roles, nil, nil),
		f.DatalistGroup(acct, "Roles", roles, nil, nil),
	}
	for i, markup := range groups {
		if !strings.HasPrefix(markup, "<div>") || !strings.Contains(markup, `_input">`) {
			t.Fatalf("group %d missing wrapper or label association: %s", i, markup)
		}
	}
	if !strings.Contains(groups[3], `<option value="admin" selected>`) {
		t.Fatalf("dropdown group should select the current role: %s", groups[3])
	}
}

func TestStructuralWrappers(t *testing.T) {
	f := form.New()

	if got := f.Open("/save", attrs.Of("id", "profile"), map[string]string{"_method": "PUT"}); got != "<form action=\"/save\" method=\"post\" accept-charset=\"utf-8\" id=\"profile\">\n<input type=\"hidden\" name=\"_method\" value=\"PUT\">\n" {
		t.Fatalf("unexpected open %q", got)
	}
	if got := f.OpenMultipart("/upload", nil, nil); !strings.Contains(got, `enctype="multipart/form-data"`) {
		t.Fatalf("unexpected multipart open %q", got)
	}
	if got := f.Close(""); got != "</form>" {
		t.Fatalf("unexpected close %q", got)
	}
	if got := f.OpenFieldset("Address", attrs.Of("class", "box")); got != "<fieldset class=\"box\">\n<legend>Address</legend>\n" {
		t.Fatalf("unexpected fieldset %q", got)
	}
	if got := f.CloseFieldset("\n"); got != "</fieldset>\n" {
		t.Fatalf("unexpected fieldset close %q", got)
	}
	if got := f.BeginButtons(attrs.Of("class", "right")) + f.EndButtons(); got != `<div class="form-buttons right"></div>` {
		t.Fatalf("unexpected buttons wrapper %q", got)
	}
}

func TestRepopulationHelpers(t *testing.T) {
	f := form.New(form.WithSubmitted(url.Values{
		"color": {"red", "blue"},
		"name":  {"Ada"},
	}))

	if got := f.SetValue("name", "x"); got != "Ada" {
		t.Fatalf("unexpected value %q", got)
	}
	if got := f.SetValue("missing", "x"); got != "x" {
		t.Fatalf("unexpected default %q", got)
	}
	if got := f.SetSelect("color", "red", false); got != ` selected="selected"` {
		t.Fatalf("unexpected select %q", got)
	}
	if got := f.SetSelect("color", "green", true); got != "" {
		t.Fatalf("submitted data should override the default, got %q", got)
	}
	if got := f.SetCheckbox("missing", "x", true); got != ` checked="checked"` {
		t.Fatalf("default should apply to unsubmitted fields, got %q", got)
	}
	if got := f.SetRadio("missing", "x", false); got != "" {
		t.Fatalf("unexpected radio %q", got)
	}
}

func TestControlsTolerateTypedNilValues(t *testing.T) {
	f := minimal()
	src := map[string]any{"born": (*time.Time)(nil)}

	if got, want := f.Input(src, "born", nil), `<input type="text" name="born" value="">`; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	if got := f.Checkbox(src, "born", "1", nil); strings.Contains(got, "checked") {
		t.Fatalf("nil value must not check the box: %s", got)
	}
}
