package rules_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formfields/pkg/rules"
)

const articleDocument = `{
  "openapi": "3.0.0",
  "info": { "title": "Articles", "version": "1.0.0" },
  "paths": {},
  "components": {
    "schemas": {
      "Article": {
        "type": "object",
        "required": ["title", "author_email"],
        "properties": {
          "title": {
            "type": "string",
            "title": "Title",
            "description": "Shown on the listing page",
            "minLength": 3,
            "maxLength": 120
          },
          "author_email": {
            "type": "string",
            "format": "email",
            "x-label": "Author email"
          },
          "slug": {
            "type": "string",
            "pattern": "^[a-z0-9-]+$"
          }
        }
      }
    }
  }
}`

func TestFromOpenAPIExtractsLabelsAndRules(t *testing.T) {
	set, err := rules.FromOpenAPI(context.Background(), []byte(articleDocument), "Article")
	require.NoError(t, err)

	want := rules.Set{
		"title": {
			Label:    "Title",
			Hint:     "Shown on the listing page",
			Rules:    "required|min_length[3]|max_length[120]",
			Required: true,
		},
		"author_email": {
			Label:    "Author email",
			Rules:    "required|valid_email",
			Required: true,
		},
		"slug": {
			Rules: "regex_match[^[a-z0-9-]+$]",
		},
	}
	if diff := cmp.Diff(want, set); diff != "" {
		t.Fatalf("rule set mismatch (-want +got):\n%s", diff)
	}
}

func TestFromOpenAPIMissingSchema(t *testing.T) {
	_, err := rules.FromOpenAPI(context.Background(), []byte(articleDocument), "Comment")
	require.Error(t, err)
	require.Contains(t, err.Error(), `schema "Comment" not found`)
}

func TestFromOpenAPIRejectsEmptyPayload(t *testing.T) {
	_, err := rules.FromOpenAPI(context.Background(), nil, "Article")
	require.Error(t, err)
}

func TestLoadFSParsesYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"rules/user.yaml": &fstest.MapFile{Data: []byte(`
fields:
  email:
    label: Email address
    rules: required|valid_email
  nickname:
    labelKey: fields.user.nickname
`)},
	}

	set, err := rules.LoadFS(fsys, "rules/user.yaml")
	require.NoError(t, err)

	label, ok := set.Label("email")
	require.True(t, ok)
	require.Equal(t, "Email address", label)

	rule, ok := set.Rule("email")
	require.True(t, ok)
	require.True(t, rule.IsRequired())
	require.Equal(t, []string{"required", "valid_email"}, rule.Names())

	nickname, ok := set.Rule("nickname")
	require.True(t, ok)
	require.Equal(t, "fields.user.nickname", nickname.LabelKey)

	_, ok = set.Label("nickname")
	require.False(t, ok)
}

func TestLoadFSParsesJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"rules.json": &fstest.MapFile{Data: []byte(`{"fields":{"name":{"label":"Name","required":true}}}`)},
	}
	set, err := rules.LoadFS(fsys, "rules.json")
	require.NoError(t, err)
	require.True(t, set["name"].IsRequired())
}

func TestLoadFSErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"empty.yaml": &fstest.MapFile{Data: []byte("  ")},
		"bad.json":   &fstest.MapFile{Data: []byte("{")},
	}

	_, err := rules.LoadFS(fsys, "empty.yaml")
	require.Error(t, err)

	_, err = rules.LoadFS(fsys, "bad.json")
	require.Error(t, err)

	_, err = rules.LoadFS(fsys, "missing.yaml")
	require.Error(t, err)
}

func TestSetMerge(t *testing.T) {
	base := rules.Set{"a": {Label: "A"}, "b": {Label: "B"}}
	merged := base.Merge(rules.Set{"b": {Label: "Bee"}})
	require.Equal(t, "Bee", merged["b"].Label)
	require.Equal(t, "B", base["b"].Label)
}
