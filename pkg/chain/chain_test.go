package chain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackb/closure-gazelle/pkg/jsdeps"
	"github.com/stackb/closure-gazelle/pkg/testutil"
)

func TestTransformArgs(t *testing.T) {
	env := map[string]string{
		"JAVA":                "java",
		"CLOSURE_TEMPLATES":   "soy.jar",
		"CLOSURE_STYLESHEETS": "gss.jar",
	}

	for name, tc := range map[string]struct {
		transform *Transform
		env       map[string]string
		src       string
		want      []string
		wantErr   string
	}{
		"template": {
			transform: Template,
			env:       env,
			src:       "app/views/landing.soy",
			want: []string{
				"java", "-jar", "soy.jar",
				"--shouldProvideRequireSoyNamespaces",
				"--cssHandlingScheme", "GOOG",
				"--outputPathFormat", "app/views/landing.soy.js",
				"app/views/landing.soy",
			},
		},
		"stylesheet": {
			transform: Stylesheet,
			env:       env,
			src:       "app/style/main.gss",
			want:      []string{"java", "-jar", "gss.jar", "--output-file", "app/style/main.css", "app/style/main.gss"},
		},
		"missing variable": {
			transform: Stylesheet,
			env:       map[string]string{"JAVA": "java"},
			src:       "main.gss",
			wantErr:   "stylesheet transform: variable ${CLOSURE_STYLESHEETS} is not set",
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := tc.transform.Args(tc.env, tc.src)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func transformNames(transforms []*Transform) []string {
	names := make([]string, len(transforms))
	for i, t := range transforms {
		names[i] = t.Name
	}
	return names
}

func TestOrdered(t *testing.T) {
	for name, tc := range map[string]struct {
		transforms []*Transform
		want       []string
		wantErr    string
	}{
		"degenerate": {
			want: []string{},
		},
		"builtins": {
			transforms: Transforms(),
			want:       []string{"stylesheet", "template"},
		},
		"before constraint": {
			transforms: []*Transform{
				{Name: "b"},
				{Name: "a", Before: []string{"b", CompileStep}},
			},
			want: []string{"a", "b"},
		},
		"cycle": {
			transforms: []*Transform{
				{Name: "a", After: []string{"b"}},
				{Name: "b", After: []string{"a"}},
			},
			wantErr: "ordering transforms: dependency cycle: a -(b)-> b -(a)-> a",
		},
		"duplicate name": {
			transforms: []*Transform{{Name: "a"}, {Name: "a"}},
			wantErr:    "ordering transforms: source a already registered",
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := Ordered(tc.transforms)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, transformNames(got)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	got, ok := Lookup(Transforms(), "a/b.soy")
	require.True(t, ok)
	assert.Same(t, Template, got)

	_, ok = Lookup(Transforms(), "a/b.js")
	assert.False(t, ok)
}

func TestTransformRun(t *testing.T) {
	dir, files, cleanup := testutil.MustPrepareTestFiles(t, []testtools.FileSpec{
		{Path: "bin/java", Content: "#!/bin/sh\n# java -jar gss.jar --output-file TGT SRC\ncp \"$5\" \"$4\"\n"},
		{Path: "src/main.gss", Content: ".a { color: red; }\n"},
	})
	defer cleanup()

	env := map[string]string{"JAVA": files[0], "CLOSURE_STYLESHEETS": "gss.jar"}
	target, err := Stylesheet.Run(context.Background(), env, files[1])
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "src/main.css"), target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, ".a { color: red; }\n", string(data))
}

func TestParseSoy(t *testing.T) {
	for name, tc := range map[string]struct {
		content string
		want    *jsdeps.Source
		wantErr string
	}{
		"namespace and calls": {
			content: `{namespace app.templates.landing requirecss="app.landing"}

/**
 * Landing page.
 */
{template .page}
  {call .header /}
  {call app.templates.common.footer}
    {param year: 2012 /}
  {/call}
  {delcall app.templates.common.banner /}
  {call relief.templates.errors.notFound /}
{/template}
`,
			want: &jsdeps.Source{
				Path:     "landing.soy.js",
				Provides: []string{"app.templates.landing"},
				Requires: []string{"app.templates.common", "relief.templates.errors"},
			},
		},
		"missing namespace": {
			content: "{template .x}{/template}\n",
			wantErr: "landing.soy: missing {namespace} declaration",
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := ParseSoy("landing.soy", []byte(tc.content))
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}
