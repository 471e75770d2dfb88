package glob

import (
	"fmt"
	"os"
	"testing"

	"github.com/bazelbuild/bazel-gazelle/rule"
	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/bazelbuild/buildtools/build"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/stackb/closure-gazelle/pkg/testutil"
)

func TestParse(t *testing.T) {
	for name, tc := range map[string]struct {
		// prelude is an optional chunk of BUILD file content
		prelude string
		glob    string
		want    rule.GlobValue
	}{
		"empty glob": {
			glob: `glob()`,
			want: rule.GlobValue{},
		},
		"empty include list": {
			glob: `glob([])`,
			want: rule.GlobValue{},
		},
		"two patterns": {
			glob: `glob(["a.js", "b.js"])`,
			want: rule.GlobValue{Patterns: []string{"a.js", "b.js"}},
		},
		"exclude list": {
			glob: `glob(["*.js"], exclude=["*_test.js"])`,
			want: rule.GlobValue{Patterns: []string{"*.js"}, Excludes: []string{"*_test.js"}},
		},
		"global pattern and exclude": {
			prelude: `
INCLUDES = ["**/*.js"]
EXCLUDES = ["deps.js"]
`,
			glob: `glob(INCLUDES, exclude = EXCLUDES)`,
			want: rule.GlobValue{Patterns: []string{"**/*.js"}, Excludes: []string{"deps.js"}},
		},
		"unknown identifier is skipped": {
			glob: `glob(MISSING)`,
			want: rule.GlobValue{},
		},
		"function calls are skipped": {
			glob: `glob(get_include_list(), get_exclude_list())`,
			want: rule.GlobValue{},
		},
	} {
		t.Run(name, func(t *testing.T) {
			file := mustLoadRuleFile(t, tc.prelude, tc.glob)
			r := file.File.Rules("test_rule")[0]

			got := Parse(zerolog.Nop(), file, r.Attr("srcs").(*build.CallExpr))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Parse (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply(t *testing.T) {
	for name, tc := range map[string]struct {
		glob  rule.GlobValue
		files []testtools.FileSpec
		want  []string
	}{
		"empty glob": {
			files: []testtools.FileSpec{{Path: "a.js"}},
		},
		"explicit match": {
			glob:  rule.GlobValue{Patterns: []string{"a.js"}},
			files: []testtools.FileSpec{{Path: "a.js"}, {Path: "b.js"}},
			want:  []string{"a.js"},
		},
		"doublestar match": {
			glob:  rule.GlobValue{Patterns: []string{"**/*.js"}},
			files: []testtools.FileSpec{{Path: "a.js"}, {Path: "ui/b.js"}, {Path: "ui/c.soy"}},
			want:  []string{"a.js", "ui/b.js"},
		},
		"doublestar match with exclude": {
			glob: rule.GlobValue{Patterns: []string{"**/*.js"}, Excludes: []string{"**/*_test.js"}},
			files: []testtools.FileSpec{
				{Path: "a.js"},
				{Path: "a_test.js"},
				{Path: "ui/b_test.js"},
			},
			want: []string{"a.js"},
		},
		"invalid pattern": {
			glob:  rule.GlobValue{Patterns: []string{"[.js"}},
			files: []testtools.FileSpec{{Path: "a.js"}},
		},
	} {
		t.Run(name, func(t *testing.T) {
			dir, _, cleanup := testutil.MustPrepareTestFiles(t, tc.files)
			defer cleanup()

			got := Apply(zerolog.Nop(), tc.glob, os.DirFS(dir))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Apply (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollectFilenames(t *testing.T) {
	for name, tc := range map[string]struct {
		prelude string
		srcs    string
		files   []testtools.FileSpec
		want    []string
		wantErr string
	}{
		"string list": {
			srcs: `["a.js", "b.js"]`,
			want: []string{"a.js", "b.js"},
		},
		"list plus glob": {
			srcs:  `["a.js"] + glob(["lib/*.js"])`,
			files: []testtools.FileSpec{{Path: "lib/b.js"}, {Path: "lib/c.js"}},
			want:  []string{"a.js", "lib/b.js", "lib/c.js"},
		},
		"identifier": {
			prelude: `JS_SRCS = ["x.js"]`,
			srcs:    `JS_SRCS`,
			want:    []string{"x.js"},
		},
		"unknown identifier": {
			srcs:    `JS_SRCS`,
			wantErr: `failed to resolve identifier "JS_SRCS" (consider inlining it): JS_SRCS must resolve to a list of strings: unknown global identifier: JS_SRCS`,
		},
		"unsupported function": {
			srcs:    `select({"//conditions:default": []})`,
			wantErr: "not attempting to resolve function call select(): consider making this simpler",
		},
	} {
		t.Run(name, func(t *testing.T) {
			dir, _, cleanup := testutil.MustPrepareTestFiles(t, tc.files)
			defer cleanup()

			file := mustLoadRuleFile(t, tc.prelude, tc.srcs)
			r := file.File.Rules("test_rule")[0]

			got, err := CollectFilenames(zerolog.Nop(), file, dir, r.Attr("srcs"))
			if tc.wantErr != "" {
				if err == nil || err.Error() != tc.wantErr {
					t.Fatalf("error: want %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("CollectFilenames (-want +got):\n%s", diff)
			}
		})
	}
}

func mustLoadRuleFile(t *testing.T, prelude, srcs string) *rule.File {
	t.Helper()
	content := fmt.Sprintf("test_rule(srcs = %s)", srcs)
	if prelude != "" {
		content = prelude + "\n\n" + content
	}
	file, err := rule.LoadData("<in-memory>", "BUILD", []byte(content))
	if err != nil {
		t.Fatal(err)
	}
	return file
}
