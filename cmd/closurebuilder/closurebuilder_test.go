package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackb/closure-gazelle/pkg/jsdeps"
	"github.com/stackb/closure-gazelle/pkg/progress"
	"github.com/stackb/closure-gazelle/pkg/testutil"
)

var testFiles = []testtools.FileSpec{
	{Path: "lib/base.js", Content: "/** @provideGoog */\nvar goog = goog || {};\n"},
	{Path: "lib/dom.js", Content: "goog.provide('goog.dom');\n"},
	{Path: "app/main.js", Content: "goog.provide('app.main');\ngoog.require('app.ui.menu');\n"},
	{Path: "app/ui/menu.js", Content: "goog.module('app.ui.menu');\nconst dom = goog.require('goog.dom');\n"},
	{Path: "app/ui/button.js", Content: "goog.provide('app.ui.button');\n"},
}

func TestParseFlags(t *testing.T) {
	for name, tc := range map[string]struct {
		args    []string
		wantErr string
		want    []string
	}{
		"namespaces from flags and args": {
			args: []string{"-n", "a.b", "-namespace", "c.*", "d"},
			want: []string{"a.b", "c.*", "d"},
		},
		"bad output mode": {
			args:    []string{"-output_mode", "zip", "-n", "a"},
			wantErr: `invalid -output_mode "zip" (want list, script, compiled or deps)`,
		},
		"nothing requested": {
			args:    []string{"-root", "."},
			wantErr: "at least one -namespace or -input is required",
		},
		"deps mode needs no namespaces": {
			args: []string{"-output_mode", "deps"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			cfg, err := parseFlags(tc.args)
			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, []string(cfg.namespaces)); diff != "" {
				t.Errorf("namespaces (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRun(t *testing.T) {
	t.Setenv("CLOSURE_LIBRARY", "")

	dir, _, cleanup := testutil.MustPrepareTestFiles(t, testFiles)
	defer cleanup()

	for name, tc := range map[string]struct {
		args    []string
		want    []string
		wantErr error
	}{
		"list": {
			args: []string{"-n", "app.main"},
			want: []string{"lib/base.js", "lib/dom.js", "app/ui/menu.js", "app/main.js"},
		},
		"wildcard": {
			args: []string{"-n", "app.ui.*"},
			want: []string{"lib/base.js", "app/ui/button.js", "lib/dom.js", "app/ui/menu.js"},
		},
		"input file": {
			args: []string{"-input", filepath.Join(dir, "app/ui/button.js")},
			want: []string{"lib/base.js", "app/ui/button.js"},
		},
		"unknown namespace": {
			args:    []string{"-n", "app.nope"},
			wantErr: &jsdeps.UnknownSymbolError{Symbol: "app.nope", Nearest: "app"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			args := append([]string{"-root", filepath.Join(dir, "lib"), "-root", filepath.Join(dir, "app"), "-project_root", dir}, tc.args...)
			cfg, err := parseFlags(args)
			require.NoError(t, err)

			var stdout bytes.Buffer
			err = run(context.Background(), cfg, zerolog.Nop(), progress.Discard(), &stdout)
			if tc.wantErr != nil {
				var unknown *jsdeps.UnknownSymbolError
				require.True(t, errors.As(err, &unknown), "got %v", err)
				assert.Equal(t, tc.wantErr.(*jsdeps.UnknownSymbolError).Symbol, unknown.Symbol)
				return
			}
			require.NoError(t, err)

			var got []string
			for _, line := range strings.Split(strings.TrimSpace(stdout.String()), "\n") {
				rel, err := filepath.Rel(dir, line)
				require.NoError(t, err)
				got = append(got, filepath.ToSlash(rel))
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("closure (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunScriptToFile(t *testing.T) {
	t.Setenv("CLOSURE_LIBRARY", "")

	dir, _, cleanup := testutil.MustPrepareTestFiles(t, testFiles)
	defer cleanup()

	cfg, err := parseFlags([]string{
		"-root", dir,
		"-project_root", dir,
		"-output_mode", "script",
		"-output_file", filepath.Join(dir, "out", "bundle.js"),
		"app.ui.button",
	})
	require.NoError(t, err)
	require.NoError(t, run(context.Background(), cfg, zerolog.Nop(), progress.Discard(), &bytes.Buffer{}))

	got := testutil.MustReadTestFile(t, dir, "out/bundle.js")
	assert.Equal(t, "/** @provideGoog */\nvar goog = goog || {};\n\ngoog.provide('app.ui.button');\n\n", got)
}

func TestRunDeps(t *testing.T) {
	t.Setenv("CLOSURE_LIBRARY", "")

	dir, _, cleanup := testutil.MustPrepareTestFiles(t, testFiles)
	defer cleanup()

	cfg, err := parseFlags([]string{"-root", filepath.Join(dir, "lib"), "-root", filepath.Join(dir, "app"), "-project_root", dir, "-output_mode", "deps"})
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, zerolog.Nop(), progress.Discard(), &stdout))

	want := strings.Join([]string{
		"goog.addDependency('../app/main.js', ['app.main'], ['app.ui.menu'], {});",
		"goog.addDependency('../app/ui/button.js', ['app.ui.button'], [], {});",
		"goog.addDependency('../app/ui/menu.js', ['app.ui.menu'], ['goog.dom'], {'module': 'goog'});",
		"goog.addDependency('dom.js', ['goog.dom'], [], {});",
		"",
	}, "\n")
	if diff := cmp.Diff(want, stdout.String()); diff != "" {
		t.Errorf("deps (-want +got):\n%s", diff)
	}
}
