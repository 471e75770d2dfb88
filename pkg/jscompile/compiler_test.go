package jscompile

import (
	"context"
	"testing"

	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackb/closure-gazelle/pkg/testutil"
	"github.com/stackb/closure-gazelle/pkg/toolchain"
)

func TestNewClosureCompilerRequiresTools(t *testing.T) {
	_, err := NewClosureCompiler(&toolchain.Toolchain{Java: "java"}, "", zerolog.Nop())
	assert.Equal(t, &toolchain.MissingToolError{Tool: toolchain.Compiler}, err)
}

func TestClosureCompilerArgs(t *testing.T) {
	c, err := NewClosureCompiler(&toolchain.Toolchain{Java: "java", CompilerJar: "compiler.jar"}, "", zerolog.Nop())
	require.NoError(t, err)

	got := c.Args(
		[]string{"base.js", "b.js", "a.js"},
		[]string{"--compilation_level=ADVANCED_OPTIMIZATIONS"},
	)
	want := []string{
		"java", "-jar", "compiler.jar",
		"--js", "base.js",
		"--js", "b.js",
		"--js", "a.js",
		"--compilation_level=ADVANCED_OPTIMIZATIONS",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestClosureCompilerCompile(t *testing.T) {
	for name, tc := range map[string]struct {
		java    string
		want    string
		wantErr string
	}{
		"success": {
			java: "#!/bin/sh\necho \"compiled $#\"\n",
			// -jar compiler.jar --js a.js --js b.js --flag
			want: "compiled 7\n",
		},
		"failure": {
			java:    "#!/bin/sh\necho 'ERROR - a.js:1' >&2\nexit 2\n",
			wantErr: "javascript compilation failed (exit code 2):\nERROR - a.js:1\n",
		},
		"no output": {
			java:    "#!/bin/sh\nexit 0\n",
			wantErr: ErrNoOutput.Error(),
		},
	} {
		t.Run(name, func(t *testing.T) {
			dir, files, cleanup := testutil.MustPrepareTestFiles(t, []testtools.FileSpec{
				{Path: "bin/java", Content: tc.java},
			})
			defer cleanup()

			c, err := NewClosureCompiler(&toolchain.Toolchain{Java: files[0], CompilerJar: "compiler.jar"}, dir, zerolog.Nop())
			require.NoError(t, err)

			got, err := c.Compile(context.Background(), []string{"a.js", "b.js"}, []string{"--flag"})
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestClosureCompilerCompileNoInputs(t *testing.T) {
	c, err := NewClosureCompiler(&toolchain.Toolchain{Java: "java", CompilerJar: "compiler.jar"}, "", zerolog.Nop())
	require.NoError(t, err)
	_, err = c.Compile(context.Background(), nil, nil)
	assert.EqualError(t, err, "compile: no inputs")
}
