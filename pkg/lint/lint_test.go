package lint

import (
	"context"
	"testing"

	"github.com/bazelbuild/bazel-gazelle/testtools"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackb/closure-gazelle/pkg/testutil"
	"github.com/stackb/closure-gazelle/pkg/toolchain"
)

func TestNew(t *testing.T) {
	tc := &toolchain.Toolchain{Python: "python3", Linter: "gjslint.py"}

	l, err := New(tc, false)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"python3", "gjslint.py", "--strict", "-r", "src", "-r", "lib"}, l.Args([]string{"src", "lib"})); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	_, err = New(tc, true)
	assert.Equal(t, &toolchain.MissingToolError{Tool: toolchain.LinterFix}, err)
}

func TestRun(t *testing.T) {
	for name, tc := range map[string]struct {
		script  string
		want    string
		wantErr string
	}{
		"clean": {
			script: "echo \"$@\"\n",
			want:   "--strict -r src\n",
		},
		"lint errors": {
			script:  "echo 'Line 3, E:0110: Line too long'\nexit 1\n",
			want:    "Line 3, E:0110: Line too long\n",
			wantErr: "gjslint failed (exit code 1)",
		},
	} {
		t.Run(name, func(t *testing.T) {
			dir, files, cleanup := testutil.MustPrepareTestFiles(t, []testtools.FileSpec{
				{Path: "gjslint.sh", Content: tc.script},
			})
			defer cleanup()

			// sh stands in for python, running the fake linter script.
			l, err := New(&toolchain.Toolchain{Python: "sh", Linter: files[0]}, false)
			require.NoError(t, err)

			got, err := l.Run(context.Background(), dir, []string{"src"})
			assert.Equal(t, tc.want, string(got))
			if tc.wantErr != "" {
				var lintErr *Error
				require.ErrorAs(t, err, &lintErr)
				assert.Equal(t, tc.wantErr, err.Error())
				assert.Equal(t, tc.want, lintErr.Report)
				return
			}
			require.NoError(t, err)
		})
	}
}
