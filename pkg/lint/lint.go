package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/stackb/closure-gazelle/pkg/procutil"
	"github.com/stackb/closure-gazelle/pkg/toolchain"
)

// Linter runs the Closure Linter (gjslint) or its fixer (fixjsstyle) over
// source roots.  Both tools are run with --strict.
type Linter struct {
	python string
	script string
	fix    bool
}

// New returns a gjslint runner, or a fixjsstyle runner if fix is true.
func New(tc *toolchain.Toolchain, fix bool) (*Linter, error) {
	tool := toolchain.Linter
	if fix {
		tool = toolchain.LinterFix
	}
	if err := tc.Require(toolchain.Python, tool); err != nil {
		return nil, err
	}
	return &Linter{
		python: tc.Python,
		script: tc.Get(tool),
		fix:    fix,
	}, nil
}

// Args returns the command line for the given roots.  Each root is passed
// with its own -r so that every directory is traversed recursively.
func (l *Linter) Args(roots []string) []string {
	args := []string{l.python, l.script, "--strict"}
	for _, root := range roots {
		args = append(args, "-r", root)
	}
	return args
}

// Run lints the roots and returns the tool report.  Lint failures are
// returned as a *Error that carries the report.
func (l *Linter) Run(ctx context.Context, dir string, roots []string) ([]byte, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("lint: no roots")
	}
	out, err := procutil.Run(ctx, dir, l.Args(roots)...)
	if err != nil {
		var exitErr *procutil.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode > 0 {
			return out, &Error{Fix: l.fix, ExitCode: exitErr.ExitCode, Report: string(out)}
		}
		return out, err
	}
	return out, nil
}

// Error is returned when the linter reports problems.
type Error struct {
	Fix      bool
	ExitCode int
	Report   string
}

func (e *Error) Error() string {
	tool := "gjslint"
	if e.Fix {
		tool = "fixjsstyle"
	}
	return fmt.Sprintf("%s failed (exit code %d)", tool, e.ExitCode)
}
