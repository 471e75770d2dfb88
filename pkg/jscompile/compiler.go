package jscompile

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stackb/closure-gazelle/pkg/procutil"
	"github.com/stackb/closure-gazelle/pkg/toolchain"
)

// ErrNoOutput is returned when the compiler succeeds but writes nothing.
var ErrNoOutput = errors.New("javascript compilation failed: compiler produced no output")

// Compiler compiles an ordered list of javascript files into a single
// output.
type Compiler interface {
	Compile(ctx context.Context, inputs []string, flags []string) ([]byte, error)
}

// ClosureCompiler runs the Closure Compiler jar with java.
type ClosureCompiler struct {
	java   string
	jar    string
	dir    string
	logger zerolog.Logger
}

// NewClosureCompiler returns a compiler using the toolchain's java and
// compiler jar.  Commands run in dir (the current directory if empty).
func NewClosureCompiler(tc *toolchain.Toolchain, dir string, logger zerolog.Logger) (*ClosureCompiler, error) {
	if err := tc.Require(toolchain.Java, toolchain.Compiler); err != nil {
		return nil, err
	}
	return &ClosureCompiler{
		java:   tc.Java,
		jar:    tc.CompilerJar,
		dir:    dir,
		logger: logger,
	}, nil
}

// Args returns the command line for compiling inputs, in order, with the
// given extra flags.
func (c *ClosureCompiler) Args(inputs []string, flags []string) []string {
	args := make([]string, 0, 3+2*len(inputs)+len(flags))
	args = append(args, c.java, "-jar", c.jar)
	for _, input := range inputs {
		args = append(args, "--js", input)
	}
	args = append(args, flags...)
	return args
}

// Compile implements Compiler.  A failing compiler run is reported as a
// *CompileError.
func (c *ClosureCompiler) Compile(ctx context.Context, inputs []string, flags []string) ([]byte, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("compile: no inputs")
	}
	args := c.Args(inputs, flags)
	c.logger.Debug().Int("inputs", len(inputs)).Strs("flags", flags).Msg("running closure compiler")

	out, err := procutil.Run(ctx, c.dir, args...)
	if err != nil {
		var exitErr *procutil.ExitError
		if errors.As(err, &exitErr) {
			return nil, &CompileError{ExitCode: exitErr.ExitCode, Stderr: exitErr.Stderr}
		}
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoOutput
	}

	return out, nil
}

// CompileError is returned when the compiler exits non-zero.
type CompileError struct {
	ExitCode int
	Stderr   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("javascript compilation failed (exit code %d):\n%s", e.ExitCode, e.Stderr)
}
