package procutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
)

func CmdExitCode(cmd *exec.Cmd, err error) int {
	if err == nil {
		// success, exitCode should be 0 if go is ok
		ws := cmd.ProcessState.Sys().(syscall.WaitStatus)
		return ws.ExitStatus()
	}

	// try to get the exit code
	var exitError *exec.ExitError
	if errors.As(err, &exitError) {
		ws := exitError.Sys().(syscall.WaitStatus)
		return ws.ExitStatus()
	}

	// This will happen (in OSX) if `name` is not available in $PATH,
	// in this situation, exit code could not be get, and stderr will be
	// empty string very likely, so we use the default fail code, and format err
	// to string and set to stderr
	return -1
}

// ExitError is returned by Run when the command exits non-zero or cannot be
// started.
type ExitError struct {
	// Args is the command line.
	Args []string
	// ExitCode is the process exit code, or -1 if it did not run.
	ExitCode int
	// Stderr holds the captured standard error.
	Stderr string
	// Err is the underlying error.
	Err error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s: exit code %d", strings.Join(e.Args, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Run executes the command and returns its standard output.  If the command
// fails the returned error is an *ExitError carrying the captured stderr.
func Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("procutil.Run: empty command")
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if code := CmdExitCode(cmd, err); err != nil || code != 0 {
		return stdout.Bytes(), &ExitError{
			Args:     args,
			ExitCode: code,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}

	return stdout.Bytes(), nil
}
