package eye

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// execWaitDelay bounds how long Run waits for output pipes after the shell
// is killed by a cancelled context
const execWaitDelay = time.Second

// Runner executes a single command line and returns its captured stdout.
type Runner interface {
	Run(ctx context.Context, command string) (string, error)
}

// RunnerFunc adapts a function to the Runner interface
type RunnerFunc func(ctx context.Context, command string) (string, error)

// Run calls f(ctx, command)
func (f RunnerFunc) Run(ctx context.Context, command string) (string, error) {
	return f(ctx, command)
}

// ExecRunner runs command lines through a shell, the way a shell backtick
// would. Exit status is ignored; eye reports failures on stdout.
type ExecRunner struct {
	// Shell is the interpreter invoked as `Shell -c command`
	Shell string
}

var _ Runner = (*ExecRunner)(nil)

// NewExecRunner creates an ExecRunner using DefaultShell
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Shell: DefaultShell}
}

// Run executes command and returns its stdout. A non-zero exit still returns
// the captured output with a nil error; only a failure to spawn the shell or
// a cancelled context is reported.
func (r *ExecRunner) Run(ctx context.Context, command string) (string, error) {
	shell := r.Shell
	if shell == "" {
		shell = DefaultShell
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.WaitDelay = execWaitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stdout.String(), ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.String(), nil
		}
		return "", fmt.Errorf("%w (stderr: %s)", err, stderr.String())
	}

	return stdout.String(), nil
}
