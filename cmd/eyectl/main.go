// Command eyectl drives an eye supervisor from the shell.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/axondata/go-eye"
)

// Exit codes
const (
	exitOK = iota
	exitError
	exitMissingArgument
	exitCommandFailed
	exitConfigLoadFailed
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps an error to the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, eye.ErrMissingArgument):
		return exitMissingArgument
	case errors.Is(err, eye.ErrConfigLoadFailed):
		return exitConfigLoadFailed
	case errors.Is(err, eye.ErrCommandFailed):
		return exitCommandFailed
	default:
		return exitError
	}
}
