// Package testrunner forwards "do test" arguments to the project's test
// runner and reports its exit status.
package testrunner

import (
	"context"

	"github.com/iafisher/do/internal/command"
	doerrors "github.com/iafisher/do/internal/errors"
)

// Runner runs the configured test command in the project root.
type Runner struct {
	root   string
	argv   []string
	runner command.Runner
}

// New creates a Runner for argv, executed in root.
func New(root string, argv []string, runner command.Runner) *Runner {
	return &Runner{root: root, argv: argv, runner: runner}
}

// Command returns the full command line for args.
func (r *Runner) Command(args []string) command.Command {
	argv := append(append([]string(nil), r.argv...), args...)
	return command.New(r.root, argv...)
}

// Run executes the test command with args appended verbatim and returns
// its exit status. An error is returned only when the command could not
// be started; the status is then ExitToolFailure.
func (r *Runner) Run(ctx context.Context, args []string) (int, error) {
	inv := r.runner.Run(ctx, r.Command(args))
	if inv.Success() {
		return doerrors.ExitSuccess, nil
	}
	if inv.ExitCode < 0 {
		return doerrors.ExitToolFailure, inv.AsError()
	}
	return inv.ExitCode, nil
}
