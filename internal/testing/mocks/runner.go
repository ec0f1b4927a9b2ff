// Package mocks provides shared test doubles for do packages.
package mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/iafisher/do/internal/command"
)

// Runner implements command.Runner for testing. It records every command
// in call order and answers from registered responses.
// Use NewRunner() to create instances with a fluent builder API.
type Runner struct {
	mu        sync.Mutex
	calls     []command.Command
	responses []response

	// RunFunc, if set, is called after a matching response (or none) is
	// chosen and may perform side effects such as writing build artifacts.
	RunFunc func(ctx context.Context, cmd command.Command)
}

type response struct {
	prefix   string
	exitCode int
	output   string
}

// NewRunner creates a Runner where every command succeeds with no output.
func NewRunner() *Runner {
	return &Runner{}
}

// WithOutput makes commands whose line starts with prefix return output.
func (r *Runner) WithOutput(prefix, output string) *Runner {
	r.responses = append(r.responses, response{prefix: prefix, output: output})
	return r
}

// WithFailure makes commands whose line starts with prefix exit with code.
func (r *Runner) WithFailure(prefix string, code int) *Runner {
	r.responses = append(r.responses, response{prefix: prefix, exitCode: code})
	return r
}

// Run records cmd and returns the first matching response.
func (r *Runner) Run(ctx context.Context, cmd command.Command) command.Invocation {
	r.mu.Lock()
	r.calls = append(r.calls, cmd)
	var resp response
	for _, candidate := range r.responses {
		if strings.HasPrefix(cmd.String(), candidate.prefix) {
			resp = candidate
			break
		}
	}
	r.mu.Unlock()

	if r.RunFunc != nil {
		r.RunFunc(ctx, cmd)
	}

	inv := command.Invocation{Command: cmd, ExitCode: resp.exitCode}
	if cmd.Capture {
		inv.Output = resp.output
	}
	if resp.exitCode != 0 {
		inv.Err = fmt.Errorf("exit status %d", resp.exitCode)
	}
	if err := ctx.Err(); err != nil {
		inv.ExitCode = -1
		inv.Err = errors.Join(inv.Err, err)
	}
	return inv
}

// Calls returns the recorded commands.
func (r *Runner) Calls() []command.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]command.Command, len(r.calls))
	copy(result, r.calls)
	return result
}

// Lines returns the recorded commands as command lines, in call order.
func (r *Runner) Lines() []string {
	calls := r.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

// Called reports whether any recorded command line starts with prefix.
func (r *Runner) Called(prefix string) bool {
	for _, line := range r.Lines() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// Reset clears recorded calls but keeps responses.
func (r *Runner) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}
