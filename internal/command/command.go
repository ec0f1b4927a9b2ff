// Package command runs the external tools the release workflow depends on
// (git, the package builder, the uploader, the test runner) and reports
// each outcome as an Invocation.
package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	doerrors "github.com/iafisher/do/internal/errors"
	"github.com/iafisher/do/internal/logging"
)

// Command describes one external tool call.
type Command struct {
	Name    string
	Args    []string
	Dir     string
	Capture bool // Capture stdout into Invocation.Output instead of streaming it
}

// New creates a Command from an argv slice running in dir.
func New(dir string, argv ...string) Command {
	c := Command{Dir: dir}
	if len(argv) > 0 {
		c.Name = argv[0]
		c.Args = append([]string(nil), argv[1:]...)
	}
	return c
}

// String returns the command line as it would be typed.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Invocation is the outcome of running a Command.
type Invocation struct {
	Command  Command
	ExitCode int    // -1 if the process never started or was killed
	Output   string // Captured stdout (Capture mode only)
	Err      error
}

// Success reports whether the command ran and exited with status 0.
func (inv Invocation) Success() bool {
	return inv.Err == nil && inv.ExitCode == 0
}

// AsError converts a failed invocation into a tool error carrying its
// exit status. Returns nil for successful invocations.
func (inv Invocation) AsError() error {
	if inv.Success() {
		return nil
	}
	status := inv.ExitCode
	if status <= 0 {
		status = doerrors.ExitToolFailure
	}
	return doerrors.Tool(inv.Command.String(), status, inv.Err)
}

// Runner executes commands. Implementations must block until the command
// has finished.
type Runner interface {
	Run(ctx context.Context, cmd Command) Invocation
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger
}

// NewExecRunner creates an ExecRunner wired to the process's standard streams.
func NewExecRunner(logger *log.Logger) *ExecRunner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// Run executes cmd and waits for it to finish.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) Invocation {
	inv := Invocation{Command: cmd}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = os.Environ()
	c.Stdin = r.Stdin
	c.Stderr = r.Stderr

	var captured bytes.Buffer
	if cmd.Capture {
		c.Stdout = &captured
	} else {
		c.Stdout = r.Stdout
	}

	r.Logger.Debug("running command", "cmd", cmd.String(), "dir", cmd.Dir)
	start := time.Now()
	err := c.Run()
	inv.Output = captured.String()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		inv.ExitCode = 0
	case errors.As(err, &exitErr):
		inv.ExitCode = exitErr.ExitCode()
		inv.Err = err
	default:
		inv.ExitCode = -1
		inv.Err = err
	}

	r.Logger.Debug("command finished",
		"cmd", cmd.Name,
		"exit", inv.ExitCode,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	if !inv.Success() {
		r.Logger.Warn("command failed", "cmd", cmd.String(), "exit", inv.ExitCode, "err", inv.Err)
	}
	return inv
}
