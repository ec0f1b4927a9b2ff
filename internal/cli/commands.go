package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/iafisher/do/internal/command"
	"github.com/iafisher/do/internal/errors"
	"github.com/iafisher/do/internal/logging"
	"github.com/iafisher/do/internal/output"
	"github.com/iafisher/do/internal/project"
	"github.com/iafisher/do/internal/prompt"
	"github.com/iafisher/do/internal/release"
	"github.com/iafisher/do/internal/testrunner"
)

// out is the shared output writer for CLI commands.
var out = output.New()

// stdin feeds the publish confirmation prompt.
var stdin io.Reader = os.Stdin

// newRunner creates the runner for external tools. Replaced in tests.
var newRunner = func(logger *log.Logger) command.Runner {
	return command.NewExecRunner(logger)
}

// loadProject loads the project configuration and handles errors uniformly.
// Returns the project and exit code 0 on success, or nil and the exit code
// on failure (2 for configuration errors).
func loadProject() (*project.Project, int) {
	proj, err := project.LoadProject()
	if err != nil {
		out.ErrorPrefix("%v", err)
		return nil, errors.GetExitCode(err)
	}
	for _, w := range proj.Warnings {
		out.Warning("%s: %s", project.ConfigFileName, w)
	}
	return proj, 0
}

// interruptContext is canceled on SIGINT so the publish workflow stops
// before its next step or while waiting at the confirmation prompt.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func cmdTest(args []string) int {
	proj, exitCode := loadProject()
	if proj == nil {
		return exitCode
	}

	logger := logging.New(os.Stderr)
	tr := testrunner.New(proj.Root, proj.Config.Test.Command, newRunner(logger))

	ctx, stop := interruptContext()
	defer stop()

	code, err := tr.Run(ctx, args)
	if err != nil {
		out.ErrorPrefix("test: %v", err)
	}
	return code
}

// parsePublishArgs accepts --dry-run anywhere. The first positional
// argument is the version; any further ones are ignored.
func parsePublishArgs(args []string) (release.Options, error) {
	var opts release.Options
	var positional []string

	for _, arg := range args {
		switch {
		case arg == "--dry-run":
			opts.DryRun = true
		case strings.HasPrefix(arg, "-"):
			return opts, errors.Usagef("unknown flag %q", arg)
		default:
			positional = append(positional, arg)
		}
	}

	if len(positional) == 0 {
		return opts, errors.Usage("version required")
	}
	opts.Version = positional[0]
	return opts, nil
}

func cmdPublish(args []string) int {
	opts, err := parsePublishArgs(args)
	if err != nil {
		out.ErrorPrefix("publish: %v", err)
		printUsage()
		return errors.GetExitCode(err)
	}

	proj, exitCode := loadProject()
	if proj == nil {
		return exitCode
	}

	logger := logging.New(os.Stderr)
	publisher := release.NewPublisher(proj.Root, proj.Config, newRunner(logger), prompt.New(stdin, out))
	publisher.SetOutput(out)
	publisher.SetLogger(logger)

	ctx, stop := interruptContext()
	defer stop()

	if err := publisher.Publish(ctx, opts); err != nil {
		out.ErrorPrefix("publish: %v", err)
		return errors.GetExitCode(err)
	}
	return errors.ExitSuccess
}
