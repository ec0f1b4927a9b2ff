// Package cli provides the command-line interface for do.
package cli

import (
	"github.com/iafisher/do/internal/errors"
)

// Run executes the CLI with the given arguments and returns an exit code.
// Anything other than "test" or "publish" prints usage and fails, including
// help flags.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return errors.ExitFailure
	}

	cmd, cmdArgs := args[0], args[1:]

	switch cmd {
	// Everything after "test" belongs to the test runner, including flags.
	case "test":
		return cmdTest(cmdArgs)
	case "publish":
		return cmdPublish(cmdArgs)

	default:
		printUsage()
		return errors.ExitFailure
	}
}

// printUsage prints the two-line usage summary to stdout.
func printUsage() {
	out.Println("usage: do test [args...]")
	out.Println("       do publish <version>")
}
