// Package exitcode provides the exit statuses of the do CLI for scripts and
// CI jobs that wrap it.
package exitcode

// Exit codes returned by the do CLI. A failed external tool (git, the
// builder, the uploader, the test runner) passes its own status through
// instead of one of these.
const (
	// Success indicates the command completed successfully.
	Success = 0

	// Failure indicates a usage error, an aborted publish or a failed step.
	Failure = 1

	// ConfigError indicates an invalid release.yaml.
	ConfigError = 2
)
