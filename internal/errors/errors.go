// Package errors provides structured error types and exit codes for do.
package errors

import (
	"errors"
	"fmt"

	"github.com/iafisher/do/pkg/exitcode"
)

// Exit codes returned by the do CLI.
const (
	ExitSuccess     = exitcode.Success     // Success
	ExitFailure     = exitcode.Failure     // Usage error, aborted publish, failed step
	ExitConfigError = exitcode.ConfigError // Invalid release.yaml
	ExitToolFailure = exitcode.Failure     // External tool failed without a usable exit status
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindUsage
	KindVersionUnchanged
	KindDirtyRepository
	KindDeclined
	KindMetadata
	KindConfig
	KindTool
	KindCanceled
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindVersionUnchanged:
		return "version unchanged"
	case KindDirtyRepository:
		return "dirty repository"
	case KindDeclined:
		return "declined"
	case KindMetadata:
		return "metadata"
	case KindConfig:
		return "config"
	case KindTool:
		return "tool"
	case KindCanceled:
		return "canceled"
	default:
		return "runtime"
	}
}

// ReleaseError is the base error type for do.
type ReleaseError struct {
	Kind    ErrorKind
	Message string
	Step    string   // Publish step name if applicable
	Paths   []string // Offending paths for KindDirtyRepository
	Status  int      // Exit status of the external tool for KindTool
	Cause   error    // Underlying error
}

func (e *ReleaseError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Step != "" {
		return fmt.Sprintf("[%s] %s", e.Step, msg)
	}
	return msg
}

func (e *ReleaseError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *ReleaseError) ExitCode() int {
	switch e.Kind {
	case KindConfig:
		return ExitConfigError
	case KindTool:
		if e.Status > 0 {
			return e.Status
		}
		return ExitToolFailure
	default:
		return ExitFailure
	}
}

// Usage creates a usage error.
func Usage(message string) *ReleaseError {
	return &ReleaseError{Kind: KindUsage, Message: message}
}

// Usagef creates a usage error with formatting.
func Usagef(format string, args ...interface{}) *ReleaseError {
	return Usage(fmt.Sprintf(format, args...))
}

// VersionUnchanged reports a publish request for the version already recorded.
func VersionUnchanged(version string) *ReleaseError {
	return &ReleaseError{
		Kind:    KindVersionUnchanged,
		Message: fmt.Sprintf("version unchanged: %s is already the recorded version", version),
	}
}

// DirtyRepository reports uncommitted changes in the working tree.
func DirtyRepository(paths []string) *ReleaseError {
	return &ReleaseError{
		Kind:    KindDirtyRepository,
		Message: fmt.Sprintf("working tree has %d uncommitted path(s); commit or stash them first", len(paths)),
		Paths:   paths,
	}
}

// Declined reports a negative answer at the confirmation prompt.
func Declined() *ReleaseError {
	return &ReleaseError{Kind: KindDeclined, Message: "aborted by operator"}
}

// Metadata creates a "metadata unreadable" error.
func Metadata(path string, cause error) *ReleaseError {
	return &ReleaseError{
		Kind:    KindMetadata,
		Message: fmt.Sprintf("metadata unreadable: %s", path),
		Cause:   cause,
	}
}

// Config creates a new configuration error.
func Config(message string) *ReleaseError {
	return &ReleaseError{Kind: KindConfig, Message: message}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *ReleaseError {
	return Config(fmt.Sprintf(format, args...))
}

// Tool reports a failed external command. status is the command's exit
// status; pass ExitToolFailure when the command never produced one. A
// non-positive status is stored as ExitToolFailure so a tool error can
// never exit 0.
func Tool(command string, status int, cause error) *ReleaseError {
	if status <= 0 {
		status = ExitToolFailure
	}
	return &ReleaseError{
		Kind:    KindTool,
		Message: fmt.Sprintf("%s failed", command),
		Status:  status,
		Cause:   cause,
	}
}

// Canceled wraps a context cancellation.
func Canceled(cause error) *ReleaseError {
	return &ReleaseError{Kind: KindCanceled, Message: "interrupted", Cause: cause}
}

// InStep returns err annotated with the publish step it failed in.
// Errors that are not *ReleaseError are wrapped as runtime errors.
func InStep(step string, err error) *ReleaseError {
	var re *ReleaseError
	if errors.As(err, &re) {
		cp := *re
		cp.Step = step
		return &cp
	}
	return &ReleaseError{Kind: KindRuntime, Message: "step failed", Step: step, Cause: err}
}

// KindOf returns the kind of err, or KindRuntime if err is not a *ReleaseError.
func KindOf(err error) ErrorKind {
	var re *ReleaseError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindRuntime
}

// Is reports whether err is a *ReleaseError of the given kind.
func Is(err error, kind ErrorKind) bool {
	var re *ReleaseError
	return errors.As(err, &re) && re.Kind == kind
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var re *ReleaseError
	if errors.As(err, &re) {
		return re.ExitCode()
	}
	return ExitFailure
}
