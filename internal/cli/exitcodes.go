package cli

import (
	"errors"
	"os"

	"github.com/yaklabco/dapic/pkg/fsutil"
	"github.com/yaklabco/dapic/pkg/runner"
)

// Exit codes for dapic.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitCheckErrors indicates the check completed but found errors.
	ExitCheckErrors = 1

	// ExitCheckWarnings indicates the check found warnings in strict mode.
	ExitCheckWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors that select an exit code.
var (
	// ErrCheckFailed is returned when a check finds errors.
	ErrCheckFailed = errors.New("check found errors")

	// ErrStrictWarnings is returned when a strict check finds warnings.
	ErrStrictWarnings = errors.New("check found warnings in strict mode")

	// ErrUsage marks invalid flags or arguments.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration that could not be loaded.
	ErrConfig = errors.New("invalid configuration")
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasFailures():
		return ExitCheckErrors
	case strict && result.HasWarnings():
		return ExitCheckWarnings
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrCheckFailed):
		return ExitCheckErrors
	case errors.Is(err, ErrStrictWarnings):
		return ExitCheckWarnings
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrInvalidUTF8),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsReported reports whether err only signals an outcome that the command
// has already printed.
func IsReported(err error) bool {
	return errors.Is(err, ErrCheckFailed) || errors.Is(err, ErrStrictWarnings)
}
