package cli

import (
	"errors"

	"github.com/yaklabco/wsfmt/pkg/runner"
)

// Exit codes for wsfmt.
const (
	// ExitSuccess indicates successful execution with no changes needed.
	ExitSuccess = 0

	// ExitChangesRequired indicates check mode found files that would change.
	ExitChangesRequired = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors (read, decode, or write).
	ExitIOError = 74
)

// ErrChangesRequired is returned when check mode finds files that would
// change. It carries no diagnostic value of its own; main suppresses the
// error log for it and maps it to ExitChangesRequired.
var ErrChangesRequired = errors.New("changes required")

// Sentinel errors that carry an exit code through cobra's Execute.
var (
	errUsage  = errors.New("invalid usage")
	errConfig = errors.New("failed to load configuration")
	errIO     = errors.New("file processing failed")
)

// ExitCodeFromResult determines the exit code for a completed run.
// File errors outrank changes-required: a run that could not read or
// write some files is an I/O failure even when check mode also found
// files to fix.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitIOError
	}

	if check && result.HasChanges() {
		return ExitChangesRequired
	}

	return ExitSuccess
}

// ExitCodeForError maps an error returned by Execute to a process exit code.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrChangesRequired):
		return ExitChangesRequired
	case errors.Is(err, errUsage):
		return ExitInvalidUsage
	case errors.Is(err, errConfig):
		return ExitConfigError
	case errors.Is(err, errIO):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
