package exitcode

import (
	"context"
	"errors"
	"os"
	"strings"

	sferrors "github.com/felixgeelhaar/specflow/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing input, unknown values)
	UsageError = 2

	// NotFound indicates an unknown spec, item, or risk id
	NotFound = 3

	// StorageError indicates the history store could not be opened or written
	StorageError = 4

	// Interrupted indicates the command was cancelled (Ctrl+C)
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code.
// Coded errors are classified by code; anything else falls back to message
// matching for errors produced by cobra and the standard library.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	if errors.Is(err, context.Canceled) {
		return Interrupted
	}

	if code, ok := sferrors.CodeOf(err); ok {
		switch {
		case sferrors.IsInput(err):
			return UsageError
		case sferrors.IsNotFound(err):
			return NotFound
		case code == sferrors.ErrCodeStoreWriteFailed, code == sferrors.ErrCodeStoreOpenFailed:
			return StorageError
		default:
			return GeneralError
		}
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "invalid flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "unknown shorthand flag") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "missing argument") {
		return UsageError
	}
	if strings.Contains(errMsg, "accepts") && strings.Contains(errMsg, "arg(s)") {
		return UsageError
	}

	if strings.Contains(errMsg, "interrupted") {
		return Interrupted
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case NotFound:
		return "Spec, item, or risk not found"
	case StorageError:
		return "Storage error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
