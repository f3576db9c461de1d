package ux

import (
	"errors"
	"fmt"
	"strings"

	sferrors "github.com/felixgeelhaar/specflow/internal/errors"
)

// ErrorWithSuggestion wraps an error with helpful recovery suggestions
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\n💡 Suggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError analyzes an error and adds contextual suggestions. Coded
// errors already carry their own suggestions and are returned as is.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}

	var coded *sferrors.SpecflowError
	if errors.As(err, &coded) && len(coded.Suggestions) > 0 {
		return err
	}

	errMsg := err.Error()

	if strings.Contains(errMsg, "database is locked") || strings.Contains(errMsg, "SQLITE_BUSY") {
		return NewErrorWithSuggestion(err,
			"Another specflow process is using the store. Wait for it to finish, then try again")
	}

	if strings.Contains(errMsg, "permission denied") {
		return NewErrorWithSuggestion(err,
			"Check permissions on ~/.specflow or point storage.path at a writable location")
	}

	if strings.Contains(errMsg, "no such file or directory") {
		if strings.Contains(errMsg, "config") {
			return NewErrorWithSuggestion(err,
				"Create a config file with 'specflow config init'")
		}
		return NewErrorWithSuggestion(err,
			"Check that the path exists, or use --out - to print to stdout")
	}

	if strings.Contains(errMsg, "unknown command") {
		return NewErrorWithSuggestion(err,
			"Run 'specflow --help' to see available commands")
	}

	if strings.Contains(errMsg, "failed to") {
		return NewErrorWithSuggestion(err,
			fmt.Sprintf("Next steps: %s", SuggestNextSteps()))
	}

	return err
}

// FormatError provides consistent error formatting with context
func FormatError(err error, context string) error {
	if err == nil {
		return nil
	}

	enhanced := EnhanceError(err)
	if context != "" {
		return fmt.Errorf("%s: %w", context, enhanced)
	}
	return enhanced
}
