package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Input errors (INPUT-001 to INPUT-099)
	ErrCodeGoalRequired  ErrorCode = "INPUT-001"
	ErrCodeUsersRequired ErrorCode = "INPUT-002"
	ErrCodeInvalidValue  ErrorCode = "INPUT-003"

	// Spec errors (SPEC-001 to SPEC-099)
	ErrCodeSpecNotFound ErrorCode = "SPEC-001"
	ErrCodeItemNotFound ErrorCode = "SPEC-002"
	ErrCodeRiskNotFound ErrorCode = "SPEC-003"

	// Storage errors (STORE-001 to STORE-099)
	ErrCodeStoreWriteFailed ErrorCode = "STORE-001"
	ErrCodeStoreOpenFailed  ErrorCode = "STORE-002"

	// Export errors (EXPORT-001 to EXPORT-099)
	ErrCodeExportWriteFailed ErrorCode = "EXPORT-001"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigLoadFailed ErrorCode = "CONFIG-001"
)

const docsBase = "https://github.com/felixgeelhaar/specflow"

// SpecflowError represents an enhanced error with code, suggestions, and documentation
type SpecflowError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *SpecflowError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *SpecflowError) Unwrap() error {
	return e.Cause
}

// New creates a new SpecflowError
func New(code ErrorCode, message string) *SpecflowError {
	return &SpecflowError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new SpecflowError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *SpecflowError {
	return &SpecflowError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *SpecflowError) WithSuggestion(suggestion string) *SpecflowError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *SpecflowError) WithSuggestions(suggestions ...string) *SpecflowError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *SpecflowError) WithDocs(url string) *SpecflowError {
	e.DocsURL = url
	return e
}

// CodeOf returns the code of the first SpecflowError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var se *SpecflowError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return "", false
}

// HasCode reports whether err carries code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	got, ok := CodeOf(err)
	return ok && got == code
}

// IsInput reports whether err is a caller input error.
func IsInput(err error) bool {
	code, ok := CodeOf(err)
	return ok && strings.HasPrefix(string(code), "INPUT-")
}

// IsNotFound reports whether err is a missing spec, item, or risk.
func IsNotFound(err error) bool {
	code, ok := CodeOf(err)
	if !ok {
		return false
	}
	switch code {
	case ErrCodeSpecNotFound, ErrCodeItemNotFound, ErrCodeRiskNotFound:
		return true
	}
	return false
}

// Common error constructors for frequently used errors

// NewGoalRequiredError reports an empty goal.
func NewGoalRequiredError() *SpecflowError {
	return New(ErrCodeGoalRequired, "goal is required").
		WithSuggestion("Pass --goal \"<what you want to build>\"").
		WithSuggestion("Run 'specflow generate --interactive' to fill the form")
}

// NewUsersRequiredError reports empty target users.
func NewUsersRequiredError() *SpecflowError {
	return New(ErrCodeUsersRequired, "target users are required").
		WithSuggestion("Pass --users \"<who this is for>\"").
		WithSuggestion("Known user types: end user, admin, team member, manager, developer")
}

// NewInvalidValueError reports a value outside an enumerated set.
func NewInvalidValueError(field, value string, allowed []string) *SpecflowError {
	return New(ErrCodeInvalidValue, fmt.Sprintf("invalid %s: %q", field, value)).
		WithSuggestion(fmt.Sprintf("Use one of: %s", strings.Join(allowed, ", ")))
}

// NewSpecNotFoundError reports an unknown spec id.
func NewSpecNotFoundError(id string) *SpecflowError {
	return New(ErrCodeSpecNotFound, fmt.Sprintf("spec not found: %s", id)).
		WithSuggestion("Run 'specflow list' to see saved specs").
		WithSuggestion("Only the 5 most recent specs are kept").
		WithDocs(docsBase + "#history")
}

// NewItemNotFoundError reports an unknown story or task id.
func NewItemNotFoundError(specID, itemID string) *SpecflowError {
	return New(ErrCodeItemNotFound, fmt.Sprintf("item %s not found in spec %s", itemID, specID)).
		WithSuggestion(fmt.Sprintf("Run 'specflow show %s' to list item ids", specID))
}

// NewRiskNotFoundError reports an unknown risk id.
func NewRiskNotFoundError(specID, riskID string) *SpecflowError {
	return New(ErrCodeRiskNotFound, fmt.Sprintf("risk %s not found in spec %s", riskID, specID)).
		WithSuggestion(fmt.Sprintf("Run 'specflow show %s' to list risk ids", specID))
}

// NewStoreWriteError wraps a failed persistence write.
func NewStoreWriteError(location string, cause error) *SpecflowError {
	return Wrap(ErrCodeStoreWriteFailed, fmt.Sprintf("failed to persist specs to %s", location), cause).
		WithSuggestion("Check that the storage directory is writable").
		WithSuggestion("Set storage.path or SPECFLOW_STORAGE_PATH to another location")
}

// NewStoreOpenError wraps a failure to open the storage backend.
func NewStoreOpenError(backend, location string, cause error) *SpecflowError {
	return Wrap(ErrCodeStoreOpenFailed, fmt.Sprintf("failed to open %s storage at %s", backend, location), cause).
		WithSuggestion("Use storage.backend=file to fall back to the JSON store").
		WithDocs(docsBase + "#storage")
}

// NewExportWriteError wraps a failed export write.
func NewExportWriteError(path string, cause error) *SpecflowError {
	return Wrap(ErrCodeExportWriteFailed, fmt.Sprintf("failed to write export: %s", path), cause).
		WithSuggestion("Use --out - to print to stdout instead")
}

// NewConfigLoadError wraps a configuration read failure.
func NewConfigLoadError(path string, cause error) *SpecflowError {
	return Wrap(ErrCodeConfigLoadFailed, fmt.Sprintf("failed to load config: %s", path), cause).
		WithSuggestion("Run 'specflow config init' to write a fresh config file").
		WithSuggestion("Check the file syntax")
}
