// Package validator checks target drafts before they are submitted for
// registration, and accumulated targets when a document is loaded.
package validator

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation failures.
var (
	// ErrMissingName indicates a target has no name.
	ErrMissingName = errors.New("target name is required")

	// ErrMissingCommand indicates a stdio target has no command.
	ErrMissingCommand = errors.New("stdio target requires cmd")

	// ErrMissingHost indicates a network target has no host.
	ErrMissingHost = errors.New("host is required")

	// ErrInvalidPort indicates a port that is not an integer in [1, 65535].
	ErrInvalidPort = errors.New("port must be an integer between 1 and 65535")

	// ErrMissingPath indicates an sse or a2a target has no path.
	ErrMissingPath = errors.New("path is required")

	// ErrUnknownKind indicates a kind other than stdio, sse, openapi or a2a.
	ErrUnknownKind = errors.New("unknown target kind")

	// ErrCategoryMismatch indicates a kind that cannot be registered under
	// the selected category.
	ErrCategoryMismatch = errors.New("kind does not belong to category")

	// ErrDuplicateName indicates the name is already used by an accumulated target.
	ErrDuplicateName = errors.New("target name already in use")

	// ErrInconsistentShape indicates zero or several populated variant groups.
	ErrInconsistentShape = errors.New("target must populate exactly one variant")
)

// Severity indicates whether a validation issue is an error or warning.
type Severity int

const (
	// SeverityError indicates an issue that blocks submission.
	SeverityError Severity = iota

	// SeverityWarning indicates an issue the operator may knowingly accept.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ValidationError represents a single validation issue with context.
type ValidationError struct {
	// TargetName identifies which target has the issue, when known.
	TargetName string

	// Field identifies which field has the issue.
	Field string

	// Message is a human-readable description of the problem.
	Message string

	// Severity indicates whether this is an error or warning.
	Severity Severity

	// Err is the underlying sentinel error, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	prefix := e.Severity.String()

	if e.TargetName != "" && e.Field != "" {
		return fmt.Sprintf("%s: target %q field %q: %s", prefix, e.TargetName, e.Field, e.Message)
	}
	if e.TargetName != "" {
		return fmt.Sprintf("%s: target %q: %s", prefix, e.TargetName, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field %q: %s", prefix, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// HasErrors returns true if any of the issues have error severity.
func HasErrors(errs []*ValidationError) bool {
	for _, err := range errs {
		if err.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any of the issues have warning severity.
func HasWarnings(errs []*ValidationError) bool {
	for _, err := range errs {
		if err.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Errors returns only the issues with error severity.
func Errors(errs []*ValidationError) []*ValidationError {
	return filter(errs, SeverityError)
}

// Warnings returns only the issues with warning severity.
func Warnings(errs []*ValidationError) []*ValidationError {
	return filter(errs, SeverityWarning)
}

func filter(errs []*ValidationError, s Severity) []*ValidationError {
	var result []*ValidationError
	for _, err := range errs {
		if err.Severity == s {
			result = append(result, err)
		}
	}
	return result
}

// ByField groups issues by field name, for inline display next to form inputs.
func ByField(errs []*ValidationError) map[string][]*ValidationError {
	if len(errs) == 0 {
		return nil
	}
	m := make(map[string][]*ValidationError)
	for _, err := range errs {
		m[err.Field] = append(m[err.Field], err)
	}
	return m
}
