// Package descriptor contains pure functions for parsing and validating
// application topology descriptors. This is part of the Functional Core -
// all functions are pure with no I/O.
package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Input validation errors
	ErrEmptyInput = errors.New("descriptor is empty")

	// YAML parsing errors
	ErrInvalidYAML = errors.New("invalid YAML syntax")

	// Structure errors
	ErrWrongShape = errors.New("unexpected descriptor structure")

	// Duplicate mapping keys at the same nesting level. Never silently
	// last-write-wins: a repeated environment key would otherwise drop
	// deployment config without a diagnostic.
	ErrDuplicateKey = errors.New("duplicate key")
)

// LoadError wraps errors with context about where loading failed.
type LoadError struct {
	Field   string // e.g. "services[0].environments"
	Line    int    // 1-based line in the source document, 0 if unknown
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(field string, line int, message string, err error) *LoadError {
	return &LoadError{
		Field:   field,
		Line:    line,
		Message: message,
		Err:     err,
	}
}

// =============================================================================
// Validation Errors
// =============================================================================

// FieldError describes a single semantic-invariant violation.
type FieldError struct {
	Field   string // e.g. "services.api.environments.staging"
	Message string
}

func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationError aggregates every violation found in one validation pass,
// so the operator can fix the descriptor in a single edit cycle.
type ValidationError struct {
	Problems []*FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("descriptor validation failed: %s", e.Problems[0])
	}
	lines := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		lines = append(lines, "  - "+p.Error())
	}
	return fmt.Sprintf("descriptor validation failed with %d problems:\n%s",
		len(e.Problems), strings.Join(lines, "\n"))
}
