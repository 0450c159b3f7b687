// Package render writes the resolved configuration to disk as deployment
// platform artifacts and prints the bootstrap instruction list. This is the
// imperative shell around the pure resolution core.
package render

import (
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

// RenderError wraps errors with context about which artifact failed.
type RenderError struct {
	Path    string // artifact path relative to the project root
	Message string
	Err     error
}

func (e *RenderError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
