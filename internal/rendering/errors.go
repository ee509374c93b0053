// Package rendering walks resume data into format-agnostic render instructions that the
// DOCX and PDF renderers map onto their own node types.
package rendering

import "fmt"

// RenderError represents a failure while building or serializing a document
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
