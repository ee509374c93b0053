package export

import "fmt"

// DataLoadError is returned when the resume could not be loaded. No rendering was attempted.
type DataLoadError struct {
	Source string
	Cause  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("failed to load resume data from %s: %v", e.Source, e.Cause)
}

func (e *DataLoadError) Unwrap() error {
	return e.Cause
}

// RenderError is returned when a renderer or its engine fails.
type RenderError struct {
	Format Format
	Cause  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to generate %s: %v", e.Format, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
