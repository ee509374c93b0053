// Package schemas holds the JSON Schema documents shipped with the binary.
package schemas

import _ "embed"

// Resume is the JSON Schema for ResumeData input documents.
//
//go:embed resume.schema.json
var Resume string
