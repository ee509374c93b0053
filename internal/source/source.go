// Package source loads ResumeData from files, URLs, raw bytes or the database.
// Every source runs the same decode path: strip bookkeeping fields, validate
// against the resume schema, then unmarshal.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/resume-docgen/internal/db"
	"github.com/jonathan/resume-docgen/internal/fetch"
	"github.com/jonathan/resume-docgen/internal/schemas"
	"github.com/jonathan/resume-docgen/internal/types"
)

// StrippedFields are removed from the raw document before validation.
var StrippedFields = []string{"uploadedAt", "lastModified"}

// Error reports a source that could not be read, parsed or validated.
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("source %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("source %s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Source produces one resume document.
type Source interface {
	Load(ctx context.Context) (*types.ResumeData, error)
	Describe() string
}

// Clean removes the stripped fields from a raw JSON object.
func Clean(raw []byte) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("document is not a JSON object: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("document is null")
	}

	changed := false
	for _, name := range StrippedFields {
		if _, ok := fields[name]; ok {
			delete(fields, name)
			changed = true
		}
	}
	if !changed {
		return raw, nil
	}
	return json.Marshal(fields)
}

// Decode cleans, validates and unmarshals a raw resume document.
func Decode(name string, raw []byte) (*types.ResumeData, error) {
	cleaned, err := Clean(raw)
	if err != nil {
		return nil, &Error{Source: name, Message: "failed to parse document", Cause: err}
	}
	if err := schemas.ValidateResume(cleaned); err != nil {
		return nil, &Error{Source: name, Message: "document failed schema validation", Cause: err}
	}

	var data types.ResumeData
	if err := json.Unmarshal(cleaned, &data); err != nil {
		return nil, &Error{Source: name, Message: "failed to decode document", Cause: err}
	}
	return &data, nil
}

// Bytes is an in-memory document.
type Bytes struct {
	Name string
	Raw  []byte
}

// Load decodes the bytes.
func (b Bytes) Load(ctx context.Context) (*types.ResumeData, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Source: b.Describe(), Message: "load cancelled", Cause: err}
	}
	return Decode(b.Describe(), b.Raw)
}

func (b Bytes) Describe() string {
	if b.Name == "" {
		return "bytes"
	}
	return b.Name
}

// File reads a document from disk.
type File struct {
	Path string
}

// Load reads and decodes the file.
func (f File) Load(ctx context.Context) (*types.ResumeData, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Source: f.Describe(), Message: "load cancelled", Cause: err}
	}
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, &Error{Source: f.Describe(), Message: "failed to read file", Cause: err}
	}
	return Decode(f.Describe(), raw)
}

func (f File) Describe() string {
	return "file " + f.Path
}

// URL fetches a document over HTTP.
type URL struct {
	Address string
	Options *fetch.Options
}

// Load fetches and decodes the document. Non-2xx responses fail the load.
func (u URL) Load(ctx context.Context) (*types.ResumeData, error) {
	raw, err := fetch.JSON(ctx, u.Address, u.Options)
	if err != nil {
		return nil, &Error{Source: u.Describe(), Message: "failed to fetch document", Cause: err}
	}
	return Decode(u.Describe(), raw)
}

func (u URL) Describe() string {
	return "url " + u.Address
}

// ResumeStore is the database surface needed to load stored resumes.
type ResumeStore interface {
	GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
}

// Stored loads a document saved in the database.
type Stored struct {
	Store ResumeStore
	ID    uuid.UUID
}

// Load reads and decodes the stored document.
func (s Stored) Load(ctx context.Context) (*types.ResumeData, error) {
	if s.Store == nil {
		return nil, &Error{Source: s.Describe(), Message: "no resume store configured"}
	}
	resume, err := s.Store.GetResume(ctx, s.ID)
	if err != nil {
		return nil, &Error{Source: s.Describe(), Message: "failed to load resume", Cause: err}
	}
	return Decode(s.Describe(), resume.Content)
}

func (s Stored) Describe() string {
	return "resume " + s.ID.String()
}
