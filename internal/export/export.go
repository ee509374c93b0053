// Package export selects a renderer by format, names the resulting artifact and
// hands it to callers or savers.
package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-docgen/internal/docx"
	"github.com/jonathan/resume-docgen/internal/layout"
	"github.com/jonathan/resume-docgen/internal/source"
	"github.com/jonathan/resume-docgen/internal/types"
	"github.com/jonathan/resume-docgen/internal/typography"
	"golang.org/x/sync/errgroup"
)

// Renderer turns resume data into document bytes.
type Renderer interface {
	Render(ctx context.Context, data *types.ResumeData) ([]byte, error)
}

// Artifact is one generated document.
type Artifact struct {
	Format      Format
	Filename    string
	ContentType string
	Engine      string
	Data        []byte
}

// Saver persists an artifact and returns where it went.
type Saver interface {
	Save(ctx context.Context, artifact *Artifact) (string, error)
}

// Option configures a Generator.
type Option func(*Generator)

// WithRenderer replaces the renderer for a format.
func WithRenderer(format Format, engine string, r Renderer) Option {
	return func(g *Generator) {
		g.renderers[format] = r
		g.engines[format] = engine
	}
}

// Generator produces resume documents in every supported format.
type Generator struct {
	renderers map[Format]Renderer
	engines   map[Format]string
}

// NewGenerator wires the DOCX renderer and the page-layout renderer to one registry.
// A nil engine prints PDFs with gofpdf.
func NewGenerator(registry typography.Registry, engine layout.Engine, opts ...Option) *Generator {
	pdf := layout.NewRenderer(registry, engine)
	g := &Generator{
		renderers: map[Format]Renderer{
			FormatDOCX: docx.NewRenderer(registry),
			FormatPDF:  pdf,
		},
		engines: map[Format]string{
			FormatDOCX: "docx",
			FormatPDF:  pdf.Engine().Name(),
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders the resume in one format.
func (g *Generator) Generate(ctx context.Context, data *types.ResumeData, format Format) (*Artifact, error) {
	r, ok := g.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	out, err := r.Render(ctx, data)
	if err != nil {
		log.Printf("[export] %s generation failed: %v", format, err)
		return nil, &RenderError{Format: format, Cause: err}
	}

	artifact := &Artifact{
		Format:      format,
		Filename:    Filename(data, format),
		ContentType: format.ContentType(),
		Engine:      g.engines[format],
		Data:        out,
	}
	log.Printf("[export] generated %s (%d bytes, engine %s)", artifact.Filename, len(out), artifact.Engine)
	return artifact, nil
}

// GenerateFrom loads the resume from src and renders it. Load failures are
// returned as *DataLoadError before any renderer runs.
func (g *Generator) GenerateFrom(ctx context.Context, src source.Source, format Format) (*Artifact, error) {
	if _, ok := g.renderers[format]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	data, err := src.Load(ctx)
	if err != nil {
		log.Printf("[export] failed to load %s: %v", src.Describe(), err)
		return nil, &DataLoadError{Source: src.Describe(), Cause: err}
	}
	return g.Generate(ctx, data, format)
}

// GenerateAll renders every format concurrently. Any failure fails the call.
func (g *Generator) GenerateAll(ctx context.Context, data *types.ResumeData) ([]*Artifact, error) {
	formats := Formats()
	artifacts := make([]*Artifact, len(formats))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, format := range formats {
		eg.Go(func() error {
			a, err := g.Generate(egCtx, data, format)
			if err != nil {
				return err
			}
			artifacts[i] = a
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// Download renders the resume and hands the artifact to saver.
func (g *Generator) Download(ctx context.Context, data *types.ResumeData, format Format, saver Saver) (string, error) {
	artifact, err := g.Generate(ctx, data, format)
	if err != nil {
		return "", err
	}
	location, err := saver.Save(ctx, artifact)
	if err != nil {
		return "", fmt.Errorf("failed to save %s: %w", artifact.Filename, err)
	}
	return location, nil
}

// Filename is "{First}_{Last}_Resume.{ext}", or "Resume.{ext}" when the name is missing.
func Filename(data *types.ResumeData, format Format) string {
	if data == nil {
		return "Resume." + format.Extension()
	}
	first := sanitize(data.FirstName)
	last := sanitize(data.LastName)
	if first == "" || last == "" {
		return "Resume." + format.Extension()
	}
	return first + "_" + last + "_Resume." + format.Extension()
}

// sanitize keeps a name usable as a path element.
func sanitize(name string) string {
	name = strings.TrimSpace(name)
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return -1
		case ' ':
			return '_'
		}
		return r
	}, name)
}

// DirSaver writes artifacts into a directory, creating it when missing.
type DirSaver struct {
	Dir string
}

// Save writes the artifact and returns its path.
func (s DirSaver) Save(ctx context.Context, artifact *Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if artifact == nil || artifact.Filename == "" {
		return "", errors.New("artifact has no filename")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(s.Dir, artifact.Filename)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
