package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/jonathan/resume-docgen/internal/source"
	"github.com/jonathan/resume-docgen/internal/types"
	"github.com/jonathan/resume-docgen/internal/typography"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	out   []byte
	err   error
	calls atomic.Int32
}

func (s *stubRenderer) Render(_ context.Context, _ *types.ResumeData) ([]byte, error) {
	s.calls.Add(1)
	return s.out, s.err
}

func stubGenerator(docxR, pdfR Renderer) *Generator {
	return NewGenerator(typography.Default(), nil,
		WithRenderer(FormatDOCX, "stub-docx", docxR),
		WithRenderer(FormatPDF, "stub-pdf", pdfR),
	)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"docx", FormatDOCX},
		{"PDF", FormatPDF},
		{".pdf", FormatPDF},
		{" docx ", FormatDOCX},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "txt", "doc", "html"} {
		_, err := ParseFormat(bad)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, bad)
	}
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Contains(t, FormatDOCX.ContentType(), "wordprocessingml")
	assert.Equal(t, "application/octet-stream", Format("txt").ContentType())
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		data   *types.ResumeData
		format Format
		want   string
	}{
		{"full name", &types.ResumeData{FirstName: "Ada", LastName: "Lovelace"}, FormatPDF, "Ada_Lovelace_Resume.pdf"},
		{"docx", &types.ResumeData{FirstName: "Ada", LastName: "Lovelace"}, FormatDOCX, "Ada_Lovelace_Resume.docx"},
		{"missing last", &types.ResumeData{FirstName: "Ada"}, FormatPDF, "Resume.pdf"},
		{"missing both", &types.ResumeData{}, FormatDOCX, "Resume.docx"},
		{"nil data", nil, FormatPDF, "Resume.pdf"},
		{"spaces and slashes", &types.ResumeData{FirstName: "Mary Ann", LastName: "O/Neil"}, FormatPDF, "Mary_Ann_ONeil_Resume.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.data, tt.format))
		})
	}
}

func TestGenerate(t *testing.T) {
	docxR := &stubRenderer{out: []byte("docx-bytes")}
	pdfR := &stubRenderer{out: []byte("pdf-bytes")}
	g := stubGenerator(docxR, pdfR)

	data := &types.ResumeData{FirstName: "Ada", LastName: "Lovelace"}
	artifact, err := g.Generate(context.Background(), data, FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, FormatPDF, artifact.Format)
	assert.Equal(t, "Ada_Lovelace_Resume.pdf", artifact.Filename)
	assert.Equal(t, "application/pdf", artifact.ContentType)
	assert.Equal(t, "stub-pdf", artifact.Engine)
	assert.Equal(t, []byte("pdf-bytes"), artifact.Data)
	assert.Equal(t, int32(0), docxR.calls.Load())
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	g := stubGenerator(&stubRenderer{}, &stubRenderer{})

	_, err := g.Generate(context.Background(), &types.ResumeData{}, Format("txt"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	var renderErr *RenderError
	assert.False(t, errors.As(err, &renderErr))
}

func TestGenerate_RenderFailure(t *testing.T) {
	cause := errors.New("engine exploded")
	g := stubGenerator(&stubRenderer{err: cause}, &stubRenderer{})

	_, err := g.Generate(context.Background(), &types.ResumeData{}, FormatDOCX)
	require.Error(t, err)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, FormatDOCX, renderErr.Format)
	assert.ErrorIs(t, err, cause)
}

type failingSource struct{}

func (failingSource) Load(context.Context) (*types.ResumeData, error) {
	return nil, errors.New("unreachable")
}

func (failingSource) Describe() string { return "failing" }

func TestGenerateFrom_LoadFailureSkipsRendering(t *testing.T) {
	docxR := &stubRenderer{out: []byte("x")}
	g := stubGenerator(docxR, &stubRenderer{})

	_, err := g.GenerateFrom(context.Background(), failingSource{}, FormatDOCX)
	require.Error(t, err)

	var loadErr *DataLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "failing", loadErr.Source)
	assert.Equal(t, int32(0), docxR.calls.Load())
}

func TestGenerateFrom_SchemaFailureIsDataLoadError(t *testing.T) {
	g := stubGenerator(&stubRenderer{}, &stubRenderer{})

	src := source.Bytes{Name: "inline", Raw: []byte(`{"skills": {"A": "not-a-list"}}`)}
	_, err := g.GenerateFrom(context.Background(), src, FormatPDF)

	var loadErr *DataLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestGenerateFrom_PresentStartDateRejectedBeforeRendering(t *testing.T) {
	docxR := &stubRenderer{out: []byte("x")}
	g := stubGenerator(docxR, &stubRenderer{})

	src := source.Bytes{Name: "inline", Raw: []byte(`{
		"firstName": "Ada",
		"lastName": "Lovelace",
		"experience": [{"company": "C", "position": "P", "startDate": "present", "endDate": "present"}]
	}`)}
	_, err := g.GenerateFrom(context.Background(), src, FormatDOCX)

	var loadErr *DataLoadError
	require.ErrorAs(t, err, &loadErr)
	var renderErr *RenderError
	assert.False(t, errors.As(err, &renderErr))
	assert.Equal(t, int32(0), docxR.calls.Load())
}

func TestGenerateFrom_Success(t *testing.T) {
	g := stubGenerator(&stubRenderer{out: []byte("d")}, &stubRenderer{})

	src := source.Bytes{Raw: []byte(`{"firstName": "Ada", "lastName": "Lovelace", "uploadedAt": "now"}`)}
	artifact, err := g.GenerateFrom(context.Background(), src, FormatDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Ada_Lovelace_Resume.docx", artifact.Filename)
}

func TestGenerateAll(t *testing.T) {
	g := stubGenerator(&stubRenderer{out: []byte("d")}, &stubRenderer{out: []byte("p")})

	artifacts, err := g.GenerateAll(context.Background(), &types.ResumeData{FirstName: "A", LastName: "B"})
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, FormatDOCX, artifacts[0].Format)
	assert.Equal(t, FormatPDF, artifacts[1].Format)
}

func TestGenerateAll_OneFailureFailsAll(t *testing.T) {
	g := stubGenerator(&stubRenderer{out: []byte("d")}, &stubRenderer{err: errors.New("boom")})

	artifacts, err := g.GenerateAll(context.Background(), &types.ResumeData{})
	require.Error(t, err)
	assert.Nil(t, artifacts)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, FormatPDF, renderErr.Format)
}

func TestDownload_DirSaver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	g := stubGenerator(&stubRenderer{out: []byte("docx-bytes")}, &stubRenderer{})

	path, err := g.Download(context.Background(), &types.ResumeData{FirstName: "Ada", LastName: "Lovelace"}, FormatDOCX, DirSaver{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Ada_Lovelace_Resume.docx"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "docx-bytes", string(content))
}

type failingSaver struct{}

func (failingSaver) Save(context.Context, *Artifact) (string, error) {
	return "", errors.New("disk full")
}

func TestDownload_SaveFailure(t *testing.T) {
	g := stubGenerator(&stubRenderer{out: []byte("x")}, &stubRenderer{})

	_, err := g.Download(context.Background(), &types.ResumeData{}, FormatDOCX, failingSaver{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Resume.docx")
	assert.Contains(t, err.Error(), "disk full")
}

func TestDownload_RenderFailureSkipsSave(t *testing.T) {
	dir := t.TempDir()
	g := stubGenerator(&stubRenderer{err: errors.New("boom")}, &stubRenderer{})

	_, err := g.Download(context.Background(), &types.ResumeData{}, FormatDOCX, DirSaver{Dir: dir})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDirSaver_RejectsUnnamedArtifact(t *testing.T) {
	_, err := DirSaver{Dir: t.TempDir()}.Save(context.Background(), &Artifact{})
	assert.Error(t, err)
}

func TestNewGenerator_DefaultEngines(t *testing.T) {
	g := NewGenerator(typography.Default(), nil)
	assert.Equal(t, "docx", g.engines[FormatDOCX])
	assert.Equal(t, "gofpdf", g.engines[FormatPDF])
}
