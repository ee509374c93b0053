package export

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/jonathan/resume-docgen/internal/docx"
	"github.com/jonathan/resume-docgen/internal/layout"
	"github.com/jonathan/resume-docgen/internal/rendering"
	"github.com/jonathan/resume-docgen/internal/types"
	"github.com/jonathan/resume-docgen/internal/typography"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// styledText is the visible text of one run or span with its resolved typography.
type styledText struct {
	Text   string
	Size   float64
	Bold   bool
	Italic bool
}

func fixture() *types.ResumeData {
	return &types.ResumeData{
		FirstName:          "Ada",
		LastName:           "Lovelace",
		Email:              "ada@example.com",
		Phone:              "555-0100",
		GitHub:             "https://github.com/ada",
		LinkedIn:           "https://linkedin.com/in/ada",
		PreferredLocations: []string{"London", "Paris"},
		Summary:            "Mathematician and first programmer.",
		Skills: types.NewSkills(
			types.SkillCategory{Name: "Languages", Skills: []string{"Go", "Rust"}},
			types.SkillCategory{Name: "Empty"},
			types.SkillCategory{Name: "Cloud", Skills: []string{"GCP"}},
		),
		Experience: []types.Experience{
			{
				Company:            "Analytical Engines",
				Position:           "Programmer",
				StartDate:          "2020-01",
				EndDate:            "Present",
				CompanyDescription: "Mechanical computing.",
				Achievements:       []string{"Wrote the first program", "Described loops"},
			},
			{Company: "Incomplete Co", Position: "Engineer", StartDate: "2019-01"},
			{
				Company:   "Difference Engines",
				Location:  "Cambridge",
				Position:  "Assistant",
				StartDate: "2018-02",
				EndDate:   "2019-12",
			},
		},
		Education: []types.Education{
			{Institution: "Home", Degree: "Mathematics", StartDate: "2010-09", EndDate: "2014-06"},
		},
	}
}

func docxTexts(doc *docx.Document) []styledText {
	var out []styledText
	for _, p := range doc.Paragraphs {
		for _, r := range p.Runs() {
			if r.Tab || r.Text == rendering.LinkGlyph {
				continue
			}
			out = append(out, styledText{
				Text:   strings.TrimPrefix(r.Text, docx.BulletGlyph),
				Size:   typography.HalfPointsToPoints(float64(r.HalfPoints)),
				Bold:   r.Bold,
				Italic: r.Italic,
			})
		}
	}
	return out
}

func layoutTexts(doc *layout.Document) []styledText {
	var out []styledText
	add := func(spans []layout.Span) {
		for _, s := range spans {
			out = append(out, styledText{Text: s.Text, Size: s.FontSize, Bold: s.Bold, Italic: s.Italic})
		}
	}
	for _, n := range doc.Content {
		switch v := n.(type) {
		case layout.Text:
			add(v.Spans)
		case layout.Columns:
			add(v.Cells[0].Spans)
			add(v.Cells[1].Spans)
		case layout.List:
			for _, item := range v.Items {
				add(item.Spans)
			}
		}
	}
	return out
}

func buildBoth(t *testing.T, data *types.ResumeData) (*docx.Document, *layout.Document) {
	t.Helper()
	registry := typography.Default()
	instructions, err := rendering.Build(data)
	require.NoError(t, err)
	return docx.NewRenderer(registry).Document(instructions), layout.NewRenderer(registry, nil).Document(instructions)
}

func TestRenderers_ProduceEquivalentText(t *testing.T) {
	docxDoc, layoutDoc := buildBoth(t, fixture())

	fromDOCX := docxTexts(docxDoc)
	fromLayout := layoutTexts(layoutDoc)

	require.NotEmpty(t, fromDOCX)
	assert.Equal(t, fromLayout, fromDOCX)
}

func TestRenderers_SectionOrder(t *testing.T) {
	docxDoc, layoutDoc := buildBoth(t, fixture())

	var docxSections []string
	for _, p := range docxDoc.Paragraphs {
		if p.BottomBorder != nil {
			docxSections = append(docxSections, p.Text())
		}
	}

	var layoutSections []string
	for i, n := range layoutDoc.Content {
		if _, ok := n.(layout.Canvas); ok && i > 0 {
			prev, ok := layoutDoc.Content[i-1].(layout.Text)
			require.True(t, ok)
			layoutSections = append(layoutSections, layout.PlainText(prev.Spans))
		}
	}

	want := []string{"PROFESSIONAL SUMMARY", "SKILLS", "PROFESSIONAL EXPERIENCE", "EDUCATION"}
	assert.Equal(t, want, docxSections)
	assert.Equal(t, want, layoutSections)
}

func TestRenderers_SizesComeFromRegistry(t *testing.T) {
	registry := typography.Default()
	docxDoc, layoutDoc := buildBoth(t, fixture())

	allowed := make(map[float64]bool)
	for _, role := range typography.Roles() {
		allowed[registry.FontSize(role)] = true
	}

	for _, s := range docxTexts(docxDoc) {
		assert.True(t, allowed[s.Size], "docx size %v for %q", s.Size, s.Text)
	}
	for _, s := range layoutTexts(layoutDoc) {
		assert.True(t, allowed[s.Size], "layout size %v for %q", s.Size, s.Text)
	}

	h1 := registry.Style(typography.H1)
	title := layoutTexts(layoutDoc)[0]
	assert.Equal(t, styledText{Text: "ADA LOVELACE", Size: h1.FontSize, Bold: h1.Bold, Italic: h1.Italic}, title)
	assert.Equal(t, title, docxTexts(docxDoc)[0])
}

func TestRenderers_PositionLineItalic(t *testing.T) {
	docxDoc, layoutDoc := buildBoth(t, fixture())

	for _, texts := range [][]styledText{docxTexts(docxDoc), layoutTexts(layoutDoc)} {
		var found bool
		for _, s := range texts {
			if s.Text == "Programmer" {
				found = true
				assert.True(t, s.Italic)
				assert.False(t, s.Bold)
			}
		}
		assert.True(t, found)
	}
}

func TestRenderers_SkipIncompleteAndEmpty(t *testing.T) {
	docxDoc, layoutDoc := buildBoth(t, fixture())

	for _, texts := range [][]styledText{docxTexts(docxDoc), layoutTexts(layoutDoc)} {
		joined := joinTexts(texts)
		assert.NotContains(t, joined, "Incomplete Co")
		assert.NotContains(t, joined, "Empty")
		assert.NotContains(t, joined, "Paris")
		assert.Contains(t, joined, "London")
	}
}

func joinTexts(texts []styledText) string {
	var b strings.Builder
	for _, s := range texts {
		b.WriteString(s.Text)
	}
	return b.String()
}

func documentXML(t *testing.T, blob []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != docx.PartDocument {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer func() { _ = rc.Close() }()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("%s not found", docx.PartDocument)
	return ""
}

func TestEndToEnd_MinimalData(t *testing.T) {
	data := &types.ResumeData{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	g := NewGenerator(typography.Default(), nil)

	artifacts, err := g.GenerateAll(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)

	docxArtifact, pdfArtifact := artifacts[0], artifacts[1]
	require.NotEmpty(t, docxArtifact.Data)
	require.NotEmpty(t, pdfArtifact.Data)
	assert.True(t, bytes.HasPrefix(pdfArtifact.Data, []byte("%PDF-")))
	assert.Equal(t, "Ada_Lovelace_Resume.docx", docxArtifact.Filename)
	assert.Equal(t, "Ada_Lovelace_Resume.pdf", pdfArtifact.Filename)

	body := documentXML(t, docxArtifact.Data)
	assert.Contains(t, body, "ADA LOVELACE")
	assert.Contains(t, body, "ada@example.com")
	assert.NotContains(t, body, strings.TrimSpace(rendering.ContactSeparator))

	docxDoc, layoutDoc := buildBoth(t, data)
	require.Len(t, docxDoc.Paragraphs, 2)
	assert.Equal(t, "ADA LOVELACE", docxDoc.Paragraphs[0].Text())
	assert.Equal(t, "ada@example.com", docxDoc.Paragraphs[1].Text())

	require.Len(t, layoutDoc.Content, 2)
	contact, ok := layoutDoc.Content[1].(layout.Text)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", layout.PlainText(contact.Spans))
	assert.Equal(t, "mailto:ada@example.com", contact.Spans[0].Link)
}
