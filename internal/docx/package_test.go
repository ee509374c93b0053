package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/jonathan/resume-docgen/internal/types"
	"github.com/jonathan/resume-docgen/internal/typography"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodedRun struct {
	Text   string
	Size   int
	Bold   bool
	Italic bool
}

type decodedParagraph struct {
	Text      string
	Runs      []decodedRun
	Justify   string
	Before    int
	After     int
	Border    bool
	Hyperlink int
}

func readParts(t *testing.T, blob []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)

	parts := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		parts[f.Name] = data
	}
	return parts
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func decodeDocument(t *testing.T, data []byte) []decodedParagraph {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		out    []decodedParagraph
		para   *decodedParagraph
		run    *decodedRun
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				para = &decodedParagraph{}
			case "r":
				run = &decodedRun{}
			case "b":
				if run != nil {
					run.Bold = true
				}
			case "i":
				if run != nil {
					run.Italic = true
				}
			case "sz":
				if run != nil {
					run.Size, _ = strconv.Atoi(attr(el, "val"))
				}
			case "t":
				inText = true
			case "tab":
				if run != nil {
					run.Text += "\t"
				}
			case "spacing":
				para.Before, _ = strconv.Atoi(attr(el, "before"))
				para.After, _ = strconv.Atoi(attr(el, "after"))
			case "jc":
				para.Justify = attr(el, "val")
			case "bottom":
				para.Border = true
			case "hyperlink":
				para.Hyperlink++
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "p":
				out = append(out, *para)
				para = nil
			case "r":
				para.Runs = append(para.Runs, *run)
				para.Text += run.Text
				run = nil
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && run != nil {
				run.Text += string(el)
			}
		}
	}
	return out
}

func TestWrite_PackageParts(t *testing.T) {
	blob, err := NewRenderer(typography.Default()).Render(context.Background(), sampleResume())
	require.NoError(t, err)

	parts := readParts(t, blob)
	for _, name := range []string{PartContentTypes, PartRels, PartDocument, PartDocumentRels, PartStyles, PartCore} {
		assert.Contains(t, parts, name)
	}

	assert.Contains(t, string(parts[PartContentTypes]), "wordprocessingml.document.main+xml")
	assert.Contains(t, string(parts[PartDocumentRels]), `Target="https://github.com/ada" TargetMode="External"`)
	assert.Contains(t, string(parts[PartStyles]), `w:styleId="Hyperlink"`)
	assert.Contains(t, string(parts[PartCore]), "<dc:title>Ada Lovelace Resume</dc:title>")
	assert.Contains(t, string(parts[PartDocument]), `<w:pgMar w:top="720" w:right="720" w:bottom="720" w:left="720"`)
	assert.Contains(t, string(parts[PartDocument]), `<w:pgSz w:w="12240" w:h="15840">`)
}

func TestWrite_DecodedDocument(t *testing.T) {
	blob, err := NewRenderer(typography.Default()).Render(context.Background(), sampleResume())
	require.NoError(t, err)

	paragraphs := decodeDocument(t, readParts(t, blob)[PartDocument])
	require.NotEmpty(t, paragraphs)

	assert.Equal(t, "ADA LOVELACE", paragraphs[0].Text)
	assert.Equal(t, "center", paragraphs[0].Justify)
	assert.Equal(t, 40, paragraphs[0].Runs[0].Size)
	assert.True(t, paragraphs[0].Runs[0].Bold)

	assert.Equal(t, 2, paragraphs[1].Hyperlink)
	assert.Equal(t, 4, strings.Count(paragraphs[1].Text, " | "))

	var headers []string
	for _, p := range paragraphs {
		if p.Border {
			headers = append(headers, p.Text)
			assert.Equal(t, 200, p.Before)
			assert.Equal(t, 120, p.After)
		}
	}
	assert.Equal(t, []string{"PROFESSIONAL SUMMARY", "SKILLS", "PROFESSIONAL EXPERIENCE", "EDUCATION"}, headers)

	var joined []string
	for _, p := range paragraphs {
		joined = append(joined, p.Text)
	}
	all := strings.Join(joined, "\n")
	assert.Contains(t, all, "Engineer\tJanuary 2021 - Present")
	assert.Contains(t, all, "● Languages: Go, Rust")
	assert.NotContains(t, all, "Broken")
	assert.NotContains(t, all, "Empty")
}

func TestWrite_MinimalDocument(t *testing.T) {
	data := &types.ResumeData{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}

	blob, err := NewRenderer(typography.Default()).Render(context.Background(), data)
	require.NoError(t, err)
	require.NotEmpty(t, blob)

	paragraphs := decodeDocument(t, readParts(t, blob)[PartDocument])
	require.Len(t, paragraphs, 2)
	assert.Equal(t, "ADA LOVELACE", paragraphs[0].Text)
	assert.Equal(t, "ada@example.com", paragraphs[1].Text)
	assert.Equal(t, 0, paragraphs[1].Hyperlink)
}

func TestWrite_EscapesText(t *testing.T) {
	data := &types.ResumeData{FirstName: "A&B", LastName: "<C>", Summary: `"quoted" & <tagged>`}

	blob, err := NewRenderer(typography.Default()).Render(context.Background(), data)
	require.NoError(t, err)

	paragraphs := decodeDocument(t, readParts(t, blob)[PartDocument])
	assert.Equal(t, "A&B <C>", paragraphs[0].Text)
	assert.Equal(t, `"quoted" & <tagged>`, paragraphs[3].Text)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWrite_WriterError(t *testing.T) {
	doc := buildDocument(t, sampleResume())

	err := doc.Write(failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render error")
}
