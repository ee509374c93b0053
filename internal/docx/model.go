// Package docx renders resumes as WordprocessingML (.docx) documents.
package docx

// Alignment is a paragraph justification value.
type Alignment string

const (
	AlignLeft    Alignment = ""
	AlignCenter  Alignment = "center"
	AlignJustify Alignment = "both"
)

// Border is a paragraph border edge. Size is in eighths of a point, Space in points.
type Border struct {
	Style string
	Size  int
	Space int
	Color string
}

// TabStop is a right-aligned tab stop at Position twips from the left margin.
type TabStop struct {
	Position int
}

// Inline is a run or a hyperlink inside a paragraph.
type Inline interface {
	inline()
}

// Run is a span of uniformly formatted text. A Tab run advances to the next tab stop.
type Run struct {
	Text       string
	Tab        bool
	Font       string
	HalfPoints int
	Bold       bool
	Italic     bool
	Style      string
}

// Hyperlink wraps runs that navigate to an external target.
type Hyperlink struct {
	Target string
	Runs   []Run
}

func (Run) inline()       {}
func (Hyperlink) inline() {}

// Paragraph is one block of the document flow. Spacing and indent are in twips.
type Paragraph struct {
	Align         Alignment
	SpacingBefore int
	SpacingAfter  int
	IndentLeft    int
	TabStops      []TabStop
	BottomBorder  *Border
	Children      []Inline
}

// Text returns the paragraph's visible text; tab runs become "\t".
func (p Paragraph) Text() string {
	var out []byte
	for _, child := range p.Children {
		switch c := child.(type) {
		case Run:
			out = append(out, c.text()...)
		case Hyperlink:
			for _, r := range c.Runs {
				out = append(out, r.text()...)
			}
		}
	}
	return string(out)
}

// Runs returns every run of the paragraph, including those inside hyperlinks.
func (p Paragraph) Runs() []Run {
	var out []Run
	for _, child := range p.Children {
		switch c := child.(type) {
		case Run:
			out = append(out, c)
		case Hyperlink:
			out = append(out, c.Runs...)
		}
	}
	return out
}

func (r Run) text() string {
	if r.Tab {
		return "\t"
	}
	return r.Text
}

// Page is the single section's geometry in twips.
type Page struct {
	Width        int
	Height       int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
}

// Document is a single-section document.
type Document struct {
	Title      string
	Author     string
	Font       string
	HalfPoints int
	Page       Page
	Paragraphs []Paragraph
}
