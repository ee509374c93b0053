// Package layout renders resumes as declarative page-layout trees and prints them to PDF.
package layout

// Align is a horizontal text alignment.
type Align string

const (
	AlignLeft    Align = "left"
	AlignCenter  Align = "center"
	AlignRight   Align = "right"
	AlignJustify Align = "justify"
)

// Margin is a [left, top, right, bottom] tuple in points.
type Margin [4]float64

func (m Margin) Left() float64   { return m[0] }
func (m Margin) Top() float64    { return m[1] }
func (m Margin) Right() float64  { return m[2] }
func (m Margin) Bottom() float64 { return m[3] }

// Span is an inline run of text. Link, when set, makes the span navigable.
type Span struct {
	Text     string
	FontSize float64
	Bold     bool
	Italic   bool
	Link     string
}

// Node is one block of the content tree.
type Node interface {
	node()
}

// Text is a block of inline spans.
type Text struct {
	Spans  []Span
	Align  Align
	Margin Margin
}

// Cell is one side of a Columns row.
type Cell struct {
	Spans []Span
	Align Align
}

// Columns is a two-cell row: the first cell left-aligned, the second right-aligned.
type Columns struct {
	Cells  [2]Cell
	Margin Margin
}

// List is a bulleted list of text items.
type List struct {
	Items  []Text
	Margin Margin
}

// Line is a straight line in block-relative coordinates.
type Line struct {
	X1, Y1, X2, Y2 float64
	Width          float64
}

// Canvas is a zero-height drawing block.
type Canvas struct {
	Lines  []Line
	Margin Margin
}

func (Text) node()    {}
func (Columns) node() {}
func (List) node()    {}
func (Canvas) node()  {}

// Document is a complete content tree plus page setup.
type Document struct {
	Title       string
	Author      string
	PageSize    string
	PageWidth   float64
	PageHeight  float64
	PageMargins Margin
	Font        string
	LineHeight  float64
	Content     []Node
}

// ContentWidth is the printable width between the page margins.
func (d *Document) ContentWidth() float64 {
	return d.PageWidth - d.PageMargins.Left() - d.PageMargins.Right()
}

// PlainText returns the text of a block's spans concatenated.
func PlainText(spans []Span) string {
	var out []byte
	for _, s := range spans {
		out = append(out, s.Text...)
	}
	return string(out)
}
