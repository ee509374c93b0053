package layout

import (
	"bytes"
	"context"
	"math"
	"strings"

	"github.com/jonathan/resume-docgen/internal/rendering"
	"github.com/jung-kurt/gofpdf"
)

const (
	// bulletIndent is the distance from a list's left edge to its item text.
	bulletIndent = 10.0
	// columnGap is the minimum space between the two cells of a row.
	columnGap = 8.0
)

// FPDFEngine lays content trees out with gofpdf, embedding DejaVu Sans Condensed when the
// document asks for it.
type FPDFEngine struct {
	// Creator is written to the PDF metadata.
	Creator string
}

// NewFPDFEngine creates the default engine.
func NewFPDFEngine() *FPDFEngine {
	return &FPDFEngine{Creator: "resume-docgen"}
}

func (e *FPDFEngine) Name() string {
	return "gofpdf"
}

// Print lays out every node top to bottom, breaking pages automatically.
func (e *FPDFEngine) Print(ctx context.Context, doc *Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &rendering.RenderError{Message: "pdf generation cancelled", Cause: err}
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: doc.PageWidth, Ht: doc.PageHeight},
	})
	m := doc.PageMargins
	pdf.SetMargins(m.Left(), m.Top(), m.Right())
	pdf.SetAutoPageBreak(true, m.Bottom())
	pdf.SetCellMargin(0)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetCreator(e.Creator, true)

	// the embedded family keeps text as UTF-8; core fonts only hold cp1252
	tr := func(s string) string { return s }
	if strings.EqualFold(doc.Font, EmbeddedFont) {
		for _, f := range embeddedStyles {
			pdf.AddUTF8FontFromBytes(EmbeddedFont, f.style, f.data)
		}
	} else {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.AddPage()

	w := &fpdfWriter{
		pdf:        pdf,
		tr:         tr,
		font:       doc.Font,
		lineHeight: doc.LineHeight,
		left:       m.Left(),
		right:      doc.PageWidth - m.Right(),
		bottom:     doc.PageHeight - m.Bottom(),
	}

	for _, n := range doc.Content {
		if err := ctx.Err(); err != nil {
			return nil, &rendering.RenderError{Message: "pdf generation cancelled", Cause: err}
		}
		w.node(n)
		if pdf.Err() {
			return nil, &rendering.RenderError{Message: "gofpdf layout failed", Cause: pdf.Error()}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &rendering.RenderError{Message: "gofpdf output failed", Cause: err}
	}
	return buf.Bytes(), nil
}

type fpdfWriter struct {
	pdf        *gofpdf.Fpdf
	tr         func(string) string
	font       string
	lineHeight float64
	left       float64
	right      float64
	bottom     float64
}

func (w *fpdfWriter) node(n Node) {
	switch v := n.(type) {
	case Text:
		w.space(v.Margin.Top())
		w.text(v, w.left+v.Margin.Left(), w.right-v.Margin.Right())
		w.space(v.Margin.Bottom())
	case Columns:
		w.space(v.Margin.Top())
		w.columns(v, w.left+v.Margin.Left(), w.right-v.Margin.Right())
		w.space(v.Margin.Bottom())
	case List:
		w.space(v.Margin.Top())
		w.list(v, w.left+v.Margin.Left(), w.right-v.Margin.Right())
		w.space(v.Margin.Bottom())
	case Canvas:
		w.space(v.Margin.Top())
		w.canvas(v, w.left+v.Margin.Left())
		w.space(v.Margin.Bottom())
	}
}

func (w *fpdfWriter) style(s Span) string {
	style := ""
	if s.Bold {
		style += "B"
	}
	if s.Italic {
		style += "I"
	}
	return style
}

func (w *fpdfWriter) setFont(s Span) {
	w.pdf.SetFont(w.font, w.style(s), s.FontSize)
}

func (w *fpdfWriter) height(spans []Span) float64 {
	size := 0.0
	for _, s := range spans {
		size = math.Max(size, s.FontSize)
	}
	return size * w.lineHeight
}

func (w *fpdfWriter) width(spans []Span) float64 {
	total := 0.0
	for _, s := range spans {
		w.setFont(s)
		total += w.pdf.GetStringWidth(w.tr(s.Text))
	}
	return total
}

// space advances the cursor vertically, starting a new page when the bottom is reached.
func (w *fpdfWriter) space(dy float64) {
	if dy <= 0 {
		return
	}
	y := w.pdf.GetY() + dy
	if y >= w.bottom {
		w.pdf.AddPage()
		return
	}
	w.pdf.SetY(y)
}

// ensure starts a new page if h points do not fit below the cursor.
func (w *fpdfWriter) ensure(h float64) {
	if w.pdf.GetY()+h > w.bottom {
		w.pdf.AddPage()
	}
}

func (w *fpdfWriter) text(t Text, x0, x1 float64) {
	if len(t.Spans) == 0 {
		return
	}
	h := w.height(t.Spans)
	avail := x1 - x0

	// single-line blocks are placed cell by cell so alignment is exact
	if t.Align != AlignJustify {
		if w.width(t.Spans) <= avail {
			w.aligned([][]Span{t.Spans}, t.Align, x0, x1, h)
			return
		}
	}

	if len(t.Spans) == 1 && t.Spans[0].Link == "" {
		s := t.Spans[0]
		w.setFont(s)
		w.pdf.SetX(x0)
		align := "L"
		switch t.Align {
		case AlignJustify:
			align = "J"
		case AlignCenter:
			align = "C"
		case AlignRight:
			align = "R"
		}
		w.pdf.MultiCell(avail, h, w.tr(s.Text), "", align, false)
		w.pdf.SetX(w.left)
		return
	}

	if t.Align == AlignJustify {
		w.flow(t.Spans, x0, x1, h)
		return
	}
	w.aligned(w.wrap(t.Spans, avail), t.Align, x0, x1, h)
}

// alignX returns where a line of the given width starts between x0 and x1.
func alignX(align Align, x0, x1, total float64) float64 {
	switch align {
	case AlignCenter:
		return x0 + (x1-x0-total)/2
	case AlignRight:
		return x1 - total
	default:
		return x0
	}
}

// aligned writes pre-broken lines, each placed by its own width.
func (w *fpdfWriter) aligned(lines [][]Span, align Align, x0, x1, h float64) {
	for _, line := range lines {
		w.ensure(h)
		w.cells(line, alignX(align, x0, x1, w.width(line)), h)
		w.pdf.SetXY(w.left, w.pdf.GetY()+h)
	}
}

// wrap breaks spans into lines no wider than avail, splitting at spaces. A word wider
// than avail gets a line of its own.
func (w *fpdfWriter) wrap(spans []Span, avail float64) [][]Span {
	var (
		lines     [][]Span
		line      []Span
		lineWidth float64
	)
	for _, s := range spans {
		w.setFont(s)
		for _, word := range strings.SplitAfter(s.Text, " ") {
			if word == "" {
				continue
			}
			ww := w.pdf.GetStringWidth(w.tr(word))
			if len(line) > 0 && lineWidth+ww > avail && strings.TrimSpace(word) != "" {
				if trimmed := trimLine(line); len(trimmed) > 0 {
					lines = append(lines, trimmed)
				}
				line, lineWidth = nil, 0
			}
			if n := len(line); n > 0 && sameStyle(line[n-1], s) {
				line[n-1].Text += word
			} else {
				part := s
				part.Text = word
				line = append(line, part)
			}
			lineWidth += ww
		}
	}
	if trimmed := trimLine(line); len(trimmed) > 0 {
		lines = append(lines, trimmed)
	}
	return lines
}

func sameStyle(a, b Span) bool {
	return a.FontSize == b.FontSize && a.Bold == b.Bold && a.Italic == b.Italic && a.Link == b.Link
}

// trimLine drops the spaces at both ends of a line and any span left empty.
func trimLine(line []Span) []Span {
	if len(line) == 0 {
		return nil
	}
	line[0].Text = strings.TrimLeft(line[0].Text, " ")
	last := len(line) - 1
	line[last].Text = strings.TrimRight(line[last].Text, " ")

	out := line[:0]
	for _, s := range line {
		if s.Text != "" {
			out = append(out, s)
		}
	}
	return out
}

// cells writes spans side by side on the current line starting at x.
func (w *fpdfWriter) cells(spans []Span, x, h float64) {
	y := w.pdf.GetY()
	for _, s := range spans {
		w.setFont(s)
		txt := w.tr(s.Text)
		sw := w.pdf.GetStringWidth(txt)
		w.pdf.SetXY(x, y)
		w.pdf.CellFormat(sw, h, txt, "", 0, "L", false, 0, s.Link)
		x += sw
	}
}

// flow writes spans as wrapping inline text between x0 and x1.
func (w *fpdfWriter) flow(spans []Span, x0, x1, h float64) {
	left, top, right, _ := w.pdf.GetMargins()
	pageWidth, _ := w.pdf.GetPageSize()
	w.pdf.SetLeftMargin(x0)
	w.pdf.SetRightMargin(pageWidth - x1)
	w.pdf.SetX(x0)

	for _, s := range spans {
		w.setFont(s)
		if s.Link != "" {
			w.pdf.WriteLinkString(h, w.tr(s.Text), s.Link)
		} else {
			w.pdf.Write(h, w.tr(s.Text))
		}
	}
	w.pdf.Ln(h)

	w.pdf.SetMargins(left, top, right)
	w.pdf.SetX(w.left)
}

// columns writes the right cell on the first line and wraps the left cell in the
// space before it.
func (w *fpdfWriter) columns(c Columns, x0, x1 float64) {
	h := math.Max(w.height(c.Cells[0].Spans), w.height(c.Cells[1].Spans))
	if h == 0 {
		return
	}
	w.ensure(h)

	right := w.width(c.Cells[1].Spans)
	avail := x1 - x0
	if right > 0 {
		avail -= right + columnGap
	}

	page, y := w.pdf.PageNo(), w.pdf.GetY()
	w.cells(c.Cells[1].Spans, x1-right, h)
	w.pdf.SetXY(w.left, y)
	w.aligned(w.wrap(c.Cells[0].Spans, avail), AlignLeft, x0, x0+avail, h)
	if w.pdf.PageNo() == page && w.pdf.GetY() < y+h {
		w.pdf.SetXY(w.left, y+h)
	}
}

func (w *fpdfWriter) list(l List, x0, x1 float64) {
	for _, item := range l.Items {
		if len(item.Spans) == 0 {
			continue
		}
		w.space(item.Margin.Top())

		h := w.height(item.Spans)
		w.ensure(h)
		bullet := item.Spans[0]
		bullet.Bold, bullet.Italic, bullet.Link = false, false, ""
		w.setFont(bullet)
		w.pdf.SetXY(x0+item.Margin.Left(), w.pdf.GetY())
		w.pdf.CellFormat(bulletIndent, h, w.tr("•"), "", 0, "L", false, 0, "")

		text := item
		if text.Align == AlignJustify && len(text.Spans) > 1 {
			text.Align = AlignLeft
		}
		w.listItem(text, x0+item.Margin.Left()+bulletIndent, x1-item.Margin.Right(), h)
		w.space(item.Margin.Bottom())
	}
}

// listItem writes item text beside its bullet, keeping the bullet's line.
func (w *fpdfWriter) listItem(t Text, x0, x1, h float64) {
	if len(t.Spans) == 1 && t.Spans[0].Link == "" {
		s := t.Spans[0]
		w.setFont(s)
		w.pdf.SetX(x0)
		align := "L"
		if t.Align == AlignJustify {
			align = "J"
		}
		w.pdf.MultiCell(x1-x0, h, w.tr(s.Text), "", align, false)
		w.pdf.SetX(w.left)
		return
	}
	w.flow(t.Spans, x0, x1, h)
}

func (w *fpdfWriter) canvas(c Canvas, x0 float64) {
	y := w.pdf.GetY()
	for _, l := range c.Lines {
		w.pdf.SetLineWidth(l.Width)
		w.pdf.Line(x0+l.X1, y+l.Y1, x0+l.X2, y+l.Y2)
	}
	w.space(canvasExtent(c))
}
