package layout

import (
	"context"
	"strings"

	"github.com/jonathan/resume-docgen/internal/rendering"
	"github.com/jonathan/resume-docgen/internal/types"
	"github.com/jonathan/resume-docgen/internal/typography"
)

// Engine prints a content tree to PDF bytes.
type Engine interface {
	Name() string
	Print(ctx context.Context, doc *Document) ([]byte, error)
}

const (
	// RuleOffset is the vertical offset of the section rule inside its canvas.
	RuleOffset = 3.0
	// RuleWidth is the stroke width of the section rule.
	RuleWidth = 0.5
)

// Renderer maps render instructions onto a content tree and prints it with an engine.
type Renderer struct {
	registry typography.Registry
	engine   Engine
}

// NewRenderer creates a renderer. A nil engine selects the gofpdf engine.
func NewRenderer(registry typography.Registry, engine Engine) *Renderer {
	if engine == nil {
		engine = NewFPDFEngine()
	}
	return &Renderer{registry: registry, engine: engine}
}

// Engine returns the engine used to print documents.
func (r *Renderer) Engine() Engine {
	return r.engine
}

// Render builds the resume tree and prints it.
func (r *Renderer) Render(ctx context.Context, data *types.ResumeData) ([]byte, error) {
	instructions, err := rendering.Build(data)
	if err != nil {
		return nil, err
	}

	doc := r.Document(instructions)
	doc.Author = strings.TrimSpace(data.FirstName + " " + data.LastName)
	if doc.Author != "" {
		doc.Title = doc.Author + " Resume"
	}
	return r.engine.Print(ctx, doc)
}

// Document maps instructions to content nodes on the fixed page setup.
func (r *Renderer) Document(instructions []rendering.Instruction) *Document {
	page := r.registry.Page()
	doc := &Document{
		PageSize:    page.SizeName,
		PageWidth:   page.Width,
		PageHeight:  page.Height,
		PageMargins: Margin(typography.MarginToArray(page.Margins)),
		Font:        page.Fonts.PDF,
		LineHeight:  page.LineHeight,
	}

	for _, in := range instructions {
		doc.Content = append(doc.Content, r.nodes(in)...)
	}
	return doc
}

func (r *Renderer) nodes(in rendering.Instruction) []Node {
	switch v := in.(type) {
	case rendering.Title:
		return []Node{Text{
			Spans:  []Span{r.span(v.Text, typography.H1)},
			Align:  AlignCenter,
			Margin: r.margin(typography.H1),
		}}

	case rendering.ContactLine:
		t := Text{Align: AlignCenter, Margin: r.margin(typography.Contact)}
		for i, seg := range v.Segments {
			if i > 0 {
				t.Spans = append(t.Spans, r.span(rendering.ContactSeparator, typography.Contact))
			}
			s := r.span(seg.Text, typography.Contact)
			s.Link = seg.Href()
			t.Spans = append(t.Spans, s)
		}
		return []Node{t}

	case rendering.SectionHeader:
		width := r.registry.Page().ContentWidth()
		return []Node{
			Text{
				Spans:  []Span{r.span(v.Section.Title(), typography.H2)},
				Align:  AlignLeft,
				Margin: r.margin(typography.H2),
			},
			Canvas{
				Lines:  []Line{{X1: 0, Y1: RuleOffset, X2: width, Y2: RuleOffset, Width: RuleWidth}},
				Margin: r.margin(typography.Line),
			},
		}

	case rendering.Paragraph:
		return []Node{Text{
			Spans:  []Span{r.span(v.Text, v.Role)},
			Align:  AlignJustify,
			Margin: r.margin(v.Role),
		}}

	case rendering.CategoryList:
		list := List{Margin: r.listMargin()}
		for _, c := range v.Categories {
			list.Items = append(list.Items, Text{
				Spans: []Span{
					r.span(c.Name+": ", typography.H3),
					r.span(strings.Join(c.Skills, ", "), typography.Normal),
				},
				Align:  AlignLeft,
				Margin: r.margin(typography.LI),
			})
		}
		return []Node{list}

	case rendering.Row:
		margin := r.margin(v.Role)
		if v.GapBefore {
			margin[1] += r.registry.Style(typography.UL).Margin.Bottom
		}
		cols := Columns{Margin: margin}
		cols.Cells[0].Align = AlignLeft
		cols.Cells[1].Align = AlignRight
		for _, s := range v.Left {
			cols.Cells[0].Spans = append(cols.Cells[0].Spans, r.span(s.Text, s.Role))
		}
		for _, s := range v.Right {
			cols.Cells[1].Spans = append(cols.Cells[1].Spans, r.span(s.Text, s.Role))
		}
		return []Node{cols}

	case rendering.BulletList:
		list := List{Margin: r.listMargin()}
		for _, item := range v.Items {
			list.Items = append(list.Items, Text{
				Spans:  []Span{r.span(item, typography.LI)},
				Align:  AlignJustify,
				Margin: r.margin(typography.LI),
			})
		}
		return []Node{list}
	}
	return nil
}

func (r *Renderer) span(text string, role typography.Role) Span {
	style := r.registry.Style(role)
	return Span{
		Text:     text,
		FontSize: style.FontSize,
		Bold:     style.Bold,
		Italic:   style.Italic,
	}
}

func (r *Renderer) margin(role typography.Role) Margin {
	return Margin(r.registry.MarginArray(role))
}

// listMargin is the ul margin without its bottom; entry gaps are carried by the next row.
func (r *Renderer) listMargin() Margin {
	m := r.margin(typography.UL)
	m[3] = 0
	return m
}
