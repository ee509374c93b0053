package docx

import (
	"bytes"
	"context"
	"strings"

	"github.com/jonathan/resume-docgen/internal/rendering"
	"github.com/jonathan/resume-docgen/internal/types"
	"github.com/jonathan/resume-docgen/internal/typography"
)

const (
	// BulletGlyph prefixes skills lines and experience bullets.
	BulletGlyph = "● "
	// HyperlinkStyle is the character style applied to hyperlink runs.
	HyperlinkStyle = "Hyperlink"
)

// sectionRule is the border drawn under every section header.
var sectionRule = Border{Style: "single", Size: 2, Space: 1, Color: "000000"}

// Renderer maps render instructions onto a Document using one typography registry.
type Renderer struct {
	registry typography.Registry
}

// NewRenderer creates a renderer bound to a registry.
func NewRenderer(registry typography.Registry) *Renderer {
	return &Renderer{registry: registry}
}

// Render builds the resume and serializes it as a .docx package.
func (r *Renderer) Render(ctx context.Context, data *types.ResumeData) ([]byte, error) {
	instructions, err := rendering.Build(data)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &rendering.RenderError{Message: "docx generation cancelled", Cause: err}
	}

	doc := r.Document(instructions)
	doc.Author = strings.TrimSpace(data.FirstName + " " + data.LastName)
	if doc.Author != "" {
		doc.Title = doc.Author + " Resume"
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Document maps instructions to paragraphs and wraps them in the fixed page setup.
func (r *Renderer) Document(instructions []rendering.Instruction) *Document {
	page := r.registry.Page()
	doc := &Document{
		Font:       page.Fonts.DOCX,
		HalfPoints: r.registry.HalfPoints(typography.Normal),
		Page: Page{
			Width:        typography.Twips(page.Width),
			Height:       typography.Twips(page.Height),
			MarginTop:    typography.Twips(page.Margins.Top),
			MarginRight:  typography.Twips(page.Margins.Right),
			MarginBottom: typography.Twips(page.Margins.Bottom),
			MarginLeft:   typography.Twips(page.Margins.Left),
		},
	}

	for _, in := range instructions {
		doc.Paragraphs = append(doc.Paragraphs, r.paragraphs(in)...)
	}
	return doc
}

func (r *Renderer) paragraphs(in rendering.Instruction) []Paragraph {
	switch v := in.(type) {
	case rendering.Title:
		return []Paragraph{{
			Align:        AlignCenter,
			SpacingAfter: r.after(typography.H1),
			Children:     []Inline{r.run(v.Text, typography.H1)},
		}}

	case rendering.ContactLine:
		return []Paragraph{r.contact(v)}

	case rendering.SectionHeader:
		rule := sectionRule
		return []Paragraph{{
			SpacingBefore: r.before(typography.H2),
			SpacingAfter:  r.after(typography.Line),
			BottomBorder:  &rule,
			Children:      []Inline{r.run(v.Section.Title(), typography.H2)},
		}}

	case rendering.Paragraph:
		return []Paragraph{{
			Align:         AlignJustify,
			SpacingBefore: r.before(v.Role),
			SpacingAfter:  r.after(v.Role),
			Children:      []Inline{r.run(v.Text, v.Role)},
		}}

	case rendering.CategoryList:
		out := make([]Paragraph, 0, len(v.Categories))
		for _, c := range v.Categories {
			out = append(out, Paragraph{
				IndentLeft:   r.indent(typography.UL),
				SpacingAfter: r.after(typography.H3),
				Children: []Inline{
					r.run(BulletGlyph+c.Name+": ", typography.H3),
					r.run(strings.Join(c.Skills, ", "), typography.Normal),
				},
			})
		}
		return out

	case rendering.Row:
		before := r.before(v.Role)
		if v.GapBefore {
			before = r.after(typography.UL)
		}
		p := Paragraph{
			SpacingBefore: before,
			SpacingAfter:  r.after(v.Role),
			TabStops:      []TabStop{{Position: typography.Twips(r.registry.Page().RightTabStop())}},
		}
		for _, s := range v.Left {
			p.Children = append(p.Children, r.run(s.Text, s.Role))
		}
		p.Children = append(p.Children, Run{Tab: true})
		for _, s := range v.Right {
			p.Children = append(p.Children, r.run(s.Text, s.Role))
		}
		return []Paragraph{p}

	case rendering.BulletList:
		out := make([]Paragraph, 0, len(v.Items))
		for _, item := range v.Items {
			out = append(out, Paragraph{
				Align:         AlignJustify,
				IndentLeft:    r.indent(typography.UL),
				SpacingBefore: r.before(typography.LI),
				SpacingAfter:  r.after(typography.LI),
				Children:      []Inline{r.run(BulletGlyph+item, typography.LI)},
			})
		}
		return out
	}
	return nil
}

func (r *Renderer) contact(line rendering.ContactLine) Paragraph {
	p := Paragraph{
		Align:        AlignCenter,
		SpacingAfter: r.after(typography.Contact),
	}
	for i, seg := range line.Segments {
		if i > 0 {
			p.Children = append(p.Children, r.run(rendering.ContactSeparator, typography.Contact))
		}
		if seg.Kind != rendering.SegmentLink {
			p.Children = append(p.Children, r.run(seg.Text, typography.Contact))
			continue
		}
		link := r.run(seg.Text, typography.Contact)
		link.Style = HyperlinkStyle
		p.Children = append(p.Children,
			r.run(rendering.LinkGlyph, typography.Icon),
			Hyperlink{Target: seg.Href(), Runs: []Run{link}},
		)
	}
	return p
}

func (r *Renderer) run(text string, role typography.Role) Run {
	style := r.registry.Style(role)
	font := style.Font
	if font == "" {
		font = r.registry.Page().Fonts.DOCX
	}
	return Run{
		Text:       text,
		Font:       font,
		HalfPoints: r.registry.HalfPoints(role),
		Bold:       style.Bold,
		Italic:     style.Italic,
	}
}

func (r *Renderer) before(role typography.Role) int {
	return typography.Twips(r.registry.Style(role).Margin.Top)
}

func (r *Renderer) after(role typography.Role) int {
	return typography.Twips(r.registry.Style(role).Margin.Bottom)
}

func (r *Renderer) indent(role typography.Role) int {
	return typography.Twips(r.registry.Style(role).Margin.Left)
}
