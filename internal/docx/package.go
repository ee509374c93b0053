package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/jonathan/resume-docgen/internal/rendering"
)

const (
	nsMain          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"

	relTypeDocument  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCore      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relTypeHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"

	// ContentType is the MIME type of a .docx package.
	ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Package part names.
const (
	PartContentTypes = "[Content_Types].xml"
	PartRels         = "_rels/.rels"
	PartDocument     = "word/document.xml"
	PartDocumentRels = "word/_rels/document.xml.rels"
	PartStyles       = "word/styles.xml"
	PartCore         = "docProps/core.xml"
)

type xmlEmpty struct{}

type xmlVal struct {
	Val string `xml:"w:val,attr"`
}

type xmlIntVal struct {
	Val int `xml:"w:val,attr"`
}

type xmlFonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
	CS    string `xml:"w:cs,attr"`
}

type xmlRunProps struct {
	Style *xmlVal    `xml:"w:rStyle,omitempty"`
	Fonts *xmlFonts  `xml:"w:rFonts,omitempty"`
	Bold  *xmlEmpty  `xml:"w:b,omitempty"`
	Ital  *xmlEmpty  `xml:"w:i,omitempty"`
	Color *xmlVal    `xml:"w:color,omitempty"`
	Size  *xmlIntVal `xml:"w:sz,omitempty"`
	SizeC *xmlIntVal `xml:"w:szCs,omitempty"`
	Under *xmlVal    `xml:"w:u,omitempty"`
}

type xmlText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type xmlRun struct {
	XMLName xml.Name     `xml:"w:r"`
	Props   *xmlRunProps `xml:"w:rPr,omitempty"`
	Tab     *xmlEmpty    `xml:"w:tab,omitempty"`
	Text    *xmlText     `xml:"w:t,omitempty"`
}

type xmlHyperlink struct {
	XMLName xml.Name `xml:"w:hyperlink"`
	ID      string   `xml:"r:id,attr"`
	Runs    []xmlRun `xml:"w:r"`
}

type xmlBorderEdge struct {
	Val   string `xml:"w:val,attr"`
	Size  int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

type xmlBorders struct {
	Bottom xmlBorderEdge `xml:"w:bottom"`
}

type xmlTab struct {
	Val string `xml:"w:val,attr"`
	Pos int    `xml:"w:pos,attr"`
}

type xmlTabs struct {
	Tabs []xmlTab `xml:"w:tab"`
}

type xmlSpacing struct {
	Before int `xml:"w:before,attr"`
	After  int `xml:"w:after,attr"`
}

type xmlIndent struct {
	Left int `xml:"w:left,attr"`
}

type xmlParaProps struct {
	Borders *xmlBorders `xml:"w:pBdr,omitempty"`
	Tabs    *xmlTabs    `xml:"w:tabs,omitempty"`
	Spacing *xmlSpacing `xml:"w:spacing,omitempty"`
	Indent  *xmlIndent  `xml:"w:ind,omitempty"`
	Justify *xmlVal     `xml:"w:jc,omitempty"`
}

type xmlParagraph struct {
	Props    *xmlParaProps `xml:"w:pPr,omitempty"`
	Children []any
}

type xmlPageSize struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type xmlPageMargins struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

type xmlSection struct {
	Size    xmlPageSize    `xml:"w:pgSz"`
	Margins xmlPageMargins `xml:"w:pgMar"`
}

type xmlBody struct {
	Paragraphs []xmlParagraph `xml:"w:p"`
	Section    xmlSection     `xml:"w:sectPr"`
}

type xmlDocument struct {
	XMLName xml.Name `xml:"w:document"`
	NSW     string   `xml:"xmlns:w,attr"`
	NSR     string   `xml:"xmlns:r,attr"`
	Body    xmlBody  `xml:"w:body"`
}

type xmlRelationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

type xmlRelationships struct {
	XMLName       xml.Name          `xml:"Relationships"`
	NS            string            `xml:"xmlns,attr"`
	Relationships []xmlRelationship `xml:"Relationship"`
}

type xmlDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xmlOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xmlContentTypes struct {
	XMLName   xml.Name      `xml:"Types"`
	NS        string        `xml:"xmlns,attr"`
	Defaults  []xmlDefault  `xml:"Default"`
	Overrides []xmlOverride `xml:"Override"`
}

type xmlStyle struct {
	Type       string       `xml:"w:type,attr"`
	ID         string       `xml:"w:styleId,attr"`
	Default    string       `xml:"w:default,attr,omitempty"`
	Name       xmlVal       `xml:"w:name"`
	UIPriority *xmlIntVal   `xml:"w:uiPriority,omitempty"`
	RunProps   *xmlRunProps `xml:"w:rPr,omitempty"`
}

type xmlRunDefaults struct {
	Props xmlRunProps `xml:"w:rPr"`
}

type xmlDocDefaults struct {
	Run xmlRunDefaults `xml:"w:rPrDefault"`
}

type xmlStyles struct {
	XMLName  xml.Name       `xml:"w:styles"`
	NSW      string         `xml:"xmlns:w,attr"`
	Defaults xmlDocDefaults `xml:"w:docDefaults"`
	Styles   []xmlStyle     `xml:"w:style"`
}

type xmlCoreProps struct {
	XMLName xml.Name `xml:"cp:coreProperties"`
	NSCP    string   `xml:"xmlns:cp,attr"`
	NSDC    string   `xml:"xmlns:dc,attr"`
	Title   string   `xml:"dc:title,omitempty"`
	Creator string   `xml:"dc:creator,omitempty"`
}

// Write serializes the document as a .docx zip package.
func (d *Document) Write(w io.Writer) error {
	body, links := d.body()

	rels := xmlRelationships{
		NS: nsPackageRels,
		Relationships: []xmlRelationship{
			{ID: "rId1", Type: relTypeStyles, Target: "styles.xml"},
		},
	}
	rels.Relationships = append(rels.Relationships, links...)

	parts := []struct {
		name  string
		value any
	}{
		{PartContentTypes, contentTypes()},
		{PartRels, xmlRelationships{
			NS: nsPackageRels,
			Relationships: []xmlRelationship{
				{ID: "rId1", Type: relTypeDocument, Target: PartDocument},
				{ID: "rId2", Type: relTypeCore, Target: PartCore},
			},
		}},
		{PartDocument, xmlDocument{NSW: nsMain, NSR: nsRelationships, Body: body}},
		{PartDocumentRels, rels},
		{PartStyles, d.styles()},
		{PartCore, xmlCoreProps{
			NSCP:    "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
			NSDC:    "http://purl.org/dc/elements/1.1/",
			Title:   d.Title,
			Creator: d.Author,
		}},
	}

	zw := zip.NewWriter(w)
	for _, part := range parts {
		if err := writePart(zw, part.name, part.value); err != nil {
			_ = zw.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return &rendering.RenderError{Message: "failed to finalize docx package", Cause: err}
	}
	return nil
}

func writePart(zw *zip.Writer, name string, value any) error {
	fw, err := zw.Create(name)
	if err != nil {
		return &rendering.RenderError{Message: fmt.Sprintf("failed to create part %s", name), Cause: err}
	}
	if _, err := io.WriteString(fw, xml.Header); err != nil {
		return &rendering.RenderError{Message: fmt.Sprintf("failed to write part %s", name), Cause: err}
	}
	if err := xml.NewEncoder(fw).Encode(value); err != nil {
		return &rendering.RenderError{Message: fmt.Sprintf("failed to encode part %s", name), Cause: err}
	}
	return nil
}

func contentTypes() xmlContentTypes {
	return xmlContentTypes{
		NS: nsContentTypes,
		Defaults: []xmlDefault{
			{Extension: "rels", ContentType: "application/vnd.openxmlformats-package.relationships+xml"},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []xmlOverride{
			{PartName: "/" + PartDocument, ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"},
			{PartName: "/" + PartStyles, ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"},
			{PartName: "/" + PartCore, ContentType: "application/vnd.openxmlformats-package.core-properties+xml"},
		},
	}
}

// body converts paragraphs to XML and allocates one relationship per hyperlink.
func (d *Document) body() (xmlBody, []xmlRelationship) {
	var links []xmlRelationship
	body := xmlBody{
		Paragraphs: make([]xmlParagraph, 0, len(d.Paragraphs)),
		Section: xmlSection{
			Size: xmlPageSize{W: d.Page.Width, H: d.Page.Height},
			Margins: xmlPageMargins{
				Top:    d.Page.MarginTop,
				Right:  d.Page.MarginRight,
				Bottom: d.Page.MarginBottom,
				Left:   d.Page.MarginLeft,
			},
		},
	}

	for _, p := range d.Paragraphs {
		xp := xmlParagraph{Props: paragraphProps(p)}
		for _, child := range p.Children {
			switch c := child.(type) {
			case Run:
				xp.Children = append(xp.Children, encodeRun(c))
			case Hyperlink:
				id := fmt.Sprintf("rId%d", len(links)+2)
				links = append(links, xmlRelationship{
					ID: id, Type: relTypeHyperlink, Target: c.Target, TargetMode: "External",
				})
				xl := xmlHyperlink{ID: id}
				for _, r := range c.Runs {
					xl.Runs = append(xl.Runs, encodeRun(r))
				}
				xp.Children = append(xp.Children, xl)
			}
		}
		body.Paragraphs = append(body.Paragraphs, xp)
	}
	return body, links
}

func paragraphProps(p Paragraph) *xmlParaProps {
	props := &xmlParaProps{
		Spacing: &xmlSpacing{Before: p.SpacingBefore, After: p.SpacingAfter},
	}
	if p.BottomBorder != nil {
		props.Borders = &xmlBorders{Bottom: xmlBorderEdge{
			Val:   p.BottomBorder.Style,
			Size:  p.BottomBorder.Size,
			Space: p.BottomBorder.Space,
			Color: p.BottomBorder.Color,
		}}
	}
	if len(p.TabStops) > 0 {
		props.Tabs = &xmlTabs{}
		for _, t := range p.TabStops {
			props.Tabs.Tabs = append(props.Tabs.Tabs, xmlTab{Val: "right", Pos: t.Position})
		}
	}
	if p.IndentLeft != 0 {
		props.Indent = &xmlIndent{Left: p.IndentLeft}
	}
	if p.Align != AlignLeft {
		props.Justify = &xmlVal{Val: string(p.Align)}
	}
	return props
}

func encodeRun(r Run) xmlRun {
	xr := xmlRun{}
	if r.Tab {
		xr.Tab = &xmlEmpty{}
		return xr
	}

	props := &xmlRunProps{}
	if r.Style != "" {
		props.Style = &xmlVal{Val: r.Style}
	}
	if r.Font != "" {
		props.Fonts = &xmlFonts{ASCII: r.Font, HAnsi: r.Font, CS: r.Font}
	}
	if r.Bold {
		props.Bold = &xmlEmpty{}
	}
	if r.Italic {
		props.Ital = &xmlEmpty{}
	}
	if r.HalfPoints > 0 {
		props.Size = &xmlIntVal{Val: r.HalfPoints}
		props.SizeC = &xmlIntVal{Val: r.HalfPoints}
	}
	xr.Props = props
	xr.Text = &xmlText{Space: "preserve", Value: r.Text}
	return xr
}

func (d *Document) styles() xmlStyles {
	return xmlStyles{
		NSW: nsMain,
		Defaults: xmlDocDefaults{Run: xmlRunDefaults{Props: xmlRunProps{
			Fonts: &xmlFonts{ASCII: d.Font, HAnsi: d.Font, CS: d.Font},
			Size:  &xmlIntVal{Val: d.HalfPoints},
			SizeC: &xmlIntVal{Val: d.HalfPoints},
		}}},
		Styles: []xmlStyle{
			{Type: "paragraph", ID: "Normal", Default: "1", Name: xmlVal{Val: "Normal"}},
			{
				Type:       "character",
				ID:         HyperlinkStyle,
				Name:       xmlVal{Val: "Hyperlink"},
				UIPriority: &xmlIntVal{Val: 99},
				RunProps: &xmlRunProps{
					Color: &xmlVal{Val: "0563C1"},
					Under: &xmlVal{Val: "single"},
				},
			},
		},
	}
}
