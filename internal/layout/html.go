package layout

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/jonathan/resume-docgen/internal/rendering"
)

var htmlTemplate = template.Must(template.New("document").Funcs(template.FuncMap{
	"kind":      nodeKind,
	"box":       boxCSS,
	"spanStyle": spanCSS,
	"pt":        points,
	"pageCSS":   pageCSS,
	"extent":    canvasExtent,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{pageCSS .}}</style>
</head>
<body>
{{- range .Content}}
{{- if eq (kind .) "text"}}
<p class="text" style="text-align: {{.Align}}; {{box .Margin}}">{{template "spans" .Spans}}</p>
{{- else if eq (kind .) "columns"}}
<div class="columns" style="{{box .Margin}}">
{{- range .Cells}}<div class="cell {{.Align}}">{{template "spans" .Spans}}</div>{{end -}}
</div>
{{- else if eq (kind .) "list"}}
<ul class="list" style="{{box .Margin}}">
{{- range .Items}}
<li style="text-align: {{.Align}}; {{box .Margin}}">{{template "spans" .Spans}}</li>
{{- end}}
</ul>
{{- else if eq (kind .) "canvas"}}
<svg class="canvas" style="{{box .Margin}}" width="{{$.ContentWidth}}" height="{{extent .}}" xmlns="http://www.w3.org/2000/svg">
{{- range .Lines}}<line x1="{{.X1}}" y1="{{.Y1}}" x2="{{.X2}}" y2="{{.Y2}}" stroke="#000" stroke-width="{{.Width}}"/>{{end -}}
</svg>
{{- end}}
{{- end}}
</body>
</html>
{{define "spans"}}{{range .}}{{if .Link}}<a href="{{.Link}}" style="{{spanStyle .}}">{{.Text}}</a>{{else}}<span style="{{spanStyle .}}">{{.Text}}</span>{{end}}{{end}}{{end}}
`))

// HTML renders the content tree as a standalone print-ready page.
func HTML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, doc); err != nil {
		return nil, &rendering.RenderError{Message: "failed to render html", Cause: err}
	}
	return buf.Bytes(), nil
}

func nodeKind(n Node) string {
	switch n.(type) {
	case Text:
		return "text"
	case Columns:
		return "columns"
	case List:
		return "list"
	case Canvas:
		return "canvas"
	default:
		return ""
	}
}

// canvasExtent is the height a canvas occupies: the lowest point any line reaches.
func canvasExtent(c Canvas) float64 {
	extent := 0.0
	for _, l := range c.Lines {
		extent = max(extent, l.Y1+l.Width/2, l.Y2+l.Width/2)
	}
	return extent
}

func points(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "pt"
}

// boxCSS converts a [left, top, right, bottom] margin into CSS order.
func boxCSS(m Margin) template.CSS {
	return template.CSS(fmt.Sprintf("margin: %s %s %s %s;",
		points(m.Top()), points(m.Right()), points(m.Bottom()), points(m.Left())))
}

func spanCSS(s Span) template.CSS {
	parts := []string{"font-size: " + points(s.FontSize)}
	if s.Bold {
		parts = append(parts, "font-weight: bold")
	}
	if s.Italic {
		parts = append(parts, "font-style: italic")
	}
	return template.CSS(strings.Join(parts, "; ") + ";")
}

func pageCSS(doc *Document) template.CSS {
	m := doc.PageMargins
	return template.CSS(fmt.Sprintf(`
@page { size: %s %s; margin: %s %s %s %s; }
body { margin: 0; font-family: %s, Arial, sans-serif; line-height: %s; color: #000; }
p, ul { padding: 0; }
.columns { display: flex; justify-content: space-between; }
.cell.right { text-align: right; }
.list { padding-left: 10pt; }
.canvas { display: block; overflow: visible; }
a { color: inherit; text-decoration: none; }
`,
		points(doc.PageWidth), points(doc.PageHeight),
		points(m.Top()), points(m.Right()), points(m.Bottom()), points(m.Left()),
		doc.Font, strconv.FormatFloat(doc.LineHeight, 'f', -1, 64)))
}
