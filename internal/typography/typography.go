// Package typography is the single source of truth for font sizes, weights and spacing
// used by both resume renderers.
//
// All sizes are stored in points. Word-processor documents size fonts in half-points and
// measure spacing in twips (1/20 pt); the conversion helpers and the Registry accessors
// return values in whichever unit a renderer needs.
package typography

import "fmt"

// Role identifies a typographic category of text.
type Role int

// Roles known to the registry.
const (
	H1 Role = iota
	H2
	H3
	Normal
	Line
	UL
	LI
	Icon
	Contact
	Position

	roleCount
)

var roleNames = [roleCount]string{
	H1:       "h1",
	H2:       "h2",
	H3:       "h3",
	Normal:   "normal",
	Line:     "line",
	UL:       "ul",
	LI:       "li",
	Icon:     "icon",
	Contact:  "contact",
	Position: "position",
}

// String returns the role token, e.g. "h2".
func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// Roles returns every role in declaration order.
func Roles() []Role {
	roles := make([]Role, 0, roleCount)
	for r := Role(0); r < roleCount; r++ {
		roles = append(roles, r)
	}
	return roles
}

// ParseRole resolves a role token such as "h1" or "position".
func ParseRole(token string) (Role, error) {
	for r, name := range roleNames {
		if name == token {
			return Role(r), nil
		}
	}
	return 0, fmt.Errorf("unknown typography role %q", token)
}

// Margin is a four-side spacing value. Units depend on the producer: the registry stores
// points, MarginTwips returns twips.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Style is the typography of one role.
type Style struct {
	FontSize float64 // points
	Font     string
	Bold     bool
	Italic   bool
	Margin   Margin // points
}

// Fonts holds the font family used by each output format.
type Fonts struct {
	DOCX string
	PDF  string
}

// PageLayout describes the fixed page geometry, in points.
type PageLayout struct {
	SizeName   string
	Width      float64
	Height     float64
	Margins    Margin
	Fonts      Fonts
	LineHeight float64
}

// ContentWidth is the usable width between the left and right margins.
func (p PageLayout) ContentWidth() float64 {
	return p.Width - p.Margins.Left - p.Margins.Right
}

// RightTabStop is the position, measured from the left margin, where right-aligned
// second columns end.
func (p PageLayout) RightTabStop() float64 {
	return p.ContentWidth()
}

// PointsToHalfPoints converts a font size in points to half-points.
func PointsToHalfPoints(points float64) float64 {
	return points * 2
}

// HalfPointsToPoints is the inverse of PointsToHalfPoints.
func HalfPointsToPoints(halfPoints float64) float64 {
	return halfPoints / 2
}

// PointsToTwips converts points to twentieths of a point.
//
//	PointsToTwips(36)  // 720, a half-inch margin
//	PointsToTwips(7.2) // 144
func PointsToTwips(points float64) float64 {
	return points * 20
}

// TwipsToPoints is the inverse of PointsToTwips.
func TwipsToPoints(twips float64) float64 {
	return twips / 20
}

// MarginToArray orders a margin as [left, top, right, bottom], the layout-engine order.
func MarginToArray(m Margin) [4]float64 {
	return [4]float64{m.Left, m.Top, m.Right, m.Bottom}
}

// Registry is the frozen typography configuration. It is a value type: copies handed to
// renderers cannot affect each other.
type Registry struct {
	styles [roleCount]Style
	page   PageLayout
}

// Default returns the resume typography used by both renderers.
func Default() Registry {
	const font = "Arial"
	return Registry{
		styles: [roleCount]Style{
			H1:       {FontSize: 20, Font: font, Bold: true, Margin: Margin{Bottom: 4}},
			H2:       {FontSize: 16, Font: font, Bold: true, Margin: Margin{Top: 10}},
			H3:       {FontSize: 10, Font: font, Bold: true},
			Normal:   {FontSize: 10, Font: font},
			Line:     {FontSize: 0, Font: font, Margin: Margin{Bottom: 6}},
			UL:       {FontSize: 10, Font: font, Margin: Margin{Bottom: 8, Left: 8}},
			LI:       {FontSize: 10, Font: font},
			Icon:     {FontSize: 7, Font: font},
			Contact:  {FontSize: 10, Font: font},
			Position: {FontSize: 10, Font: font, Italic: true, Margin: Margin{Bottom: 4}},
		},
		page: PageLayout{
			SizeName: "LETTER",
			Width:    612,
			Height:   792,
			Margins:  Margin{Top: 36, Right: 36, Bottom: 36, Left: 36},
			Fonts: Fonts{
				DOCX: "Arial",
				PDF:  "DejaVu Sans Condensed",
			},
			LineHeight: 1.15,
		},
	}
}

// Style returns the style of a role. Unknown roles yield the zero Style.
func (r Registry) Style(role Role) Style {
	if role < 0 || role >= roleCount {
		return Style{}
	}
	return r.styles[role]
}

// FontSize returns the role's font size in points.
func (r Registry) FontSize(role Role) float64 {
	return r.Style(role).FontSize
}

// HalfPoints returns the role's font size in half-points, rounded to an integer.
func (r Registry) HalfPoints(role Role) int {
	return round(PointsToHalfPoints(r.FontSize(role)))
}

// MarginTwips returns the role's margin in twips.
func (r Registry) MarginTwips(role Role) Margin {
	m := r.Style(role).Margin
	return Margin{
		Top:    PointsToTwips(m.Top),
		Right:  PointsToTwips(m.Right),
		Bottom: PointsToTwips(m.Bottom),
		Left:   PointsToTwips(m.Left),
	}
}

// MarginArray returns the role's margin in points as [left, top, right, bottom].
func (r Registry) MarginArray(role Role) [4]float64 {
	return MarginToArray(r.Style(role).Margin)
}

// Page returns the page geometry.
func (r Registry) Page() PageLayout {
	return r.page
}

// Twips converts points to whole twips, the precision a DOCX attribute can hold.
func Twips(points float64) int {
	return round(PointsToTwips(points))
}

func round(v float64) int {
	if v < 0 {
		return -int(-v + 0.5)
	}
	return int(v + 0.5)
}
