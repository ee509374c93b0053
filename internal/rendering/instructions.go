package rendering

import "github.com/jonathan/resume-docgen/internal/typography"

// Section identifies a top-level resume section.
type Section int

// Sections in render order.
const (
	SectionSummary Section = iota
	SectionSkills
	SectionExperience
	SectionEducation
)

var sectionTitles = [...]string{
	SectionSummary:    "PROFESSIONAL SUMMARY",
	SectionSkills:     "SKILLS",
	SectionExperience: "PROFESSIONAL EXPERIENCE",
	SectionEducation:  "EDUCATION",
}

// Title returns the heading text printed for the section.
func (s Section) Title() string {
	if s < 0 || int(s) >= len(sectionTitles) {
		return ""
	}
	return sectionTitles[s]
}

func (s Section) String() string {
	return s.Title()
}

const (
	// ContactSeparator sits between two present contact segments.
	ContactSeparator = " | "
	// LinkGlyph precedes hyperlink segments in formats that draw it as text.
	LinkGlyph = "🔗 "
)

// Span is a run of text in one typography role. Bold and italic come from the role.
type Span struct {
	Text string
	Role typography.Role
}

// SegmentKind distinguishes plain contact segments from navigable ones.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentEmail
	SegmentLink
)

// ContactSegment is one entry of the contact line. Target is the navigable destination:
// the address for SegmentEmail, the URL for SegmentLink.
type ContactSegment struct {
	Kind   SegmentKind
	Text   string
	Target string
}

// Href returns the link target as a URL, or "" for plain text.
func (c ContactSegment) Href() string {
	switch c.Kind {
	case SegmentEmail:
		return "mailto:" + c.Target
	case SegmentLink:
		return c.Target
	default:
		return ""
	}
}

// Instruction is one visual unit of the resume.
type Instruction interface {
	instruction()
}

// Title is the centered name line (role h1).
type Title struct {
	Text string
}

// ContactLine is the centered contact line (role contact, link glyph role icon).
type ContactLine struct {
	Segments []ContactSegment
}

// SectionHeader is a section heading (role h2) with a rule beneath it (role line).
type SectionHeader struct {
	Section Section
}

// Paragraph is a justified block of body text.
type Paragraph struct {
	Text string
	Role typography.Role
}

// Category is one skills line.
type Category struct {
	Name   string
	Skills []string
}

// CategoryList is the skills body: a bulleted list of "{name}: {skills}" lines. The
// name uses role h3, the skills role normal, the list role ul.
type CategoryList struct {
	Categories []Category
}

// Row is a left/right aligned pair on one line. Role supplies the row's spacing; each
// span supplies its own font. GapBefore separates an entry from the previous one by the
// ul bottom margin.
type Row struct {
	Left      []Span
	Right     []Span
	Role      typography.Role
	GapBefore bool
}

// BulletList is a group of bulleted items (item role li, list role ul).
type BulletList struct {
	Items []string
}

func (Title) instruction()         {}
func (ContactLine) instruction()   {}
func (SectionHeader) instruction() {}
func (Paragraph) instruction()     {}
func (CategoryList) instruction()  {}
func (Row) instruction()           {}
func (BulletList) instruction()    {}
