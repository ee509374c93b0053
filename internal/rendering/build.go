package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-docgen/internal/dates"
	"github.com/jonathan/resume-docgen/internal/types"
	"github.com/jonathan/resume-docgen/internal/typography"
)

// Build walks the resume in render order: header, then summary, skills, experience and
// education when present. Incomplete experience and education entries are skipped.
func Build(data *types.ResumeData) ([]Instruction, error) {
	if data == nil {
		return nil, &RenderError{Message: "resume data is nil"}
	}

	out := []Instruction{
		Title{Text: data.FullName()},
		ContactLine{Segments: ContactSegments(data)},
	}

	if data.Summary != "" {
		out = append(out,
			SectionHeader{Section: SectionSummary},
			Paragraph{Text: data.Summary, Role: typography.Normal},
		)
	}

	if !data.Skills.IsZero() {
		out = append(out, SectionHeader{Section: SectionSkills})
		if list := categoryList(data.Skills); len(list.Categories) > 0 {
			out = append(out, list)
		}
	}

	if len(data.Experience) > 0 {
		out = append(out, SectionHeader{Section: SectionExperience})
		body, err := experienceBody(data.Experience)
		if err != nil {
			return nil, err
		}
		out = append(out, body...)
	}

	if len(data.Education) > 0 {
		out = append(out, SectionHeader{Section: SectionEducation})
		body, err := educationBody(data.Education)
		if err != nil {
			return nil, err
		}
		out = append(out, body...)
	}

	return out, nil
}

// ContactSegments lists the present contact fields in display order: first preferred
// location, phone, email, GitHub, LinkedIn, portfolio, visa status.
func ContactSegments(data *types.ResumeData) []ContactSegment {
	var segs []ContactSegment
	if loc := data.PrimaryLocation(); loc != "" {
		segs = append(segs, ContactSegment{Kind: SegmentText, Text: loc})
	}
	if data.Phone != "" {
		segs = append(segs, ContactSegment{Kind: SegmentText, Text: data.Phone})
	}
	if data.Email != "" {
		segs = append(segs, ContactSegment{Kind: SegmentEmail, Text: data.Email, Target: data.Email})
	}
	if data.GitHub != "" {
		segs = append(segs, ContactSegment{Kind: SegmentLink, Text: "GitHub", Target: data.GitHub})
	}
	if data.LinkedIn != "" {
		segs = append(segs, ContactSegment{Kind: SegmentLink, Text: "LinkedIn", Target: data.LinkedIn})
	}
	if data.Website != "" {
		segs = append(segs, ContactSegment{Kind: SegmentLink, Text: "Portfolio", Target: data.Website})
	}
	if data.VisaStatus != "" {
		segs = append(segs, ContactSegment{Kind: SegmentText, Text: data.VisaStatus})
	}
	return segs
}

// JoinContact renders segments as plain text with separators between them.
func JoinContact(segs []ContactSegment) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = s.Text
	}
	return strings.Join(parts, ContactSeparator)
}

func categoryList(skills types.Skills) CategoryList {
	var list CategoryList
	for _, c := range skills.Categories() {
		if len(c.Skills) == 0 {
			continue
		}
		list.Categories = append(list.Categories, Category{Name: c.Name, Skills: c.Skills})
	}
	return list
}

func experienceBody(entries []types.Experience) ([]Instruction, error) {
	var out []Instruction
	rendered := 0
	for i, exp := range entries {
		if !exp.Complete() {
			continue
		}

		dateRange, err := dates.FormatRange(exp.StartDate, exp.EndDate)
		if err != nil {
			return nil, &RenderError{Message: fmt.Sprintf("experience[%d] dates", i), Cause: err}
		}

		out = append(out,
			Row{
				Left:      []Span{{Text: exp.Company, Role: typography.H3}},
				Right:     []Span{{Text: exp.DisplayLocation(), Role: typography.H3}},
				Role:      typography.H3,
				GapBefore: rendered > 0,
			},
			Row{
				Left:  []Span{{Text: exp.Position, Role: typography.Position}},
				Right: []Span{{Text: dateRange, Role: typography.Position}},
				Role:  typography.Position,
			},
		)

		var items []string
		if exp.CompanyDescription != "" {
			items = append(items, exp.CompanyDescription)
		}
		items = append(items, exp.Achievements...)
		if len(items) > 0 {
			out = append(out, BulletList{Items: items})
		}
		rendered++
	}
	return out, nil
}

func educationBody(entries []types.Education) ([]Instruction, error) {
	var out []Instruction
	for i, edu := range entries {
		if !edu.Complete() {
			continue
		}

		dateRange, err := dates.FormatRange(edu.StartDate, edu.EndDate)
		if err != nil {
			return nil, &RenderError{Message: fmt.Sprintf("education[%d] dates", i), Cause: err}
		}

		out = append(out, Row{
			Left: []Span{
				{Text: edu.Degree + ", ", Role: typography.H3},
				{Text: edu.Institution, Role: typography.Normal},
			},
			Right: []Span{{Text: dateRange, Role: typography.H3}},
			Role:  typography.H3,
		})
	}
	return out, nil
}

// SectionsOf returns the sections present in an instruction sequence, in order.
func SectionsOf(instructions []Instruction) []Section {
	var out []Section
	for _, in := range instructions {
		if h, ok := in.(SectionHeader); ok {
			out = append(out, h.Section)
		}
	}
	return out
}
