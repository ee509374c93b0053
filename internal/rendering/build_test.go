package rendering

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-docgen/internal/dates"
	"github.com/jonathan/resume-docgen/internal/types"
	"github.com/jonathan/resume-docgen/internal/typography"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullResume() *types.ResumeData {
	return &types.ResumeData{
		FirstName:          "Ada",
		LastName:           "Lovelace",
		Email:              "ada@example.com",
		Phone:              "555-0100",
		GitHub:             "https://github.com/ada",
		LinkedIn:           "https://linkedin.com/in/ada",
		Website:            "https://ada.dev",
		VisaStatus:         "Citizen",
		PreferredLocations: []string{"NYC", "SF"},
		Summary:            "Engineer.",
		Skills: types.NewSkills(
			types.SkillCategory{Name: "Languages", Skills: []string{"Go", "Rust"}},
			types.SkillCategory{Name: "Empty"},
		),
		Experience: []types.Experience{
			{
				Company:            "Acme",
				Position:           "Staff Engineer",
				StartDate:          "2021-01",
				EndDate:            "present",
				CompanyDescription: "Rockets.",
				Achievements:       []string{"Built A", "Built B"},
			},
			{Company: "Broken", Position: "Engineer", StartDate: "2019-01"},
			{
				Company:   "Initech",
				Location:  "Austin, TX",
				Position:  "Engineer",
				StartDate: "2018-02",
				EndDate:   "2020-12",
			},
		},
		Education: []types.Education{
			{Institution: "MIT", Degree: "BSc", StartDate: "2014-09", EndDate: "2018-06"},
			{Institution: "Nowhere"},
		},
	}
}

func TestBuild_NilData(t *testing.T) {
	_, err := Build(nil)
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestBuild_SectionOrder(t *testing.T) {
	instructions, err := Build(fullResume())
	require.NoError(t, err)

	assert.Equal(t, []Section{SectionSummary, SectionSkills, SectionExperience, SectionEducation},
		SectionsOf(instructions))

	require.IsType(t, Title{}, instructions[0])
	assert.Equal(t, "ADA LOVELACE", instructions[0].(Title).Text)
	require.IsType(t, ContactLine{}, instructions[1])
}

func TestBuild_MinimalData(t *testing.T) {
	data := &types.ResumeData{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}

	instructions, err := Build(data)
	require.NoError(t, err)
	require.Len(t, instructions, 2)

	contact := instructions[1].(ContactLine)
	require.Len(t, contact.Segments, 1)
	assert.Equal(t, SegmentEmail, contact.Segments[0].Kind)
	assert.Equal(t, "ada@example.com", JoinContact(contact.Segments))
	assert.Empty(t, SectionsOf(instructions))
}

func TestBuild_EmptySkillCategorySkipped(t *testing.T) {
	instructions, err := Build(fullResume())
	require.NoError(t, err)

	var lists []CategoryList
	for _, in := range instructions {
		if l, ok := in.(CategoryList); ok {
			lists = append(lists, l)
		}
	}
	require.Len(t, lists, 1)
	require.Len(t, lists[0].Categories, 1)
	assert.Equal(t, "Languages", lists[0].Categories[0].Name)
	assert.Equal(t, []string{"Go", "Rust"}, lists[0].Categories[0].Skills)
}

func TestBuild_SkillsWithOnlyEmptyCategories(t *testing.T) {
	data := &types.ResumeData{Skills: types.NewSkills(types.SkillCategory{Name: "Empty"})}

	instructions, err := Build(data)
	require.NoError(t, err)

	assert.Equal(t, []Section{SectionSkills}, SectionsOf(instructions))
	for _, in := range instructions {
		_, isCategoryList := in.(CategoryList)
		assert.False(t, isCategoryList)
	}
}

func TestBuild_IncompleteExperienceSkipped(t *testing.T) {
	instructions, err := Build(fullResume())
	require.NoError(t, err)

	var rows []Row
	for _, in := range instructions {
		if r, ok := in.(Row); ok {
			rows = append(rows, r)
		}
	}

	// two complete experiences (two rows each) and one complete education row
	require.Len(t, rows, 5)
	for _, r := range rows {
		for _, s := range append(r.Left, r.Right...) {
			assert.NotContains(t, s.Text, "Broken")
			assert.NotContains(t, s.Text, "Nowhere")
		}
	}
}

func TestBuild_ExperienceRows(t *testing.T) {
	instructions, err := Build(fullResume())
	require.NoError(t, err)

	var rows []Row
	var lists []BulletList
	for _, in := range instructions {
		switch v := in.(type) {
		case Row:
			rows = append(rows, v)
		case BulletList:
			lists = append(lists, v)
		}
	}

	first := rows[0]
	assert.Equal(t, "Acme", first.Left[0].Text)
	assert.Equal(t, types.DefaultLocation, first.Right[0].Text)
	assert.Equal(t, typography.H3, first.Role)
	assert.False(t, first.GapBefore)

	position := rows[1]
	assert.Equal(t, "Staff Engineer", position.Left[0].Text)
	assert.Equal(t, "January 2021 - Present", position.Right[0].Text)
	assert.Equal(t, typography.Position, position.Role)

	second := rows[2]
	assert.Equal(t, "Initech", second.Left[0].Text)
	assert.Equal(t, "Austin, TX", second.Right[0].Text)
	assert.True(t, second.GapBefore, "gap precedes every rendered entry but the first")

	require.Len(t, lists, 1)
	assert.Equal(t, []string{"Rockets.", "Built A", "Built B"}, lists[0].Items)
}

func TestBuild_GapFollowsRenderedEntriesNotInputIndex(t *testing.T) {
	data := &types.ResumeData{
		Experience: []types.Experience{
			{Company: "Skipped"},
			{Company: "Acme", Position: "Engineer", StartDate: "2020-01", EndDate: "2021-01"},
		},
	}

	instructions, err := Build(data)
	require.NoError(t, err)

	row := instructions[3].(Row)
	assert.Equal(t, "Acme", row.Left[0].Text)
	assert.False(t, row.GapBefore)
}

func TestBuild_EducationRow(t *testing.T) {
	instructions, err := Build(fullResume())
	require.NoError(t, err)

	last := instructions[len(instructions)-1].(Row)
	require.Len(t, last.Left, 2)
	assert.Equal(t, "BSc, ", last.Left[0].Text)
	assert.Equal(t, typography.H3, last.Left[0].Role)
	assert.Equal(t, "MIT", last.Left[1].Text)
	assert.Equal(t, typography.Normal, last.Left[1].Role)
	assert.Equal(t, "September 2014 - June 2018", last.Right[0].Text)
}

func TestBuild_InvalidDate(t *testing.T) {
	data := &types.ResumeData{
		Education: []types.Education{
			{Institution: "MIT", Degree: "BSc", StartDate: "Fall 2014", EndDate: "2018-06"},
		},
	}

	_, err := Build(data)
	require.Error(t, err)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.ErrorIs(t, err, dates.ErrInvalidDate)
	assert.Contains(t, err.Error(), "education[0]")
}

func TestContactSegments_Order(t *testing.T) {
	segs := ContactSegments(fullResume())

	texts := make([]string, len(segs))
	for i, s := range segs {
		texts[i] = s.Text
	}
	assert.Equal(t, []string{"NYC", "555-0100", "ada@example.com", "GitHub", "LinkedIn", "Portfolio", "Citizen"}, texts)
}

func TestContactSegments_OnlyFirstLocation(t *testing.T) {
	joined := JoinContact(ContactSegments(fullResume()))
	assert.Contains(t, joined, "NYC")
	assert.NotContains(t, joined, "SF")
}

func TestContactSegments_Separators(t *testing.T) {
	data := fullResume()
	fields := []*string{&data.Phone, &data.Email, &data.GitHub, &data.LinkedIn, &data.Website, &data.VisaStatus}

	for n := len(fields); n >= 0; n-- {
		segs := ContactSegments(data)
		joined := JoinContact(segs)

		if len(segs) == 0 {
			assert.Empty(t, joined)
		} else {
			assert.Equal(t, len(segs)-1, strings.Count(joined, ContactSeparator))
			assert.False(t, strings.HasPrefix(joined, ContactSeparator))
			assert.False(t, strings.HasSuffix(joined, ContactSeparator))
		}

		if n > 0 {
			*fields[n-1] = ""
		} else {
			data.PreferredLocations = nil
		}
	}
}

func TestContactSegment_Href(t *testing.T) {
	segs := ContactSegments(fullResume())

	assert.Equal(t, "", segs[0].Href())
	assert.Equal(t, "mailto:ada@example.com", segs[2].Href())
	assert.Equal(t, "https://github.com/ada", segs[3].Href())
	assert.Equal(t, "https://linkedin.com/in/ada", segs[4].Href())
	assert.Equal(t, "https://ada.dev", segs[5].Href())
}

func TestSection_Title(t *testing.T) {
	assert.Equal(t, "PROFESSIONAL SUMMARY", SectionSummary.Title())
	assert.Equal(t, "SKILLS", SectionSkills.Title())
	assert.Equal(t, "PROFESSIONAL EXPERIENCE", SectionExperience.Title())
	assert.Equal(t, "EDUCATION", SectionEducation.String())
	assert.Equal(t, "", Section(99).Title())
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	data := fullResume()
	before := *data
	beforeSkills := data.Skills.Categories()

	_, err := Build(data)
	require.NoError(t, err)

	assert.Equal(t, before.Experience, data.Experience)
	assert.Equal(t, before.PreferredLocations, data.PreferredLocations)
	assert.Equal(t, beforeSkills, data.Skills.Categories())
}
