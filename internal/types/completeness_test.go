package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExperience_Complete(t *testing.T) {
	full := Experience{Company: "Acme", Position: "Engineer", StartDate: "2020-01", EndDate: "present"}
	assert.True(t, full.Complete())

	tests := []struct {
		name    string
		mutate  func(e *Experience)
		missing string
	}{
		{"no company", func(e *Experience) { e.Company = "" }, "company"},
		{"no position", func(e *Experience) { e.Position = "" }, "position"},
		{"no start", func(e *Experience) { e.StartDate = "" }, "startDate"},
		{"no end", func(e *Experience) { e.EndDate = "" }, "endDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := full
			tt.mutate(&e)
			assert.False(t, e.Complete())
			assert.Equal(t, []string{tt.missing}, MissingFields(e))
		})
	}
}

func TestExperience_OptionalFieldsDoNotAffectCompleteness(t *testing.T) {
	e := Experience{Company: "Acme", Position: "Engineer", StartDate: "2020-01", EndDate: "2021-01"}
	assert.True(t, e.Complete())
	assert.Empty(t, e.Location)
	assert.Empty(t, e.Achievements)
}

func TestEducation_Complete(t *testing.T) {
	full := Education{Institution: "MIT", Degree: "BSc", StartDate: "2010-09", EndDate: "2014-06"}
	assert.True(t, full.Complete())

	partial := Education{Institution: "MIT", StartDate: "2010-09"}
	assert.False(t, partial.Complete())
	assert.ElementsMatch(t, []string{"degree", "endDate"}, MissingFields(partial))
}

func TestResumeData_IncompleteEntries(t *testing.T) {
	data := &ResumeData{
		Experience: []Experience{
			{Company: "Acme", Position: "Engineer", StartDate: "2020-01", EndDate: "present"},
			{Company: "Initech", Position: "Engineer", StartDate: "2018-01"},
		},
		Education: []Education{
			{Institution: "MIT"},
		},
	}

	entries := data.IncompleteEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, "experience", entries[0].Section)
	assert.Equal(t, 1, entries[0].Index)
	assert.Equal(t, "experience[1]: missing endDate", entries[0].String())

	assert.Equal(t, "education", entries[1].Section)
	assert.Equal(t, 0, entries[1].Index)
	assert.Len(t, entries[1].Missing, 3)
}

func TestResumeData_IncompleteEntriesNone(t *testing.T) {
	data := &ResumeData{}
	assert.Empty(t, data.IncompleteEntries())
}
