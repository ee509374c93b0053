// Package types provides the resume data model consumed by the document generators.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ResumeData is the canonical generator input. It is read-only to the renderers.
type ResumeData struct {
	FirstName          string       `json:"firstName,omitempty"`
	LastName           string       `json:"lastName,omitempty"`
	Email              string       `json:"email,omitempty"`
	Phone              string       `json:"phone,omitempty"`
	GitHub             string       `json:"github,omitempty"`
	LinkedIn           string       `json:"linkedin,omitempty"`
	Website            string       `json:"website,omitempty"`
	VisaStatus         string       `json:"visaStatus,omitempty"`
	PreferredLocations []string     `json:"preferredLocations,omitempty"`
	OpenToRemote       *bool        `json:"openToRemote,omitempty"`
	Summary            string       `json:"summary,omitempty"`
	Skills             Skills       `json:"skills,omitzero"`
	Experience         []Experience `json:"experience,omitempty"`
	Education          []Education  `json:"education,omitempty"`
}

// Experience is one work-history entry.
type Experience struct {
	Company            string   `json:"company,omitempty" validate:"required"`
	Location           string   `json:"location,omitempty"`
	Position           string   `json:"position,omitempty" validate:"required"`
	StartDate          string   `json:"startDate,omitempty" validate:"required"`
	EndDate            string   `json:"endDate,omitempty" validate:"required"`
	Achievements       []string `json:"achievements,omitempty"`
	CompanyDescription string   `json:"companyDescription,omitempty"`
}

// DefaultLocation is shown for experience entries without a location.
const DefaultLocation = "Remote"

// DisplayLocation returns the entry's location or DefaultLocation.
func (e Experience) DisplayLocation() string {
	if e.Location == "" {
		return DefaultLocation
	}
	return e.Location
}

// Education is one education entry.
type Education struct {
	Institution string `json:"institution,omitempty" validate:"required"`
	Degree      string `json:"degree,omitempty" validate:"required"`
	StartDate   string `json:"startDate,omitempty" validate:"required"`
	EndDate     string `json:"endDate,omitempty" validate:"required"`
}

// FullName returns "{firstName} {lastName}" uppercased, as shown in the header.
func (d *ResumeData) FullName() string {
	return strings.ToUpper(d.FirstName) + " " + strings.ToUpper(d.LastName)
}

// PrimaryLocation returns the first preferred location, if any. Only the first entry is
// ever shown.
func (d *ResumeData) PrimaryLocation() string {
	if len(d.PreferredLocations) == 0 {
		return ""
	}
	return d.PreferredLocations[0]
}
