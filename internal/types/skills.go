package types

import (
	"bytes"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SkillCategory is one named group of skills.
type SkillCategory struct {
	Name   string
	Skills []string
}

// Skills maps category names to skill lists while keeping the categories in the order
// they were declared. JSON objects decode in document order; that order is the render
// order.
type Skills struct {
	m *orderedmap.OrderedMap[string, []string]
}

// NewSkills builds Skills from categories in the given order.
func NewSkills(categories ...SkillCategory) Skills {
	var s Skills
	for _, c := range categories {
		s.Set(c.Name, c.Skills)
	}
	return s
}

// Set adds a category or replaces the skills of an existing one in place.
func (s *Skills) Set(name string, skills []string) {
	if s.m == nil {
		s.m = orderedmap.New[string, []string]()
	}
	if skills == nil {
		skills = []string{}
	}
	s.m.Set(name, skills)
}

// Get returns the skills of a category.
func (s Skills) Get(name string) ([]string, bool) {
	if s.m == nil {
		return nil, false
	}
	return s.m.Get(name)
}

// Categories returns a copy of the categories in declaration order.
func (s Skills) Categories() []SkillCategory {
	out := make([]SkillCategory, 0, s.Len())
	if s.m == nil {
		return out
	}
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, SkillCategory{Name: pair.Key, Skills: pair.Value})
	}
	return out
}

// Len returns the number of categories, including empty ones.
func (s Skills) Len() int {
	if s.m == nil {
		return 0
	}
	return s.m.Len()
}

// IsZero reports whether no category was declared.
func (s Skills) IsZero() bool {
	return s.Len() == 0
}

// UnmarshalJSON decodes a JSON object of string arrays, preserving key order.
func (s *Skills) UnmarshalJSON(data []byte) error {
	s.m = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	m := orderedmap.New[string, []string]()
	if err := m.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("skills: %w", err)
	}
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			pair.Value = []string{}
		}
	}
	s.m = m
	return nil
}

// MarshalJSON encodes the categories as a JSON object in declaration order.
func (s Skills) MarshalJSON() ([]byte, error) {
	if s.m == nil {
		return []byte("{}"), nil
	}
	return s.m.MarshalJSON()
}
