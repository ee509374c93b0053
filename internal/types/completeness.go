package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks the required fields of experience and education entries. The
// validator caches struct metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Complete reports whether the entry has company, position, startDate and endDate.
func (e Experience) Complete() bool {
	return validate.Struct(e) == nil
}

// Complete reports whether the entry has institution, degree, startDate and endDate.
func (e Education) Complete() bool {
	return validate.Struct(e) == nil
}

// MissingFields returns the JSON names of required fields that are empty.
func MissingFields(entry any) []string {
	err := validate.Struct(entry)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

// IncompleteEntry describes an entry the renderers will skip.
type IncompleteEntry struct {
	Section string
	Index   int
	Missing []string
}

func (e IncompleteEntry) String() string {
	return fmt.Sprintf("%s[%d]: missing %s", e.Section, e.Index, strings.Join(e.Missing, ", "))
}

// IncompleteEntries lists every experience and education entry that lacks a required
// field. Skipping them is not an error; this is a report for callers that want to warn.
func (d *ResumeData) IncompleteEntries() []IncompleteEntry {
	var out []IncompleteEntry
	for i, exp := range d.Experience {
		if missing := MissingFields(exp); len(missing) > 0 {
			out = append(out, IncompleteEntry{Section: "experience", Index: i, Missing: missing})
		}
	}
	for i, edu := range d.Education {
		if missing := MissingFields(edu); len(missing) > 0 {
			out = append(out, IncompleteEntry{Section: "education", Index: i, Missing: missing})
		}
	}
	return out
}
