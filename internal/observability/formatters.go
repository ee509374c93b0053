// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-docgen/internal/export"
	"github.com/jonathan/resume-docgen/internal/rendering"
	"github.com/jonathan/resume-docgen/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResume outputs a summary of the document about to be rendered.
func (p *Printer) PrintResume(data *types.ResumeData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", data.FullName()))
	if contact := rendering.JoinContact(rendering.ContactSegments(data)); contact != "" {
		sb.WriteString(fmt.Sprintf("Contact:  %s\n", contact))
	}
	sb.WriteString("\n")

	if data.Summary != "" {
		sb.WriteString("Summary:  yes\n")
	}

	if !data.Skills.IsZero() {
		categories := data.Skills.Categories()
		sb.WriteString(fmt.Sprintf("Skills:   %d categories\n", len(categories)))
		count := min(len(categories), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s (%d)\n", categories[i].Name, len(categories[i].Skills)))
		}
		if len(categories) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(categories)-maxItemsToShow))
		}
	}

	if len(data.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience: %d entries\n", len(data.Experience)))
		count := min(len(data.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := data.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", exp.Position, exp.Company))
		}
		if len(data.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(data.Experience)-maxItemsToShow))
		}
	}

	if len(data.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education: %d entries\n", len(data.Education)))
	}

	p.printBox("RESUME DATA", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIncompleteEntries outputs the entries that will be left out of the documents.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintIncompleteEntries(entries []types.IncompleteEntry) {
	if len(entries) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL ENTRIES COMPLETE")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skipping %d incomplete entries:\n\n", len(entries)))
	for i, e := range entries {
		sb.WriteString(fmt.Sprintf("⚠ %s[%d]\n", e.Section, e.Index))
		sb.WriteString(fmt.Sprintf("  missing %s\n", strings.Join(e.Missing, ", ")))
		if i < len(entries)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("INCOMPLETE ENTRIES", sb.String())
}

// PrintArtifacts outputs the generated files and where they were saved.
// locations is indexed like artifacts; a missing location is left blank.
func (p *Printer) PrintArtifacts(artifacts []*export.Artifact, locations []string) {
	if len(artifacts) == 0 {
		return
	}

	var sb strings.Builder
	for i, a := range artifacts {
		if a == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("• %s\n", a.Filename))
		sb.WriteString(fmt.Sprintf("  %s, %s, %d bytes\n", a.Format, a.Engine, len(a.Data)))
		if i < len(locations) && locations[i] != "" {
			sb.WriteString(fmt.Sprintf("  → %s\n", locations[i]))
		}
	}

	p.printBox("GENERATED DOCUMENTS", strings.TrimSuffix(sb.String(), "\n"))
}
